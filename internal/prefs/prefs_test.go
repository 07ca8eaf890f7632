package prefs

import (
	"path/filepath"
	"testing"

	"codeberg.org/snonux/varnamala/internal/alphabet"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadEmptyStoreReturnsDefaults(t *testing.T) {
	store := openTestStore(t)

	settings, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if settings != DefaultSettings() {
		t.Errorf("Load() = %+v, want defaults %+v", settings, DefaultSettings())
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)

	want := Settings{Rate: 120, Mode: alphabet.ModeConsonants, Cursor: 17}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestSaveOverwritesPreviousValues(t *testing.T) {
	store := openTestStore(t)

	if err := store.Save(Settings{Rate: 100, Mode: alphabet.ModeVowels, Cursor: 2}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	want := Settings{Rate: 200, Mode: alphabet.ModeBoth, Cursor: 0}
	if err := store.Save(want); err != nil {
		t.Fatalf("second Save() error: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state", "prefs.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	store.Close()
}

func TestLoadIgnoresCorruptValues(t *testing.T) {
	store := openTestStore(t)

	if err := store.set("rate", "not-a-number"); err != nil {
		t.Fatalf("set() error: %v", err)
	}
	if err := store.set("mode", "everything"); err != nil {
		t.Fatalf("set() error: %v", err)
	}

	settings, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if settings.Rate != DefaultSettings().Rate {
		t.Errorf("Rate = %d, want default for corrupt value", settings.Rate)
	}
	if settings.Mode != DefaultSettings().Mode {
		t.Errorf("Mode = %v, want default for corrupt value", settings.Mode)
	}
}
