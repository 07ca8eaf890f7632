package enrich

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"codeberg.org/snonux/varnamala/internal/alphabet"
	"codeberg.org/snonux/varnamala/internal/testutil"
)

type fakeGenerator struct {
	examples map[string]string
	err      error
	calls    int
}

func (f *fakeGenerator) Example(ctx context.Context, symbol, dependentForm string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.examples[symbol], nil
}

const testLetters = `letters:
  - symbol: "अ"
    pronunciation: "a"
    category: vowel
  - symbol: "आ"
    pronunciation: "aa"
    category: vowel
    dependent_form: "ा"
  - symbol: "इ"
    pronunciation: "i"
    category: vowel
    dependent_form: "ि"
    example: "किताब (kitaab) – Book"
  - symbol: "क"
    pronunciation: "ka"
    category: consonant
`

func writeLetters(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "letters.yaml")
	testutil.CreateTestFile(t, path, []byte(testLetters))
	return path
}

func TestEnrichFileFillsOnlyMissingExamples(t *testing.T) {
	path := writeLetters(t)
	gen := &fakeGenerator{examples: map[string]string{"आ": "काम (kaam) – Work"}}

	filled, err := EnrichFile(context.Background(), path, gen, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("EnrichFile() error: %v", err)
	}
	if filled != 1 {
		t.Errorf("filled = %d, want 1", filled)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1 (only आ lacks an example)", gen.calls)
	}

	entries, err := alphabet.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() after enrich error: %v", err)
	}
	bySymbol := map[string]alphabet.Entry{}
	for _, e := range entries {
		bySymbol[e.Symbol] = e
	}
	if got := bySymbol["आ"].Example; got != "काम (kaam) – Work" {
		t.Errorf("आ example = %q, want generated text", got)
	}
	if got := bySymbol["इ"].Example; got != "किताब (kitaab) – Book" {
		t.Errorf("इ example = %q, want untouched", got)
	}

	if !testutil.FileExists(path + ".bak") {
		t.Error("backup file should exist after enrichment")
	}
}

func TestEnrichFileNoWorkLeavesFileAlone(t *testing.T) {
	path := writeLetters(t)
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	gen := &fakeGenerator{err: errors.New("model offline")}
	filled, err := EnrichFile(context.Background(), path, gen, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("EnrichFile() error: %v", err)
	}
	if filled != 0 {
		t.Errorf("filled = %d, want 0 when generation fails", filled)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("file should be untouched when nothing was filled")
	}
	if testutil.FileExists(path + ".bak") {
		t.Error("no backup should be written when nothing was filled")
	}
}

func TestEnrichFileHonorsContextCancellation(t *testing.T) {
	path := writeLetters(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &fakeGenerator{examples: map[string]string{"आ": "काम (kaam) – Work"}}
	_, err := EnrichFile(ctx, path, gen, zap.NewNop().Sugar())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("EnrichFile() error = %v, want context.Canceled", err)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times after cancellation, want 0", gen.calls)
	}
}
