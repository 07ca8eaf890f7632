package alphabet

import "testing"

func TestDefaultDataset(t *testing.T) {
	entries, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}

	if len(entries) != 49 {
		t.Errorf("expected 49 entries, got %d", len(entries))
	}

	x, err := NewIndex(entries)
	if err != nil {
		t.Fatalf("NewIndex() failed: %v", err)
	}

	// 13 vowels precede the consonants in the shipped ordering.
	if got, ok := x.FirstVisible(ModeConsonants); !ok || got != 13 {
		t.Errorf("FirstVisible(consonants) = %d, %v; expected 13, true", got, ok)
	}

	if entries[0].Symbol != "अ" {
		t.Errorf("first entry = %s, expected अ", entries[0].Symbol)
	}
	if entries[13].Symbol != "क" {
		t.Errorf("first consonant = %s, expected क", entries[13].Symbol)
	}
}

func TestDefaultDataset_DependentForms(t *testing.T) {
	entries, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}

	for _, e := range entries {
		if e.DependentForm == "" {
			continue
		}
		if e.Category != Vowel {
			t.Errorf("%s: only vowels carry dependent forms", e.Symbol)
		}
		if e.Example == "" {
			t.Errorf("%s: dependent form without an example word", e.Symbol)
		}
	}
}

func TestLoad_Shapes(t *testing.T) {
	block := []byte(`letters:
  - symbol: "अ"
    pronunciation: "a"
    english: "hint"
    category: vowel
  - symbol: "क"
    pronunciation: "ka"
    english: "hint"
    category: consonant
`)
	list := []byte(`- symbol: "अ"
  pronunciation: "a"
  english: "hint"
  category: vowel
`)

	if entries, err := Load(block); err != nil || len(entries) != 2 {
		t.Errorf("Load(letters block) = %d entries, err %v", len(entries), err)
	}
	if entries, err := Load(list); err != nil || len(entries) != 1 {
		t.Errorf("Load(bare list) = %d entries, err %v", len(entries), err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"not yaml", "{{{"},
		{"bad category", "letters:\n  - symbol: x\n    category: digit\n"},
		{"missing symbol", "letters:\n  - category: vowel\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load([]byte(tt.data)); err == nil {
				t.Error("Load() should have failed")
			}
		})
	}
}
