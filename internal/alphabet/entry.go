package alphabet

import "fmt"

// Category classifies an entry within the ordered alphabet.
type Category int

const (
	Unknown Category = iota
	Vowel
	Consonant
)

func (c Category) String() string {
	switch c {
	case Vowel:
		return "vowel"
	case Consonant:
		return "consonant"
	default:
		return "unknown"
	}
}

// ParseCategory parses a category name as it appears in the dataset.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "vowel":
		return Vowel, nil
	case "consonant":
		return Consonant, nil
	default:
		return Unknown, fmt.Errorf("unknown category: %q", s)
	}
}

// Entry is a single letter of the alphabet. Entries are immutable once
// loaded.
type Entry struct {
	Symbol        string   // the Devanagari character(s)
	Pronunciation string   // transliteration of the sound
	EnglishHint   string   // English word/phrase hint for the sound
	Category      Category // vowel or consonant
	DependentForm string   // combining vowel sign (matra), if any
	Example       string   // example word using the dependent form, if any
}

// FilterMode selects which part of the ordered alphabet is visible.
type FilterMode int

const (
	ModeBoth FilterMode = iota
	ModeVowels
	ModeConsonants
)

func (m FilterMode) String() string {
	switch m {
	case ModeVowels:
		return "vowels"
	case ModeConsonants:
		return "consonants"
	default:
		return "both"
	}
}

// ParseFilterMode parses a filter mode name (as used in flags and prefs).
func ParseFilterMode(s string) (FilterMode, error) {
	switch s {
	case "vowels":
		return ModeVowels, nil
	case "consonants":
		return ModeConsonants, nil
	case "both", "":
		return ModeBoth, nil
	default:
		return ModeBoth, fmt.Errorf("unknown filter mode: %q", s)
	}
}
