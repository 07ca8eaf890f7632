package alphabet

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed letters.yaml
var defaultDataset []byte

// rawEntry is the YAML schema of one letter in letters.yaml.
type rawEntry struct {
	Symbol        string `yaml:"symbol"`
	Pronunciation string `yaml:"pronunciation"`
	English       string `yaml:"english"`
	Category      string `yaml:"category"`
	DependentForm string `yaml:"dependent_form,omitempty"`
	Example       string `yaml:"example,omitempty"`
}

type document struct {
	Letters []rawEntry `yaml:"letters"`
}

// Load parses a letters.yaml document. Both a top-level `letters:` block and
// a bare list of entries are accepted.
func Load(data []byte) ([]Entry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil || len(doc.Letters) == 0 {
		var list []rawEntry
		if lerr := yaml.Unmarshal(data, &list); lerr != nil || len(list) == 0 {
			if err == nil {
				err = lerr
			}
			if err == nil {
				err = fmt.Errorf("no letters found")
			}
			return nil, fmt.Errorf("invalid letters document: %w", err)
		}
		doc.Letters = list
	}

	entries := make([]Entry, 0, len(doc.Letters))
	for i, raw := range doc.Letters {
		if raw.Symbol == "" {
			return nil, fmt.Errorf("entry %d: missing symbol", i)
		}
		cat, err := ParseCategory(raw.Category)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, raw.Symbol, err)
		}
		entries = append(entries, Entry{
			Symbol:        raw.Symbol,
			Pronunciation: raw.Pronunciation,
			EnglishHint:   raw.English,
			Category:      cat,
			DependentForm: raw.DependentForm,
			Example:       raw.Example,
		})
	}
	return entries, nil
}

// LoadFile reads and parses a letters.yaml file.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return Load(data)
}

var (
	defaultOnce    sync.Once
	defaultEntries []Entry
	defaultErr     error
)

// Default returns the embedded dataset: the thirteen vowels followed by the
// thirty-six consonants.
func Default() ([]Entry, error) {
	defaultOnce.Do(func() {
		defaultEntries, defaultErr = Load(defaultDataset)
	})
	return defaultEntries, defaultErr
}

// NewDefaultIndex builds an Index over the embedded dataset.
func NewDefaultIndex() (*Index, error) {
	entries, err := Default()
	if err != nil {
		return nil, err
	}
	return NewIndex(entries)
}
