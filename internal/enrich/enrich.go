package enrich

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"codeberg.org/snonux/varnamala/internal/alphabet"
)

// fileEntry mirrors the on-disk letter schema.
type fileEntry struct {
	Symbol        string `yaml:"symbol"`
	Pronunciation string `yaml:"pronunciation"`
	English       string `yaml:"english,omitempty"`
	Category      string `yaml:"category"`
	DependentForm string `yaml:"dependent_form,omitempty"`
	Example       string `yaml:"example,omitempty"`
}

type letterFile struct {
	Letters []fileEntry `yaml:"letters"`
}

// EnrichFile fills missing example words in the letter file at path. Only
// vowels with a dependent form and no example are touched. The original
// file is kept as path.bak. Returns how many entries were filled.
func EnrichFile(ctx context.Context, path string, gen Generator, logger *zap.SugaredLogger) (int, error) {
	entries, err := alphabet.LoadFile(path)
	if err != nil {
		return 0, err
	}

	filled := 0
	for i := range entries {
		e := &entries[i]
		if e.DependentForm == "" || e.Example != "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return filled, err
		}

		example, err := gen.Example(ctx, e.Symbol, e.DependentForm)
		if err != nil {
			logger.Warnw("could not generate example", "symbol", e.Symbol, "error", err)
			continue
		}
		e.Example = example
		filled++
		logger.Infow("generated example", "symbol", e.Symbol, "example", example)
	}

	if filled == 0 {
		return 0, nil
	}

	if err := writeWithBackup(path, entries); err != nil {
		return filled, err
	}
	return filled, nil
}

// writeWithBackup moves the current file aside and writes the updated one.
func writeWithBackup(path string, entries []alphabet.Entry) error {
	out := letterFile{Letters: make([]fileEntry, 0, len(entries))}
	for _, e := range entries {
		out.Letters = append(out.Letters, fileEntry{
			Symbol:        e.Symbol,
			Pronunciation: e.Pronunciation,
			English:       e.EnglishHint,
			Category:      e.Category.String(),
			DependentForm: e.DependentForm,
			Example:       e.Example,
		})
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to serialize letters: %w", err)
	}

	if err := os.Rename(path, path+".bak"); err != nil {
		return fmt.Errorf("failed to back up letter file: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write letter file: %w", err)
	}
	return nil
}
