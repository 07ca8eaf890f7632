package alphabet

import (
	"fmt"
	"strings"
)

// Index owns the ordered entries, the active filter mode and the cursor.
// The cursor always points at a position visible under the current mode;
// changing the mode relocates it to the first visible position.
type Index struct {
	entries        []Entry
	firstConsonant int
	mode           FilterMode
	cursor         int
}

// NewIndex builds an Index over entries. The entries must form a
// vowel-prefix/consonant-suffix partition; the consonant boundary is derived
// from the categories, never hardcoded.
func NewIndex(entries []Entry) (*Index, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("alphabet is empty")
	}

	firstConsonant := len(entries)
	for i, e := range entries {
		switch e.Category {
		case Vowel:
			if firstConsonant < len(entries) {
				return nil, fmt.Errorf("entry %d (%s): vowel after consonant breaks the category partition", i, e.Symbol)
			}
		case Consonant:
			if firstConsonant == len(entries) {
				firstConsonant = i
			}
		default:
			return nil, fmt.Errorf("entry %d (%s): unknown category", i, e.Symbol)
		}
	}

	return &Index{
		entries:        entries,
		firstConsonant: firstConsonant,
		mode:           ModeBoth,
	}, nil
}

// Len returns the number of entries in the full, unfiltered collection.
func (x *Index) Len() int { return len(x.entries) }

// Entry returns the entry at position i of the full collection.
func (x *Index) Entry(i int) Entry { return x.entries[i] }

// Mode returns the active filter mode.
func (x *Index) Mode() FilterMode { return x.mode }

// Visible reports whether position i is visible under the current mode.
func (x *Index) Visible(i int) bool {
	if i < 0 || i >= len(x.entries) {
		return false
	}
	switch x.mode {
	case ModeVowels:
		return i < x.firstConsonant
	case ModeConsonants:
		return i >= x.firstConsonant
	default:
		return true
	}
}

// Next returns the smallest visible position greater than i. The second
// return is false when the sequence is exhausted in that direction.
func (x *Index) Next(i int) (int, bool) {
	for j := i + 1; j < len(x.entries); j++ {
		if x.Visible(j) {
			return j, true
		}
	}
	return 0, false
}

// Prev returns the largest visible position smaller than i, or false when
// exhausted.
func (x *Index) Prev(i int) (int, bool) {
	for j := i - 1; j >= 0; j-- {
		if x.Visible(j) {
			return j, true
		}
	}
	return 0, false
}

// FirstVisible returns the anchor position for a mode: 0 for vowels/both,
// the first consonant for consonants. The second return is false when no
// entry of that category exists.
func (x *Index) FirstVisible(mode FilterMode) (int, bool) {
	switch mode {
	case ModeConsonants:
		if x.firstConsonant == len(x.entries) {
			return 0, false
		}
		return x.firstConsonant, true
	case ModeVowels:
		if x.firstConsonant == 0 {
			return 0, false
		}
		return 0, true
	default:
		return 0, true
	}
}

// SetMode changes the filter mode and relocates the cursor to the first
// visible position, so a filter switch never leaves the cursor on a hidden
// entry. A mode whose visible set would be empty is rejected: SetMode
// reports false and the index is unchanged.
func (x *Index) SetMode(mode FilterMode) bool {
	first, ok := x.FirstVisible(mode)
	if !ok {
		return false
	}
	x.mode = mode
	x.cursor = first
	return true
}

// Current returns the entry under the cursor.
func (x *Index) Current() Entry { return x.entries[x.cursor] }

// Position returns the cursor position in the full collection.
func (x *Index) Position() int { return x.cursor }

// Seek moves the cursor to position i if it is visible under the current
// mode, and reports whether it moved.
func (x *Index) Seek(i int) bool {
	if !x.Visible(i) {
		return false
	}
	x.cursor = i
	return true
}

// Find locates the first entry whose symbol or pronunciation matches query
// (pronunciation match is case-insensitive).
func (x *Index) Find(query string) (int, bool) {
	for i, e := range x.entries {
		if e.Symbol == query || strings.EqualFold(e.Pronunciation, query) {
			return i, true
		}
	}
	return 0, false
}

// CanAdvance reports whether a visible position exists after the cursor.
func (x *Index) CanAdvance() bool {
	_, ok := x.Next(x.cursor)
	return ok
}

// CanRetreat reports whether a visible position exists before the cursor.
func (x *Index) CanRetreat() bool {
	_, ok := x.Prev(x.cursor)
	return ok
}

// Advance moves the cursor to the next visible position, reporting whether
// it moved. At the boundary it stays put; callers disable that direction.
func (x *Index) Advance() bool {
	n, ok := x.Next(x.cursor)
	if !ok {
		return false
	}
	x.cursor = n
	return true
}

// Retreat moves the cursor to the previous visible position.
func (x *Index) Retreat() bool {
	p, ok := x.Prev(x.cursor)
	if !ok {
		return false
	}
	x.cursor = p
	return true
}

// AdvanceWrapped moves to the next visible position, wrapping around to the
// first visible entry at the end. Continuous playback cycles through the
// visible list with this.
func (x *Index) AdvanceWrapped() Entry {
	if n, ok := x.Next(x.cursor); ok {
		x.cursor = n
	} else if first, ok := x.FirstVisible(x.mode); ok {
		x.cursor = first
	}
	return x.Current()
}
