package grapheme

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Span marks a half-open byte range [Start, End) within a source string.
type Span struct {
	Start int
	End   int
}

// Segmenter partitions text into grapheme clusters. The default segmenter
// follows the Unicode extended-grapheme-cluster rules; the code-point
// segmenter is a degraded fallback that treats every code point as its own
// cluster. The fallback loses matra precision but never drops characters.
type Segmenter struct {
	codePointsOnly bool
}

// NewSegmenter returns a segmenter using full Unicode segmentation.
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// NewCodePointSegmenter returns the degraded per-code-point segmenter.
func NewCodePointSegmenter() *Segmenter {
	return &Segmenter{codePointsOnly: true}
}

// EachCluster calls fn with each cluster span of text, in order. The spans
// partition text exactly. Returning false from fn stops the iteration; the
// walk can be restarted at any time.
func (s *Segmenter) EachCluster(text string, fn func(Span) bool) {
	if s.codePointsOnly {
		for i := 0; i < len(text); {
			_, size := utf8.DecodeRuneInString(text[i:])
			if !fn(Span{Start: i, End: i + size}) {
				return
			}
			i += size
		}
		return
	}

	g := uniseg.NewGraphemes(text)
	for g.Next() {
		from, to := g.Positions()
		if !fn(Span{Start: from, End: to}) {
			return
		}
	}
}

// Clusters returns all cluster spans of text.
func (s *Segmenter) Clusters(text string) []Span {
	var spans []Span
	s.EachCluster(text, func(sp Span) bool {
		spans = append(spans, sp)
		return true
	})
	return spans
}

// FindClusterContaining returns the leftmost cluster whose substring
// contains needle. An empty needle matches nothing.
func (s *Segmenter) FindClusterContaining(text, needle string) (Span, bool) {
	if needle == "" {
		return Span{}, false
	}

	var found Span
	ok := false
	s.EachCluster(text, func(sp Span) bool {
		if strings.Contains(text[sp.Start:sp.End], needle) {
			found, ok = sp, true
			return false
		}
		return true
	})
	return found, ok
}
