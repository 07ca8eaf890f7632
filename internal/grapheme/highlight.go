package grapheme

import (
	"html"
	"strings"
)

// StyleFunc wraps an already-escaped cluster in style markers.
type StyleFunc func(string) string

// EscapeFunc escapes one cluster for safe embedding in the output markup.
type EscapeFunc func(string) string

// Highlight rebuilds text cluster by cluster, HTML-escaping every cluster
// and applying style only to the cluster(s) containing needle. With the
// style markers stripped, the result is exactly the escaped input: nothing
// is lost or reordered, and a base letter is never separated from its
// combining marks. An empty or absent needle yields the escaped text with
// no styling.
func (s *Segmenter) Highlight(text, needle string, style StyleFunc) string {
	return s.HighlightFunc(text, needle, html.EscapeString, style)
}

// HighlightFunc is Highlight with the escape hook exposed, for outputs that
// are not HTML (a terminal front-end passes an identity escape and ANSI
// styling).
func (s *Segmenter) HighlightFunc(text, needle string, escape EscapeFunc, style StyleFunc) string {
	var b strings.Builder
	b.Grow(len(text))

	s.EachCluster(text, func(sp Span) bool {
		cluster := text[sp.Start:sp.End]
		escaped := escape(cluster)
		if needle != "" && strings.Contains(cluster, needle) {
			b.WriteString(style(escaped))
		} else {
			b.WriteString(escaped)
		}
		return true
	})
	return b.String()
}
