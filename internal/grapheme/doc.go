// Package grapheme segments text into Unicode grapheme clusters and locates
// the cluster carrying a combining vowel sign, so an example word can be
// annotated without splitting a base letter from its matra.
package grapheme
