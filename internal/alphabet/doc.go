// Package alphabet holds the ordered Devanagari dataset and the filtered
// cursor used to navigate it. The collection is vowels first, consonants
// second; a filter mode exposes either half or the whole sequence, and the
// cursor is only ever parked on a visible position.
package alphabet
