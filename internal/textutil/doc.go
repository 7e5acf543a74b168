// Package textutil provides text processing utilities for sequence similarity
// and file name tokens.
//
// The primary use cases are:
//   - Finding matching blocks between two strings by repeatedly taking the
//     longest common substring and recursing on either side of it
//   - Scoring two strings with the matched-character ratio 2*M/T
//   - Turning category slugs into safe output file name tokens
//
// Comparisons operate on runes, so multi-byte characters count once.
package textutil
