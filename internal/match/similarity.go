// Package match scores how well candidate metadata corresponds to local files.
package match

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity returns a case-insensitive similarity between two strings in
// [0, 1] based on the Levenshtein distance normalized by the longer string.
// Two empty strings are identical; an empty and a non-empty string share
// nothing.
func Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1.0
	}

	lenA := utf8.RuneCountInString(a)
	lenB := utf8.RuneCountInString(b)
	if lenA == 0 || lenB == 0 {
		return 0.0
	}

	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(max(lenA, lenB))
}
