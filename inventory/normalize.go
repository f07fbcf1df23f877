package inventory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// MatchKey is the join key between container lines and BOM items. Two
// descriptions refer to the same part iff their keys are byte-equal: outer
// whitespace is trimmed, inner whitespace runs collapse to one space, and
// the result is NFC-normalized and case-folded.
func MatchKey(description string) string {
	collapsed := strings.Join(strings.Fields(description), " ")
	// cases.Caser is stateful, so one per call
	return cases.Fold().String(norm.NFC.String(collapsed))
}

// SameDescription reports whether a and b match under MatchKey.
func SameDescription(a, b string) bool {
	return MatchKey(a) == MatchKey(b)
}
