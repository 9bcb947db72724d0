// ABOUTME: Matched-character positions for highlighting, via sahilm/fuzzy
// ABOUTME: Ranking never uses these positions; they only drive rendering

package fuzzy

import "github.com/sahilm/fuzzy"

// Positions returns the byte offsets in haystack of the characters matched
// by needle, in ascending order. Returns nil for an empty needle or when the
// needle does not match.
func Positions(haystack, needle string) []int {
	if needle == "" || haystack == "" {
		return nil
	}
	results := fuzzy.Find(needle, []string{haystack})
	if len(results) == 0 {
		return nil
	}
	return results[0].MatchedIndexes
}

// PositionSet returns Positions as a lookup set keyed by byte offset.
func PositionSet(haystack, needle string) map[int]bool {
	idx := Positions(haystack, needle)
	if len(idx) == 0 {
		return nil
	}
	set := make(map[int]bool, len(idx))
	for _, i := range idx {
		set[i] = true
	}
	return set
}
