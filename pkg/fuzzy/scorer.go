// ABOUTME: Subsequence scorer: dynamic-programming relevance score for (haystack, needle)
// ABOUTME: Rewards prefix, word-boundary, contiguous and acronym matches; penalizes gaps

package fuzzy

import (
	"strings"
	"unicode"
)

// Score weights. Matches earn scoreMatch plus positional bonuses; every
// haystack position skipped between matches costs scoreGap.
const (
	scoreMatch = 16.0
	scoreGap   = -1.0

	bonusConsecutive = 4.0
	bonusSlash       = 3.0
	bonusWord        = 20.0
	bonusCamel       = 2.0
	bonusDot         = 1.0
	bonusFirstChar   = 50.0
	bonusLiteral     = 10.0
	bonusAcronym     = 80.0
)

// Score computes the relevance of needle within haystack.
//
// An empty needle matches everything with score 0. Otherwise the needle must
// be a case-insensitive ordered subsequence of haystack; if it is not, ok is
// false. The returned score is always finite.
func Score(haystack, needle string) (score float64, ok bool) {
	if needle == "" {
		return 0, true
	}

	hay := []rune(haystack)
	hayLower := lowerRunes(hay)
	pat := lowerRunes([]rune(needle))

	if !isSubsequence(hayLower, pat) {
		return 0, false
	}

	score = matrixScore(hay, hayLower, pat)
	if IsAcronym(haystack, needle) {
		score += bonusAcronym * float64(len(pat))
	}
	if strings.Contains(haystack, needle) {
		score += bonusLiteral
	}
	return score, true
}

// Matches reports whether needle is a case-insensitive ordered subsequence
// of haystack. An empty needle always matches.
func Matches(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return isSubsequence(lowerRunes([]rune(haystack)), lowerRunes([]rune(needle)))
}

// IsAcronym reports whether the runes of needle equal, in order, the first
// letters of the whitespace-separated words of haystack. The needle may cover
// only the leading words.
func IsAcronym(haystack, needle string) bool {
	pat := []rune(needle)
	if len(pat) == 0 {
		return false
	}
	i := 0
	for _, word := range strings.Fields(haystack) {
		if i == len(pat) {
			return true
		}
		first := []rune(word)[0]
		if unicode.ToLower(first) != unicode.ToLower(pat[i]) {
			return false
		}
		i++
	}
	return i == len(pat)
}

func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func isSubsequence(hay, pat []rune) bool {
	hi := 0
	for _, p := range pat {
		for hi < len(hay) && hay[hi] != p {
			hi++
		}
		if hi == len(hay) {
			return false
		}
		hi++
	}
	return true
}

// matrixScore sweeps the (needle x haystack) matrix keeping two rows.
// diag holds the value of a match chain ending at (i, j); best holds the
// retained score including gap penalties. Cells left of the diagonal (j < i)
// can never complete a match and stay zero.
func matrixScore(hay, hayLower, pat []rune) float64 {
	n, m := len(pat), len(hay)
	consecutive := bonusConsecutive * float64(n)

	prevBest := make([]float64, m)
	prevDiag := make([]float64, m)
	best := make([]float64, m)
	diag := make([]float64, m)

	for j := 0; j < m; j++ {
		carried := 0.0
		if j > 0 {
			carried = best[j-1] + scoreGap
		}
		if hayLower[j] != pat[0] {
			best[j] = carried
			continue
		}
		v := scoreMatch + positionBonus(hay, j)
		if j == 0 {
			v += bonusFirstChar
		}
		diag[j] = v
		best[j] = v
		if j > 0 {
			best[j] = max(v, carried)
		}
	}

	for i := 1; i < n; i++ {
		prevBest, best = best, prevBest
		prevDiag, diag = diag, prevDiag
		clear(best)
		clear(diag)

		for j := i; j < m; j++ {
			if hayLower[j] != pat[i] {
				best[j] = best[j-1] + scoreGap
				continue
			}
			v := scoreMatch + positionBonus(hay, j)
			if prevDiag[j-1] > 0 {
				v += consecutive
			}
			diag[j] = v + prevDiag[j-1]
			best[j] = max(diag[j], prevBest[j]+scoreGap)
		}
	}

	return best[m-1]
}

// positionBonus scores where in the haystack a matched rune sits.
func positionBonus(hay []rune, j int) float64 {
	if j == 0 {
		return bonusWord
	}

	var bonus float64
	prev, cur := hay[j-1], hay[j]

	if isWordSeparator(prev) {
		bonus += bonusWord
	}
	switch prev {
	case '/':
		bonus += bonusSlash
	case '.':
		bonus += bonusDot
	}
	if unicode.IsUpper(cur) && unicode.IsLower(prev) {
		bonus += bonusCamel
	}
	if cur == prev {
		bonus += bonusConsecutive
	}
	return bonus
}

func isWordSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '_' || r == '-'
}
