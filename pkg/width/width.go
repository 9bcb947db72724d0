// ABOUTME: Terminal cell widths for item names and descriptions, grapheme-cluster aware
// ABOUTME: Truncates to a column budget with an ellipsis; pure ASCII takes a fast path

package width

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Cells returns the number of terminal columns s occupies. Control
// characters count as zero.
func Cells(s string) int {
	if isPlainASCII(s) {
		return len(s)
	}
	w := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w += clusterWidth(cluster)
	}
	return w
}

// Truncate shortens s so it fits in maxCells columns, ending it with
// Ellipsis when anything was cut. Clusters are never split.
func Truncate(s string, maxCells int) string {
	if maxCells <= 0 {
		return ""
	}
	if Cells(s) <= maxCells {
		return s
	}
	budget := maxCells - runewidth.StringWidth(Ellipsis)
	if budget <= 0 {
		return Ellipsis
	}

	var b strings.Builder
	used := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		cw := clusterWidth(cluster)
		if used+cw > budget {
			break
		}
		b.WriteString(cluster)
		used += cw
	}
	b.WriteString(Ellipsis)
	return b.String()
}

// PadRight appends spaces until s fills cells columns.
func PadRight(s string, cells int) string {
	if gap := cells - Cells(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}

func clusterWidth(cluster string) int {
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}
