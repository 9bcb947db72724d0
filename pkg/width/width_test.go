// ABOUTME: Tests for cell measurement, ellipsis truncation and padding
// ABOUTME: Includes wide CJK runes and combining sequences

package width

import "testing"

func TestCells(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"Firefox", 7},
		{"日本語", 6},
		{"é", 1},
		{"Ünïcödé", 7},
		{"tab\there", 7},
	}
	for _, tt := range tests {
		if got := Cells(tt.in); got != tt.want {
			t.Errorf("Cells(%q) = %d; want %d", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Firefox", 10, "Firefox"},
		{"Firefox", 7, "Firefox"},
		{"Firefox", 5, "Fire…"},
		{"Firefox", 1, "…"},
		{"Firefox", 0, ""},
		{"日本語テキスト", 5, "日本…"},
		{"日本語", 4, "日…"},
	}
	for _, tt := range tests {
		got := Truncate(tt.in, tt.max)
		if got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q; want %q", tt.in, tt.max, got, tt.want)
		}
		if tt.max > 0 && Cells(got) > tt.max {
			t.Errorf("Truncate(%q, %d) is %d cells wide", tt.in, tt.max, Cells(got))
		}
	}
}

func TestPadRight(t *testing.T) {
	t.Parallel()

	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("PadRight(ab, 4) = %q", got)
	}
	if got := PadRight("日本", 5); got != "日本 " {
		t.Errorf("PadRight(日本, 5) = %q", got)
	}
	if got := PadRight("abcdef", 3); got != "abcdef" {
		t.Errorf("PadRight should not shorten, got %q", got)
	}
}

func BenchmarkCells(b *testing.B) {
	for b.Loop() {
		Cells("Visual Studio Code – Insiders")
	}
}
