// ABOUTME: Tests for the usage history store
// ABOUTME: Covers disabled stores, round-trips, permissive loading, and file format

package history

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen_DisabledStore(t *testing.T) {
	t.Parallel()

	s := Open("")
	if s.Enabled() {
		t.Fatal("store without path should be disabled")
	}
	s.RecordUsage("/bin/foo")
	s.RecordUsage("/bin/foo")
	if got := s.Count("/bin/foo"); got != 0 {
		t.Errorf("Count = %d; want 0 for disabled store", got)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d; want 0", s.Len())
	}
}

func TestStore_NilIsDisabled(t *testing.T) {
	t.Parallel()

	var s *Store
	if s.Enabled() || s.Count("x") != 0 || s.Path() != "" {
		t.Error("nil store should behave as disabled")
	}
	s.RecordUsage("x")
}

func TestOpen_MissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nope", "fuzzyd.history")
	s := Open(path)
	if !s.Enabled() {
		t.Fatal("store with path should be enabled")
	}
	if got := s.Count("anything"); got != 0 {
		t.Errorf("Count = %d; want 0", got)
	}
}

func TestOpen_UnreadablePathIsEmpty(t *testing.T) {
	t.Parallel()

	// A directory cannot be read as a history file.
	s := Open(t.TempDir())
	if s.Len() != 0 {
		t.Errorf("Len = %d; want 0", s.Len())
	}
}

func TestRecordUsage_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "fuzzyd.history")
	s := Open(path)

	usage := map[string]int{
		"/usr/bin/firefox":  3,
		`"/usr/bin/code"`:   1,
		"gnome-terminal -e": 5,
	}
	for id, n := range usage {
		for range n {
			s.RecordUsage(id)
		}
	}
	for id, n := range usage {
		if got := s.Count(id); got != n {
			t.Errorf("in-memory Count(%q) = %d; want %d", id, got, n)
		}
	}

	reopened := Open(path)
	if reopened.Len() != len(usage) {
		t.Fatalf("reopened Len = %d; want %d", reopened.Len(), len(usage))
	}
	for id, n := range usage {
		if got := reopened.Count(id); got != n {
			t.Errorf("reopened Count(%q) = %d; want %d", id, got, n)
		}
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file should not remain after save, stat err = %v", err)
	}
}

func TestRecordUsage_Monotonic(t *testing.T) {
	t.Parallel()

	s := Open(filepath.Join(t.TempDir(), "h"))
	prev := s.Count("x")
	for range 5 {
		s.RecordUsage("x")
		cur := s.Count("x")
		if cur <= prev {
			t.Fatalf("count did not increase: %d -> %d", prev, cur)
		}
		prev = cur
	}
}

func TestParse_SkipsMalformedLines(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"good\t4",
		"no-tab-here",
		"three\tfields\t1",
		"negative\t-1",
		"notanumber\tabc",
		"overflow\t99999999999",
		"",
		"/bin/ok\t0",
		"spaced name\t2",
	}, "\n")

	counts := Parse(strings.NewReader(input))
	want := map[string]uint32{"good": 4, "/bin/ok": 0, "spaced name": 2}
	if len(counts) != len(want) {
		t.Fatalf("Parse = %v; want %v", counts, want)
	}
	for id, n := range want {
		if counts[id] != n {
			t.Errorf("counts[%q] = %d; want %d", id, counts[id], n)
		}
	}
}

func TestParse_LongLineDoesNotStopLoading(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 2<<20)
	input := "before\t1\n" + long + "\n" + long + "\t3\r\nafter\t5"

	counts := Parse(strings.NewReader(input))
	want := map[string]uint32{"before": 1, long: 3, "after": 5}
	if len(counts) != len(want) {
		t.Fatalf("Parse loaded %d records; want %d", len(counts), len(want))
	}
	for id, n := range want {
		if counts[id] != n {
			t.Errorf("counts[%.10q...] = %d; want %d", id, counts[id], n)
		}
	}
}

func TestWrite_Format(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Write(&buf, map[string]uint32{
		"b":          2,
		"a":          2,
		"c":          7,
		"bad\tentry": 1,
		"bad\nentry": 1,
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "c\t7\na\t2\nb\t2\n"
	if buf.String() != want {
		t.Errorf("Write output = %q; want %q", buf.String(), want)
	}
}

func TestRecordUsage_OverwritesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "h")
	if err := os.WriteFile(path, []byte("old\t1\ngarbage line\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := Open(path)
	s.RecordUsage("new")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "garbage") {
		t.Errorf("malformed lines should not survive a rewrite: %q", data)
	}
	if !strings.Contains(string(data), "old\t1\n") || !strings.Contains(string(data), "new\t1\n") {
		t.Errorf("unexpected file contents: %q", data)
	}
}
