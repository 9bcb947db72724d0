// ABOUTME: Tests for the ranking engine
// ABOUTME: Covers empty and non-empty queries, field weighting, history boost, and ordering

package finder

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/mauromedda/fuzzyd-go/internal/history"
	"github.com/mauromedda/fuzzyd-go/pkg/fuzzy"
)

func identities(ms []Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Item.Identity
	}
	return out
}

func TestFind_EndToEnd(t *testing.T) {
	t.Parallel()

	f := New(nil)
	f.AddItems([]Item{
		{Identity: "/bin/foo", Display: "Foo", Priority: 1},
		{Identity: "/bin/bar", Display: "Bar Baz", Priority: 1},
	})

	got := f.Find("ba")
	if len(got) != 1 {
		t.Fatalf("Find(ba) = %v; want exactly one match", identities(got))
	}
	if got[0].Item.Display != "Bar Baz" {
		t.Errorf("match = %q; want Bar Baz", got[0].Item.Display)
	}
	if got[0].Score <= 0 {
		t.Errorf("score = %v; want positive", got[0].Score)
	}
}

func TestFind_EmptyQueryIncludesAllSorted(t *testing.T) {
	t.Parallel()

	f := New(nil)
	f.AddItems([]Item{
		{Identity: "low", Display: "low", Priority: 1},
		{Identity: "high", Display: "high", Priority: 2},
		{Identity: "also-low", Display: "also low", Priority: 1},
	})

	got := f.Find("")
	want := []string{"high", "also-low", "low"}
	ids := identities(got)
	if len(ids) != len(want) {
		t.Fatalf("Find(\"\") = %v; want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("Find(\"\")[%d] = %q; want %q", i, ids[i], want[i])
		}
	}
	if got[0].Score != 2 {
		t.Errorf("empty-query score = %v; want priority 2", got[0].Score)
	}
}

func TestFind_EmptyQueryHistoryIsAdditive(t *testing.T) {
	t.Parallel()

	h := history.Open(filepath.Join(t.TempDir(), "h"))
	f := New(h)
	f.AddItems([]Item{{Identity: "a", Display: "a", Priority: 2}})
	f.RecordUsage("a")
	f.RecordUsage("a")

	got := f.Find("")
	if got[0].Score != 2+2*historyBoost {
		t.Errorf("score = %v; want %v", got[0].Score, 2+2*historyBoost)
	}
}

func TestFind_HistoryMonotonic(t *testing.T) {
	t.Parallel()

	h := history.Open(filepath.Join(t.TempDir(), "h"))
	f := New(h)
	f.AddItems([]Item{
		{Identity: "/usr/bin/firefox", Display: "Firefox", Priority: 2},
	})

	prev := f.Find("fire")[0].Score
	for range 3 {
		f.RecordUsage("/usr/bin/firefox")
		cur := f.Find("fire")[0].Score
		if cur <= prev {
			t.Fatalf("score did not increase after usage: %v -> %v", prev, cur)
		}
		prev = cur
	}
}

func TestFind_HistoryReordersTies(t *testing.T) {
	t.Parallel()

	h := history.Open(filepath.Join(t.TempDir(), "h"))
	f := New(h)
	f.AddItems([]Item{
		{Identity: "a-term", Display: "Term", Priority: 1, OriginPath: "a-term"},
		{Identity: "b-term", Display: "Term", Priority: 1, OriginPath: "b-term"},
	})

	if first := f.Find("term")[0].Item.Identity; first != "a-term" {
		t.Fatalf("tie should break by identity, got %q first", first)
	}
	f.RecordUsage("b-term")
	if first := f.Find("term")[0].Item.Identity; first != "b-term" {
		t.Errorf("history boost should promote b-term, got %q first", first)
	}
}

func TestFind_PriorityIsMultiplicative(t *testing.T) {
	t.Parallel()

	f := New(nil)
	f.AddItems([]Item{
		{Identity: "one", Display: "Editor", Priority: 1, OriginPath: "one"},
		{Identity: "two", Display: "Editor", Priority: 2, OriginPath: "two"},
	})

	got := f.Find("edit")
	if len(got) != 2 {
		t.Fatalf("got %d matches; want 2", len(got))
	}
	if got[0].Item.Identity != "two" {
		t.Fatalf("higher priority should rank first, got %q", got[0].Item.Identity)
	}
	// Identity fields "one"/"two" do not match "edit", so only display differs by priority.
	if got[0].Score != 2*got[1].Score {
		t.Errorf("scores %v, %v; want 2x ratio", got[0].Score, got[1].Score)
	}
}

func TestFind_SecondaryFieldsContribute(t *testing.T) {
	t.Parallel()

	f := New(nil)
	f.AddItems([]Item{
		{Identity: "nautilus", Display: "Files", Description: "Access and organize files", SearchDesc: true, Priority: 2, OriginPath: "nautilus"},
		{Identity: "hidden-desc", Display: "Other", Description: "organize", SearchDesc: false, Priority: 2, OriginPath: "hidden-desc"},
		{Identity: `"/usr/bin/xyz"`, Display: "xyz", OriginPath: "/usr/share/organizer/xyz", Priority: 1},
	})

	ids := identities(f.Find("organize"))
	has := func(id string) bool {
		for _, x := range ids {
			if x == id {
				return true
			}
		}
		return false
	}
	if !has("nautilus") {
		t.Errorf("description match should surface nautilus; got %v", ids)
	}
	if has("hidden-desc") {
		t.Errorf("unsearched description must not match; got %v", ids)
	}
	if !has(`"/usr/bin/xyz"`) {
		t.Errorf("origin path match should surface xyz; got %v", ids)
	}
}

func TestFind_SecondaryFieldsClampedAtZero(t *testing.T) {
	t.Parallel()

	it := Item{
		Display:     "ab",
		Identity:    "ab" + strings.Repeat("x", 200),
		Description: "ab" + strings.Repeat("y", 200),
		SearchDesc:  true,
		OriginPath:  "ab" + strings.Repeat("z", 200),
		Priority:    2,
	}
	for _, field := range []string{it.Identity, it.Description, it.OriginPath} {
		if s, ok := fuzzy.Score(field, "ab"); !ok || s >= 0 {
			t.Fatalf("Score(%.8q..., ab) = (%v, %v); want a negative match", field, s, ok)
		}
	}
	display, ok := fuzzy.Score(it.Display, "ab")
	if !ok || display <= 0 {
		t.Fatalf("Score(ab, ab) = (%v, %v); want a positive match", display, ok)
	}

	f := New(nil)
	f.AddItems([]Item{it})
	got := f.Find("ab")
	if len(got) != 1 {
		t.Fatalf("Find(ab) = %v; want one match", identities(got))
	}
	if want := display * 2; got[0].Score != want {
		t.Errorf("score = %v; want display-only score %v times priority", got[0].Score, want)
	}
}

func TestFind_IdentityEqualToDisplayNotDoubleCounted(t *testing.T) {
	t.Parallel()

	single := New(nil)
	single.AddItems([]Item{{Identity: "vim", Display: "vim", OriginPath: "vim", Priority: 1}})
	double := New(nil)
	double.AddItems([]Item{{Identity: "vim ", Display: "vim", OriginPath: "vim ", Priority: 1}})

	s := single.Find("vim")[0].Score
	d := double.Find("vim")[0].Score
	if s >= d {
		t.Errorf("identical identity should not add score: single=%v distinct=%v", s, d)
	}
}

func TestFind_QueryCaseNormalized(t *testing.T) {
	t.Parallel()

	f := New(nil)
	f.AddItems([]Item{{Identity: "/bin/bar", Display: "Bar Baz", Priority: 1}})

	lower := f.Find("ba")
	upper := f.Find("BA")
	if len(lower) != 1 || len(upper) != 1 || lower[0].Score != upper[0].Score {
		t.Errorf("query case should not matter: %v vs %v", lower, upper)
	}
}

func TestFind_NoMatchExcluded(t *testing.T) {
	t.Parallel()

	f := New(nil)
	f.AddItems([]Item{{Identity: "/bin/ls", Display: "ls", Priority: 1, OriginPath: "/bin/ls"}})
	if got := f.Find("zzz"); len(got) != 0 {
		t.Errorf("Find(zzz) = %v; want none", identities(got))
	}
}

func TestFind_SeesLaterBatches(t *testing.T) {
	t.Parallel()

	f := New(nil)
	f.AddItems([]Item{{Identity: "a", Display: "alpha", Priority: 1}})
	if n := len(f.Find("")); n != 1 {
		t.Fatalf("got %d items; want 1", n)
	}
	f.AddItems([]Item{{Identity: "b", Display: "beta", Priority: 1}})
	if n := len(f.Find("")); n != 2 {
		t.Errorf("got %d items after second batch; want 2", n)
	}
	if f.ItemCount() != 2 {
		t.Errorf("ItemCount = %d; want 2", f.ItemCount())
	}
}

func BenchmarkFind(b *testing.B) {
	f := New(nil)
	batch := make([]Item, 0, 2000)
	names := []string{"Firefox", "Visual Studio Code", "GNOME Terminal", "Files", "LibreOffice Writer"}
	for i := range 2000 {
		name := names[i%len(names)]
		id := "/usr/bin/" + name + string(rune('a'+i%26)) + string(rune('a'+(i/26)%26)) + string(rune('a'+(i/676)%26))
		batch = append(batch, Item{Identity: id, Display: name, Priority: 1 + i%2, OriginPath: id})
	}
	f.AddItems(batch)

	for b.Loop() {
		f.Find("vsc")
	}
}
