// ABOUTME: Ranking engine: scores every item per query and orders by relevance
// ABOUTME: Combines weighted field scores, usage history boost, and item priority

package finder

import (
	"cmp"
	"slices"
	"strings"

	"github.com/mauromedda/fuzzyd-go/internal/history"
	"github.com/mauromedda/fuzzyd-go/pkg/fuzzy"
)

// Ranking weights.
const (
	historyBoost = 10.0

	weightDisplay     = 1.0
	weightIdentity    = 0.8
	weightDescription = 0.6
	weightOrigin      = 0.4
)

// Finder answers queries over a Collection, biased by a history Store.
// Find is read-only; AddItems must not run concurrently with Find.
type Finder struct {
	items    *Collection
	history  *history.Store
	snapshot []Item
	stale    bool
}

// New returns an empty Finder. A nil or disabled store contributes no boost.
func New(h *history.Store) *Finder {
	if h == nil {
		h = history.Open("")
	}
	return &Finder{items: NewCollection(), history: h}
}

// AddItems merges a source batch into the candidate collection.
func (f *Finder) AddItems(batch []Item) {
	f.items.Merge(batch)
	f.stale = true
}

// ItemCount returns the number of unique candidates.
func (f *Finder) ItemCount() int {
	return f.items.Len()
}

// History returns the store used for boosts.
func (f *Finder) History() *history.Store {
	return f.history
}

// RecordUsage increments the usage count for identity and persists it.
func (f *Finder) RecordUsage(identity string) {
	f.history.RecordUsage(identity)
}

// Find returns the items matching query, best first. Ties are broken by
// identity so the order is deterministic for a given input.
//
// An empty query returns every item scored priority + boost. A non-empty
// query scores fields against the lower-cased query and returns only items
// with a positive weighted score, scaled by priority after adding the boost.
func (f *Finder) Find(query string) []Match {
	items := f.candidates()
	query = strings.ToLower(query)

	matches := make([]Match, 0, len(items))
	if query == "" {
		for _, it := range items {
			s := float64(it.Priority) + f.boost(it.Identity)
			matches = append(matches, Match{Score: s, Item: it})
		}
		sortMatches(matches)
		return matches
	}

	for _, it := range items {
		total := weightedScore(it, query)
		if total <= 0 {
			continue
		}
		s := (total + f.boost(it.Identity)) * float64(it.Priority)
		matches = append(matches, Match{Score: s, Item: it})
	}
	sortMatches(matches)
	return matches
}

func (f *Finder) boost(identity string) float64 {
	return float64(f.history.Count(identity)) * historyBoost
}

// candidates returns the identity-ordered snapshot, rebuilding it after merges.
func (f *Finder) candidates() []Item {
	if f.stale || f.snapshot == nil {
		f.snapshot = f.items.Items()
		f.stale = false
	}
	return f.snapshot
}

// weightedScore sums per-field scores. Only the display field may
// contribute a negative value.
func weightedScore(it Item, query string) float64 {
	total := 0.0
	if s, ok := fuzzy.Score(it.Display, query); ok {
		total += s * weightDisplay
	}
	if it.Identity != it.Display {
		total += positive(it.Identity, query) * weightIdentity
	}
	if it.SearchDesc {
		total += positive(it.Description, query) * weightDescription
	}
	if it.OriginPath != it.Identity {
		total += positive(it.OriginPath, query) * weightOrigin
	}
	return total
}

func positive(field, query string) float64 {
	s, ok := fuzzy.Score(field, query)
	if !ok {
		return 0
	}
	return max(s, 0)
}

// sortMatches orders by descending score, then ascending identity.
// cmp.Compare is a total order over float64.
func sortMatches(ms []Match) {
	slices.SortFunc(ms, func(a, b Match) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return strings.Compare(a.Item.Identity, b.Item.Identity)
	})
}
