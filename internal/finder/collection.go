// ABOUTME: Aggregator: merges source batches into one identity-keyed collection
// ABOUTME: On collision the lower SourceRank wins; equal ranks keep the first-seen item

package finder

import (
	"slices"
	"strings"
)

// Collection holds exactly one Item per identity. It is owned by a single
// goroutine; batches are produced concurrently but merged sequentially.
type Collection struct {
	items map[string]Item
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{items: make(map[string]Item)}
}

// Merge folds batch into the collection. An incoming item replaces an
// existing one only when its SourceRank is strictly lower.
func (c *Collection) Merge(batch []Item) {
	if c.items == nil {
		c.items = make(map[string]Item, len(batch))
	}
	for _, it := range batch {
		existing, ok := c.items[it.Identity]
		if ok && it.SourceRank >= existing.SourceRank {
			continue
		}
		c.items[it.Identity] = it
	}
}

// Get returns the item stored under identity.
func (c *Collection) Get(identity string) (Item, bool) {
	it, ok := c.items[identity]
	return it, ok
}

// Len returns the number of unique identities.
func (c *Collection) Len() int {
	return len(c.items)
}

// Items returns a snapshot of all items ordered by identity.
func (c *Collection) Items() []Item {
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it)
	}
	slices.SortFunc(out, func(a, b Item) int {
		return strings.Compare(a.Identity, b.Identity)
	})
	return out
}
