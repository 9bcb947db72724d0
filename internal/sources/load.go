// ABOUTME: Fan-out/fan-in loading: one goroutine per source, sequential merge by the caller
// ABOUTME: Each source writes its own result slot; no shared mutable state while collecting

package sources

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/fuzzyd-go/internal/finder"
	"github.com/mauromedda/fuzzyd-go/internal/log"
)

// Batch is the result of running one source.
type Batch struct {
	Source   string
	Rank     int
	Items    []finder.Item
	Duration time.Duration
	Err      error
}

// Load runs all sources concurrently and returns one Batch per source, in
// input order. Every item is stamped with its source's rank. A failing
// source yields a Batch with Err set and no items.
func Load(ctx context.Context, srcs []Source) []Batch {
	batches := make([]Batch, len(srcs))

	var g errgroup.Group
	for i, src := range srcs {
		g.Go(func() error {
			start := time.Now()
			items, err := src.Find(ctx)
			if err != nil {
				items = nil
			}
			rank := src.Rank()
			for j := range items {
				items[j].SourceRank = rank
			}
			batches[i] = Batch{
				Source:   src.Name(),
				Rank:     rank,
				Items:    items,
				Duration: time.Since(start),
				Err:      err,
			}
			return nil
		})
	}
	_ = g.Wait() // goroutines report failures through their Batch

	return batches
}

// Merge folds batches into f one at a time and returns the number of items
// offered (before deduplication).
func Merge(f *finder.Finder, batches []Batch) int {
	total := 0
	for _, b := range batches {
		if b.Err != nil {
			log.Warn("source %s: %v", b.Source, b.Err)
			continue
		}
		f.AddItems(b.Items)
		total += len(b.Items)
		log.Debug("loaded %d items from %s source in %v", len(b.Items), b.Source, b.Duration)
	}
	return total
}
