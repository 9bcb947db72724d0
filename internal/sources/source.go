// ABOUTME: Source collaborators that enumerate launchable candidates
// ABOUTME: Each source has a fixed rank; lower ranks win identity collisions

package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mauromedda/fuzzyd-go/internal/finder"
)

// ErrUnknownSource is returned by ParseKinds for unrecognized names.
var ErrUnknownSource = errors.New("unknown source")

// Source enumerates candidate items.
type Source interface {
	Name() string
	Rank() int
	Find(ctx context.Context) ([]finder.Item, error)
}

// Kind names accepted on the command line.
const (
	KindDesktop = "desktop"
	KindPath    = "path"
)

// Ranks, in precedence order.
const (
	RankDesktop = iota
	RankPath
)

// Priorities used for ranking.
const (
	PriorityDesktop = 2
	PriorityPath    = 1
)

// Kinds lists all known source names.
func Kinds() []string {
	return []string{KindDesktop, KindPath}
}

// ParseKinds maps source names to sources. No names selects every source.
// Duplicates are ignored.
func ParseKinds(names []string) ([]Source, error) {
	if len(names) == 0 {
		names = Kinds()
	}

	seen := make(map[string]bool, len(names))
	var out []Source
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if seen[n] {
			continue
		}
		seen[n] = true

		switch n {
		case KindDesktop:
			out = append(out, NewDesktop())
		case KindPath:
			out = append(out, NewPath(""))
		default:
			return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownSource, n, strings.Join(Kinds(), ", "))
		}
	}
	return out, nil
}
