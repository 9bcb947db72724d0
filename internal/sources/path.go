// ABOUTME: $PATH source: every owner-executable regular file in the deduplicated PATH dirs
// ABOUTME: Directories are canonicalized and scanned in parallel; earlier dirs win name clashes

package sources

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/fuzzyd-go/internal/finder"
)

const (
	pathDescription = "Executable in PATH"
	iconPath        = "\uf120"
)

// Path enumerates executables reachable through a PATH-style list.
type Path struct {
	// List is a PATH-style directory list; empty means $PATH.
	List string
}

// NewPath returns a Path source over list, or $PATH when list is empty.
func NewPath(list string) *Path {
	return &Path{List: list}
}

// Name implements Source.
func (p *Path) Name() string { return KindPath }

// Rank implements Source.
func (p *Path) Rank() int { return RankPath }

type executable struct {
	name string
	real string
}

// Find scans each unique directory concurrently.
func (p *Path) Find(ctx context.Context) ([]finder.Item, error) {
	list := p.List
	if list == "" {
		list = os.Getenv("PATH")
	}
	dirs := uniqueDirs(filepath.SplitList(list))

	perDir := make([][]executable, len(dirs))
	g, ctx := errgroup.WithContext(ctx)
	for i, dir := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			perDir[i] = scanDir(dir)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var items []finder.Item
	for _, exes := range perDir {
		for _, exe := range exes {
			if seen[exe.name] {
				continue
			}
			seen[exe.name] = true
			items = append(items, finder.Item{
				Display:     exe.name,
				Identity:    `"` + exe.real + `"`,
				Priority:    PriorityPath,
				SourceRank:  RankPath,
				Description: pathDescription,
				SearchDesc:  false,
				OriginPath:  exe.real,
				Icon:        iconPath,
			})
		}
	}
	return items, nil
}

// uniqueDirs canonicalizes dirs, dropping unresolvable entries and
// duplicates while keeping first-occurrence order.
func uniqueDirs(dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	var out []string
	for _, d := range dirs {
		if d == "" {
			continue
		}
		real, err := canonical(d)
		if err != nil || seen[real] {
			continue
		}
		seen[real] = true
		out = append(out, real)
	}
	return out
}

func scanDir(dir string) []executable {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []executable
	for _, e := range entries {
		full := filepath.Join(dir, e.Name())
		info, err := os.Stat(full)
		if err != nil || !info.Mode().IsRegular() || info.Mode().Perm()&0o100 == 0 {
			continue
		}
		real, err := canonical(full)
		if err != nil {
			continue
		}
		out = append(out, executable{name: e.Name(), real: real})
	}
	return out
}

func canonical(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
