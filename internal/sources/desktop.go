// ABOUTME: XDG desktop-entry source: parses applications/*.desktop under the data dirs
// ABOUTME: Emits the main entry plus one item per [Desktop Action] section

package sources

import (
	"bufio"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/mauromedda/fuzzyd-go/internal/finder"
	"github.com/mauromedda/fuzzyd-go/internal/log"
)

const (
	mainSection   = "Desktop Entry"
	actionPrefix  = "Desktop Action "
	noDescription = "No description"

	iconDesktop = "\uf108"
)

// Desktop enumerates desktop entries below each data dir's applications/.
type Desktop struct {
	DataDirs []string
}

// NewDesktop returns a Desktop source over the XDG data directories.
func NewDesktop() *Desktop {
	return &Desktop{DataDirs: XDGDataDirs()}
}

// Name implements Source.
func (d *Desktop) Name() string { return KindDesktop }

// Rank implements Source.
func (d *Desktop) Rank() int { return RankDesktop }

// Find walks every applications directory in parallel.
func (d *Desktop) Find(ctx context.Context) ([]finder.Item, error) {
	perDir := make([][]finder.Item, len(d.DataDirs))

	g, ctx := errgroup.WithContext(ctx)
	for i, dir := range d.DataDirs {
		g.Go(func() error {
			items, err := walkApplications(ctx, filepath.Join(dir, "applications"))
			perDir[i] = items
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []finder.Item
	for _, items := range perDir {
		out = append(out, items...)
	}
	return out, nil
}

func walkApplications(ctx context.Context, root string) ([]finder.Item, error) {
	var items []finder.Item
	err := filepath.WalkDir(root, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			// Missing or unreadable directories are normal across XDG dirs.
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if de.IsDir() || filepath.Ext(path) != ".desktop" {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			log.Debug("desktop: %v", err)
			return nil
		}
		items = append(items, ParseDesktopEntry(f, path)...)
		f.Close()
		return nil
	})
	return items, err
}

// entry holds the key/value pairs of one section.
type entry map[string]string

// ParseDesktopEntry reads a desktop file and returns its main item followed
// by its action items in file order. Files without Name and Exec in the main
// section, or marked Hidden or NoDisplay, yield no items.
func ParseDesktopEntry(r io.Reader, path string) []finder.Item {
	main := entry{}
	actions := map[string]entry{}
	var order []string
	var section string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = line[1 : len(line)-1]
			if strings.HasPrefix(section, actionPrefix) {
				if _, ok := actions[section]; !ok {
					actions[section] = entry{}
					order = append(order, section)
				}
			}
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch {
		case section == mainSection:
			main[key] = value
		case strings.HasPrefix(section, actionPrefix):
			actions[section][key] = value
		}
	}
	if err := sc.Err(); err != nil {
		log.Debug("desktop: reading %s: %v", path, err)
	}

	if main["Hidden"] == "true" || main["NoDisplay"] == "true" {
		return nil
	}

	var items []finder.Item
	icon := main["Icon"]
	if it, ok := desktopItem(main, icon, path, mainSection); ok {
		items = append(items, it)
	}
	for _, sec := range order {
		if it, ok := desktopItem(actions[sec], icon, path, sec); ok {
			items = append(items, it)
		}
	}
	return items
}

func desktopItem(e entry, icon, path, section string) (finder.Item, bool) {
	name, exec := e["Name"], e["Exec"]
	if name == "" || exec == "" {
		return finder.Item{}, false
	}
	name = norm.NFC.String(name)

	display, origin := name, path
	if action, ok := strings.CutPrefix(section, actionPrefix); ok {
		display = name + " (" + action + ")"
		origin = path + ":" + section
	}

	desc, searchDesc := norm.NFC.String(e["Comment"]), true
	if desc == "" {
		desc, searchDesc = noDescription, false
	}

	return finder.Item{
		Display:     display,
		Identity:    ParseExec(exec, icon),
		Priority:    PriorityDesktop,
		SourceRank:  RankDesktop,
		Description: desc,
		SearchDesc:  searchDesc,
		OriginPath:  origin,
		Icon:        iconDesktop,
	}, true
}

var fieldCodeRe = regexp.MustCompile(`%[fFuUdDnNvmcki%]`)

// ParseExec turns a desktop Exec value into a command line: file and URL
// field codes are dropped, %i expands to "--icon <icon>", %% becomes %, and
// one pair of surrounding quotes is removed.
func ParseExec(exec, icon string) string {
	out := fieldCodeRe.ReplaceAllStringFunc(exec, func(code string) string {
		switch code {
		case "%%":
			return "%"
		case "%i":
			if icon == "" {
				return ""
			}
			return "--icon " + icon
		}
		return ""
	})
	out = strings.Join(strings.Fields(out), " ")
	out = strings.TrimPrefix(out, `"`)
	out = strings.TrimSuffix(out, `"`)
	return out
}

// XDGDataDirs returns $XDG_DATA_DIRS followed by $XDG_DATA_HOME, with the
// freedesktop defaults for unset variables.
func XDGDataDirs() []string {
	dirs := filepath.SplitList(os.Getenv("XDG_DATA_DIRS"))
	if len(dirs) == 0 {
		dirs = []string{"/usr/local/share", "/usr/share"}
	}
	return append(dirs, XDGDataHome())
}

// XDGDataHome returns $XDG_DATA_HOME or ~/.local/share.
func XDGDataHome() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".local", "share")
	}
	return filepath.Join(home, ".local", "share")
}
