// ABOUTME: Wires config, usage history, sources, ranking, picker and launcher into one run
// ABOUTME: Dispatches to direct --exec launch, headless print mode, or the interactive picker

package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mauromedda/fuzzyd-go/internal/config"
	"github.com/mauromedda/fuzzyd-go/internal/finder"
	"github.com/mauromedda/fuzzyd-go/internal/history"
	"github.com/mauromedda/fuzzyd-go/internal/launcher"
	"github.com/mauromedda/fuzzyd-go/internal/log"
	"github.com/mauromedda/fuzzyd-go/internal/mode/print"
	"github.com/mauromedda/fuzzyd-go/internal/sources"
	"github.com/mauromedda/fuzzyd-go/internal/ui"
)

// Options are the command-line settings for one run.
type Options struct {
	ConfigPath     string
	Debug          bool
	Exec           string
	DisableHistory bool
	HistoryFile    string
	DryRun         bool
	Sources        []string

	// Query selects print mode when HasQuery is set.
	Query    string
	HasQuery bool
	Limit    int
	Format   string

	ExplainConfig bool
}

// Launcher starts a selected item.
type Launcher interface {
	Launch(ctx context.Context, item finder.Item) error
}

// PickFunc shows the picker and returns the chosen item, or nil on cancel.
type PickFunc func(ctx context.Context, r ui.Ranker, opts ui.Options) (*finder.Item, error)

// Deps holds replaceable collaborators; zero values select the real ones.
type Deps struct {
	Sources  []sources.Source
	Launcher Launcher
	Pick     PickFunc
	Stdout   io.Writer
}

// Run executes one fuzzyd session.
func Run(ctx context.Context, opts Options, deps Deps) error {
	start := time.Now()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Debug {
		cfg.Debug = true
	}
	if cfg.Debug {
		log.SetLevel(log.LevelDebug)
	}

	stdout := deps.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	historyFile := cfg.HistoryFile(config.HistoryOverrides{
		Disable: opts.DisableHistory,
		File:    opts.HistoryFile,
	})
	if opts.ExplainConfig {
		_, err := io.WriteString(stdout, config.Explain(cfg, historyFile))
		return err
	}
	log.Debug("config:\n%s", config.Explain(cfg, historyFile))

	store := history.Open(historyFile)
	f := finder.New(store)

	l := deps.Launcher
	if l == nil {
		sd := launcher.NewSystemd(opts.DryRun, cfg.SystemdRun.Parameters)
		sd.Out = stdout
		l = sd
	}

	if opts.Exec != "" {
		return launch(ctx, f, l, ExecItem(opts.Exec))
	}

	srcs := deps.Sources
	if srcs == nil {
		srcs, err = sources.ParseKinds(opts.Sources)
		if err != nil {
			return err
		}
	}
	total := sources.Merge(f, sources.Load(ctx, srcs))
	log.Debug("total items added to finder: %d (%d unique)", total, f.ItemCount())
	log.Debug("initialized in %v", time.Since(start))

	if opts.HasQuery {
		return print.Run(stdout, f, opts.Query, print.Config{Format: opts.Format, Limit: opts.Limit})
	}

	pick := deps.Pick
	if pick == nil {
		pick = ui.Run
	}
	item, err := pick(ctx, f, ui.Options{
		Prompt:         cfg.UI.Prompt,
		HighlightColor: cfg.UI.HighlightColor,
		Icons:          cfg.UI.ShowIcons(),
		Debug:          cfg.Debug,
		Keys:           config.KeybindingsFrom(cfg.Keys),
	})
	if err != nil {
		return err
	}
	if item == nil {
		log.Debug("picker cancelled")
		return nil
	}
	return launch(ctx, f, l, *item)
}

// ExecItem wraps a raw command line as an item named after its executable.
func ExecItem(command string) finder.Item {
	return finder.Item{Display: execName(command), Identity: command}
}

func execName(command string) string {
	cmd := strings.TrimSpace(command)
	if rest, ok := strings.CutPrefix(cmd, `"`); ok {
		exe, _, _ := strings.Cut(rest, `"`)
		return filepath.Base(exe)
	}
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return ""
	}
	return filepath.Base(fields[0])
}

// launch records usage for item, then starts it.
func launch(ctx context.Context, f *finder.Finder, l Launcher, item finder.Item) error {
	log.Debug("launching: %s", item.Identity)
	f.RecordUsage(item.Identity)
	if err := l.Launch(ctx, item); err != nil {
		return fmt.Errorf("launch: %w", err)
	}
	return nil
}
