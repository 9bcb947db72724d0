// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Flags may appear before or after positional source names

package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/mauromedda/fuzzyd-go/internal/mode/print"
	"github.com/mauromedda/fuzzyd-go/internal/sources"
)

type cliArgs struct {
	debug          bool
	config         string
	exec           string
	disableHistory bool
	historyFile    string
	dryRun         bool
	query          string
	hasQuery       bool
	limit          int
	format         string
	explainConfig  bool
	version        bool
	sources        []string
}

func newFlagSet(name string, args *cliArgs, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)

	fs.BoolVar(&args.debug, "debug", false, "Enable debug logging and the debug header")
	fs.StringVar(&args.config, "config", "", "Use a custom config file")
	fs.StringVar(&args.exec, "exec", "", "Launch a command directly, skipping the picker")
	fs.BoolVar(&args.disableHistory, "disable-history", false, "Disable usage history")
	fs.StringVar(&args.historyFile, "history-file", "", "Use a custom history file")
	fs.BoolVar(&args.dryRun, "dry-run", false, "Print the systemd-run command instead of running it")
	fs.StringVar(&args.query, "query", "", "Rank a query once and print the results")
	fs.IntVar(&args.limit, "limit", 0, "Maximum number of results in print mode (0 = all)")
	fs.StringVar(&args.format, "format", print.FormatText, "Print mode output: text, json or jsonl")
	fs.BoolVar(&args.explainConfig, "explain-config", false, "Show the effective configuration and exit")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: %s [flags] [%s ...]\n", name, strings.Join(sources.Kinds(), "|"))
		fmt.Fprintf(out, "       %s init [--force] [--config FILE]\n\nFlags:\n", name)
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags parses argv (without the program name). Positional arguments
// are source names; flags may be interleaved with them.
func parseFlags(argv []string, out io.Writer) (cliArgs, error) {
	var args cliArgs
	fs := newFlagSet("fuzzyd", &args, out)

	rest := argv
	for {
		if err := fs.Parse(rest); err != nil {
			return args, err
		}
		rest = fs.Args()
		if len(rest) == 0 {
			break
		}
		args.sources = append(args.sources, rest[0])
		rest = rest[1:]
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "query" {
			args.hasQuery = true
		}
	})
	return args, nil
}

type initArgs struct {
	force  bool
	config string
}

func parseInitFlags(argv []string, out io.Writer) (initArgs, error) {
	var args initArgs
	fs := flag.NewFlagSet("fuzzyd init", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.BoolVar(&args.force, "force", false, "Overwrite an existing config file")
	fs.StringVar(&args.config, "config", "", "Write to this path instead of the default location")
	if err := fs.Parse(argv); err != nil {
		return args, err
	}
	if fs.NArg() > 0 {
		return args, fmt.Errorf("init: unexpected arguments %q", fs.Args())
	}
	return args, nil
}
