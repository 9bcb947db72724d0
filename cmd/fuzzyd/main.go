// ABOUTME: CLI entry point for fuzzyd
// ABOUTME: Parses flags, handles init/version, and dispatches to the app run

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	// termfix must be imported before any package that imports bubbletea.
	_ "github.com/mauromedda/fuzzyd-go/internal/termfix"

	"golang.org/x/term"

	"github.com/mauromedda/fuzzyd-go/internal/app"
	"github.com/mauromedda/fuzzyd-go/internal/config"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errNoTerminal is returned when the picker would need a terminal.
var errNoTerminal = errors.New("stdin is not a terminal; use --query for non-interactive ranking")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(argv []string, stdout, stderr io.Writer) error {
	if len(argv) > 0 && argv[0] == "init" {
		return runInit(argv[1:], stdout, stderr)
	}

	args, err := parseFlags(argv, stderr)
	if err != nil {
		return err
	}

	if args.version {
		fmt.Fprintf(stdout, "fuzzyd %s (%s) built %s\n", version, commit, date)
		return nil
	}

	interactive := !args.hasQuery && args.exec == "" && !args.explainConfig
	if interactive && !term.IsTerminal(int(os.Stdin.Fd())) {
		return errNoTerminal
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx, app.Options{
		ConfigPath:     args.config,
		Debug:          args.debug,
		Exec:           args.exec,
		DisableHistory: args.disableHistory,
		HistoryFile:    args.historyFile,
		DryRun:         args.dryRun,
		Sources:        args.sources,
		Query:          args.query,
		HasQuery:       args.hasQuery,
		Limit:          args.limit,
		Format:         args.format,
		ExplainConfig:  args.explainConfig,
	}, app.Deps{Stdout: stdout})
}

func runInit(argv []string, stdout, stderr io.Writer) error {
	args, err := parseInitFlags(argv, stderr)
	if err != nil {
		return err
	}
	path := args.config
	if path == "" {
		path = config.ConfigFile()
	}
	if err := config.WriteDefault(path, args.force); err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("%w (use --force to overwrite)", err)
		}
		return err
	}
	fmt.Fprintf(stdout, "Default configuration written to %s\n", path)
	return nil
}
