// ABOUTME: Tests for flag parsing and the init/version subcommands
// ABOUTME: Exercises interleaved positional sources and explicit --query detection

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/mauromedda/fuzzyd-go/internal/config"
)

func TestParseFlags_Defaults(t *testing.T) {
	args, err := parseFlags(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if args.hasQuery || args.debug || args.format != "text" || len(args.sources) != 0 {
		t.Errorf("unexpected defaults: %+v", args)
	}
}

func TestParseFlags_InterleavedSources(t *testing.T) {
	args, err := parseFlags([]string{"--debug", "path", "--dry-run", "desktop"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if !args.debug || !args.dryRun {
		t.Errorf("flags after a positional were dropped: %+v", args)
	}
	if want := []string{"path", "desktop"}; !slices.Equal(args.sources, want) {
		t.Errorf("sources = %q; want %q", args.sources, want)
	}
}

func TestParseFlags_EmptyQueryIsStillPrintMode(t *testing.T) {
	args, err := parseFlags([]string{"--query", "", "--limit", "5", "--format", "json"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if !args.hasQuery || args.query != "" {
		t.Errorf("hasQuery = %v query = %q; want explicit empty query", args.hasQuery, args.query)
	}
	if args.limit != 5 || args.format != "json" {
		t.Errorf("limit = %d format = %q", args.limit, args.format)
	}
}

func TestParseFlags_Unknown(t *testing.T) {
	var out bytes.Buffer
	if _, err := parseFlags([]string{"--bogus"}, &out); err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Errorf("usage not printed: %q", out.String())
	}
}

func TestRun_Version(t *testing.T) {
	var stdout bytes.Buffer
	if err := run([]string{"--version"}, &stdout, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "fuzzyd ") {
		t.Errorf("version output = %q", stdout.String())
	}
}

func TestRun_Init(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fuzzyd", "config.yaml")
	var stdout bytes.Buffer

	if err := run([]string{"init", "--config", path}, &stdout, &bytes.Buffer{}); err != nil {
		t.Fatalf("init: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written config: %v", err)
	}
	if string(data) != config.DefaultYAML {
		t.Error("written config differs from the default")
	}

	err = run([]string{"init", "--config", path}, &stdout, &bytes.Buffer{})
	if !errors.Is(err, config.ErrConfigExists) {
		t.Fatalf("second init err = %v; want ErrConfigExists", err)
	}

	if err := run([]string{"init", "--force", "--config", path}, &stdout, &bytes.Buffer{}); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

func TestRun_InitRejectsArguments(t *testing.T) {
	if err := run([]string{"init", "extra"}, &bytes.Buffer{}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for extra init arguments")
	}
}
