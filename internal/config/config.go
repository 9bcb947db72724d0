// ABOUTME: YAML configuration for fuzzyd: UI prompt/colors, history, systemd-run parameters, keys
// ABOUTME: Missing default file yields defaults; an explicit path must exist and parse

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the loaded configuration.
type Config struct {
	Debug      bool                `yaml:"debug"`
	UI         UIConfig            `yaml:"ui"`
	History    HistoryConfig       `yaml:"history"`
	SystemdRun SystemdRunConfig    `yaml:"systemd_run"`
	Keys       map[string][]string `yaml:"keys,omitempty"`
}

// UIConfig controls the interactive picker.
type UIConfig struct {
	Prompt         string `yaml:"prompt"`
	HighlightColor string `yaml:"highlight_color"`
	Icons          *bool  `yaml:"icons,omitempty"`
}

// ShowIcons reports whether source icons are drawn (default true).
func (u UIConfig) ShowIcons() bool {
	return u.Icons == nil || *u.Icons
}

// HistoryConfig controls usage history.
type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	File    string `yaml:"file,omitempty"`
}

// IsEnabled reports whether history is on (default true).
func (h HistoryConfig) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// SystemdRunConfig holds extra systemd-run arguments.
type SystemdRunConfig struct {
	Parameters []string `yaml:"parameters"`
}

const (
	defaultPrompt    = "#"
	defaultHighlight = "green"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		UI: UIConfig{Prompt: defaultPrompt, HighlightColor: defaultHighlight},
	}
}

// Load reads the configuration at path. An empty path selects the default
// location, where a missing file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = ConfigFile()
	}

	cfg, err := loadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	ResolveEnvVars(cfg)
	return cfg, nil
}

// loadFile parses a YAML config file over the defaults.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.UI.Prompt == "" {
		cfg.UI.Prompt = defaultPrompt
	}
	if cfg.UI.HighlightColor == "" {
		cfg.UI.HighlightColor = defaultHighlight
	}
	return cfg, nil
}

// HistoryOverrides carries command-line history settings.
type HistoryOverrides struct {
	Disable bool
	File    string
}

// HistoryFile resolves the history location: disabled wins, then the
// command-line file, then the configured file, then the default data path.
// Returns "" when history is off.
func (c *Config) HistoryFile(o HistoryOverrides) string {
	switch {
	case o.Disable || !c.History.IsEnabled():
		return ""
	case o.File != "":
		return ExpandHome(o.File)
	case c.History.File != "":
		return ExpandHome(c.History.File)
	default:
		return DefaultHistoryFile()
	}
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// DefaultYAML is written by "fuzzyd init".
const DefaultYAML = `debug: false

ui:
  prompt: "#"
  highlight_color: "green"
  icons: true

history:
  enabled: true
  file: "~/.local/share/fuzzyd/fuzzyd.history"

systemd_run:
  parameters:
    - "--quiet"
    - "--user"
    - "--property=EnvironmentFile=-$HOME/.config/sway/env"
    - "--slice"
    - "app.slice"

# Override picker keys per action, e.g.:
# keys:
#   accept: ["enter", "ctrl+j"]
`

// ErrConfigExists is returned by WriteDefault when the file already exists.
var ErrConfigExists = errors.New("config file already exists")

// WriteDefault writes DefaultYAML to path, creating parent directories.
// An existing file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultYAML), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
