// ABOUTME: Standard filesystem paths for fuzzyd configuration and data
// ABOUTME: Resolves $XDG_CONFIG_HOME/fuzzyd and $XDG_DATA_HOME/fuzzyd

package config

import (
	"os"
	"path/filepath"
)

const appDirName = "fuzzyd"

// ConfigDir returns the user config directory ($XDG_CONFIG_HOME/fuzzyd).
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "."+appDirName)
	}
	return filepath.Join(dir, appDirName)
}

// ConfigFile returns the default config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DataDir returns the user data directory ($XDG_DATA_HOME/fuzzyd, default
// ~/.local/share/fuzzyd).
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return filepath.Join(d, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appDirName)
	}
	return filepath.Join(home, ".local", "share", appDirName)
}

// DefaultHistoryFile returns the default usage history path.
func DefaultHistoryFile() string {
	return filepath.Join(DataDir(), "fuzzyd.history")
}

// EnsureDir creates a directory and all parents if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
