// ABOUTME: Environment variable expansion in config string fields
// ABOUTME: Replaces $VAR and ${VAR}; unset variables are left verbatim

package config

import (
	"os"
	"regexp"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// ResolveEnvVars expands environment references in systemd-run parameters
// and the history file path.
func ResolveEnvVars(c *Config) {
	for i, p := range c.SystemdRun.Parameters {
		c.SystemdRun.Parameters[i] = ExpandEnv(p)
	}
	c.History.File = ExpandEnv(c.History.File)
}

// ExpandEnv replaces $VAR and ${VAR} with their values. References to unset
// variables are kept as written.
func ExpandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return match
	})
}
