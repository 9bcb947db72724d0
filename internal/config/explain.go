// ABOUTME: Human-readable rendering of the effective configuration
// ABOUTME: Printed by --explain-config and logged at debug level on startup

package config

import (
	"fmt"
	"slices"
	"strings"
)

// Explain renders a human-readable summary of the effective configuration.
// historyFile is the resolved history location ("" when disabled).
func Explain(c *Config, historyFile string) string {
	if c == nil {
		c = Default()
	}

	var b strings.Builder

	b.WriteString("=== General ===\n")
	fmt.Fprintf(&b, "  Debug:          %v\n", c.Debug)
	b.WriteString("\n")

	b.WriteString("=== UI ===\n")
	fmt.Fprintf(&b, "  Prompt:         %s\n", c.UI.Prompt)
	fmt.Fprintf(&b, "  HighlightColor: %s\n", c.UI.HighlightColor)
	fmt.Fprintf(&b, "  Icons:          %v\n", c.UI.ShowIcons())
	b.WriteString("\n")

	b.WriteString("=== History ===\n")
	if historyFile == "" {
		b.WriteString("  Enabled:        false\n")
	} else {
		b.WriteString("  Enabled:        true\n")
		fmt.Fprintf(&b, "  File:           %s\n", historyFile)
	}
	b.WriteString("\n")

	b.WriteString("=== systemd-run ===\n")
	if len(c.SystemdRun.Parameters) > 0 {
		fmt.Fprintf(&b, "  Parameters:     %s\n", strings.Join(c.SystemdRun.Parameters, " "))
	}
	b.WriteString("\n")

	if len(c.Keys) > 0 {
		b.WriteString("=== Keys ===\n")
		actions := make([]string, 0, len(c.Keys))
		for a := range c.Keys {
			actions = append(actions, a)
		}
		slices.Sort(actions)
		for _, a := range actions {
			fmt.Fprintf(&b, "  %s: %s\n", a, strings.Join(c.Keys[a], ", "))
		}
		b.WriteString("\n")
	}

	return b.String()
}
