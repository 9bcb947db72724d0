// ABOUTME: Launches a selected item as a transient systemd user unit via systemd-run
// ABOUTME: Builds a unique unit name, resolves the executable prefix, supports dry runs

package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/exec"
	"strings"
	"unicode"

	"github.com/mauromedda/fuzzyd-go/internal/finder"
	"github.com/mauromedda/fuzzyd-go/internal/log"
)

// ErrExecutableNotFound is returned when no prefix of an item's command
// names an existing file.
var ErrExecutableNotFound = errors.New("executable not found")

// SystemdRunPath is the systemd-run binary.
const SystemdRunPath = "/usr/bin/systemd-run"

// Systemd launches items through systemd-run.
type Systemd struct {
	DryRun     bool
	Parameters []string  // extra systemd-run arguments, already env-expanded
	Out        io.Writer // dry-run output; defaults to os.Stdout

	// lookup, run and rand are swapped in tests.
	lookup func(string) (string, error)
	run    func(*exec.Cmd) error
	rand   func() int
}

// NewSystemd returns a launcher with the given systemd-run parameters.
func NewSystemd(dryRun bool, parameters []string) *Systemd {
	return &Systemd{DryRun: dryRun, Parameters: parameters, Out: os.Stdout}
}

// Launch starts item and waits for systemd-run to hand it off.
func (s *Systemd) Launch(ctx context.Context, item finder.Item) error {
	args, err := s.Command(item)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, SystemdRunPath, args...)
	if s.DryRun {
		out := s.Out
		if out == nil {
			out = os.Stdout
		}
		fmt.Fprintf(out, "Dry run: %s\n", strings.Join(cmd.Args, " "))
		return nil
	}

	log.Debug("launching: %s", strings.Join(cmd.Args, " "))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := s.runCmd(cmd); err != nil {
		return fmt.Errorf("launching %s: %w", item.Display, err)
	}
	return nil
}

// Command returns the systemd-run arguments for item.
func (s *Systemd) Command(item finder.Item) ([]string, error) {
	exe, rest, ok := resolveExecutable(item.Identity, s.lookPath)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrExecutableNotFound, item.Identity)
	}

	args := make([]string, 0, len(s.Parameters)+3+len(rest))
	args = append(args, s.Parameters...)
	args = append(args, "--unit", UnitName(item.Display, s.randomSuffix()))
	args = append(args, exe)
	args = append(args, rest...)
	return args, nil
}

// UnitName builds "app-fuzzyd-<slug>-<NNNNNN>" from a display name.
func UnitName(display string, suffix int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(display) {
		switch {
		case r == '-' || r == ' ':
			b.WriteByte('_')
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return fmt.Sprintf("app-fuzzyd-%s-%06d", b.String(), suffix)
}

// resolveExecutable splits command on whitespace and returns the longest
// prefix that resolves to an executable, with surrounding quotes removed,
// plus the remaining words as arguments.
func resolveExecutable(command string, lookup func(string) (string, error)) (string, []string, bool) {
	parts := strings.Fields(command)
	for i := len(parts); i > 0; i-- {
		candidate := strings.Trim(strings.Join(parts[:i], " "), `"`)
		if candidate == "" {
			continue
		}
		if exe, err := lookup(candidate); err == nil {
			return exe, parts[i:], true
		}
	}
	return "", nil, false
}

// lookPath accepts existing paths as-is and searches $PATH for bare names.
func (s *Systemd) lookPath(name string) (string, error) {
	if s.lookup != nil {
		return s.lookup(name)
	}
	if strings.ContainsRune(name, '/') {
		if _, err := os.Stat(name); err != nil {
			return "", err
		}
		return name, nil
	}
	return exec.LookPath(name)
}

func (s *Systemd) runCmd(cmd *exec.Cmd) error {
	if s.run != nil {
		return s.run(cmd)
	}
	return cmd.Run()
}

func (s *Systemd) randomSuffix() int {
	if s.rand != nil {
		return s.rand()
	}
	return 100_000 + rand.IntN(900_000)
}
