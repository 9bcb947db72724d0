// ABOUTME: Usage history: per-identity launch counts persisted as identity<TAB>count lines
// ABOUTME: Opt-in; without a path every count reads zero and writes are no-ops

package history

import (
	"bufio"
	"bytes"
	"cmp"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/mauromedda/fuzzyd-go/internal/log"
)

// Store maps item identities to usage counts.
// The zero value is a disabled store.
type Store struct {
	mu     sync.RWMutex
	path   string
	counts map[string]uint32
}

// Open returns a Store backed by path. An empty path yields a disabled
// store. A missing or unreadable file is treated as empty history.
func Open(path string) *Store {
	s := &Store{path: path, counts: make(map[string]uint32)}
	if path == "" {
		return s
	}

	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug("history: open %s: %v", path, err)
		}
		return s
	}
	defer f.Close()

	s.counts = Parse(f)
	log.Debug("history: loaded %d entries from %s", len(s.counts), path)
	return s
}

// Enabled reports whether the store has a persistence location.
func (s *Store) Enabled() bool {
	return s != nil && s.path != ""
}

// Path returns the persistence location, or "" when disabled.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Count returns the usage count for identity; 0 when unknown or disabled.
func (s *Store) Count(identity string) int {
	if !s.Enabled() {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int(s.counts[identity])
}

// Len returns the number of identities with a recorded count.
func (s *Store) Len() int {
	if !s.Enabled() {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.counts)
}

// RecordUsage increments the count for identity and rewrites the whole file.
// Save failures are logged and otherwise ignored.
func (s *Store) RecordUsage(identity string) {
	if !s.Enabled() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c := s.counts[identity]; c < math.MaxUint32 {
		s.counts[identity] = c + 1
	}
	if err := s.save(); err != nil {
		log.Warn("history: %v", err)
	}
}

// save writes all counts to a temp file and renames it over the history
// file. Caller must hold s.mu.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, s.counts); err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing temp history: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp history: %w", err)
	}
	return nil
}

// Parse reads identity<TAB>count records. Lines that do not split into
// exactly two fields, or whose count is not a valid uint32, are skipped.
// Lines have no length limit.
func Parse(r io.Reader) map[string]uint32 {
	counts := make(map[string]uint32)
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			parseLine(counts, strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			if err != io.EOF {
				log.Debug("history: read: %v", err)
			}
			return counts
		}
	}
}

func parseLine(counts map[string]uint32, line string) {
	fields := strings.Split(line, "\t")
	if len(fields) != 2 {
		return
	}
	n, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return
	}
	counts[fields[0]] = uint32(n)
}

// Write emits counts as identity<TAB>count lines, highest count first and
// identity order within equal counts. Identities containing a tab or newline
// cannot be represented and are left out.
func Write(w io.Writer, counts map[string]uint32) error {
	ids := make([]string, 0, len(counts))
	for id := range counts {
		if strings.ContainsAny(id, "\t\n\r") {
			log.Debug("history: not persisting identity with delimiter: %q", id)
			continue
		}
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	bw := bufio.NewWriter(w)
	for _, id := range ids {
		if _, err := fmt.Fprintf(bw, "%s\t%d\n", id, counts[id]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
