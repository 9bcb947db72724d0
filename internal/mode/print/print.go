// ABOUTME: Headless print mode: ranks one query and writes the results as text, JSON, or JSON lines
// ABOUTME: Formatters share one interface so the ranking loop is format-agnostic

package print

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/mauromedda/fuzzyd-go/internal/finder"
)

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// Config configures print mode.
type Config struct {
	Format string // "text" (default), "json", "jsonl"
	Limit  int    // 0 = unlimited
}

// Ranker ranks candidates for a query.
type Ranker interface {
	Find(query string) []finder.Match
}

// Result is one printed match.
type Result struct {
	Score       float64 `json:"score"`
	Display     string  `json:"display"`
	Identity    string  `json:"identity"`
	Description string  `json:"description,omitempty"`
	Origin      string  `json:"origin,omitempty"`
}

// Run ranks query once and writes up to cfg.Limit results to w.
func Run(w io.Writer, r Ranker, query string, cfg Config) error {
	f, err := newFormatter(cfg.Format, w)
	if err != nil {
		return err
	}

	matches := r.Find(query)
	if cfg.Limit > 0 && len(matches) > cfg.Limit {
		matches = matches[:cfg.Limit]
	}

	for _, m := range matches {
		if err := f.result(Result{
			Score:       m.Score,
			Display:     m.Item.Display,
			Identity:    m.Item.Identity,
			Description: m.Item.Description,
			Origin:      m.Item.OriginPath,
		}); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
	}
	if err := f.end(); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

// formatter abstracts output formatting.
type formatter interface {
	result(Result) error
	end() error
}

func newFormatter(format string, w io.Writer) (formatter, error) {
	switch format {
	case "", FormatText:
		return &textFormatter{w: w}, nil
	case FormatJSON:
		return &jsonFormatter{w: w, results: []Result{}}, nil
	case FormatJSONL:
		return &jsonlFormatter{enc: json.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json or jsonl)", format)
	}
}

// textFormatter writes "score<TAB>display<TAB>identity" lines.
type textFormatter struct {
	w io.Writer
}

func (f *textFormatter) result(r Result) error {
	_, err := fmt.Fprintf(f.w, "%s\t%s\t%s\n", strconv.FormatFloat(r.Score, 'f', 1, 64), r.Display, r.Identity)
	return err
}

func (f *textFormatter) end() error { return nil }

// jsonFormatter buffers results and writes a single array.
type jsonFormatter struct {
	w       io.Writer
	results []Result
}

func (f *jsonFormatter) result(r Result) error {
	f.results = append(f.results, r)
	return nil
}

func (f *jsonFormatter) end() error {
	enc := json.NewEncoder(f.w)
	enc.SetIndent("", "  ")
	return enc.Encode(f.results)
}

// jsonlFormatter writes one object per line as results arrive.
type jsonlFormatter struct {
	enc *json.Encoder
}

func (f *jsonlFormatter) result(r Result) error { return f.enc.Encode(r) }

func (f *jsonlFormatter) end() error { return nil }
