// ABOUTME: Picker model: readline-style query editing, per-keystroke ranking, upward list
// ABOUTME: Value semantics like any Bubble Tea leaf; Choice/Err report the outcome

package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/fuzzyd-go/internal/config"
	"github.com/mauromedda/fuzzyd-go/internal/finder"
	"github.com/mauromedda/fuzzyd-go/pkg/fuzzy"
	"github.com/mauromedda/fuzzyd-go/pkg/width"
)

// ErrInterrupted is returned when the user aborts the picker with Ctrl-C.
var ErrInterrupted = errors.New("interrupted")

// defaultRows is the list height used before the first WindowSizeMsg.
const defaultRows = 10

// Ranker ranks the candidate collection for a query.
type Ranker interface {
	Find(query string) []finder.Match
	ItemCount() int
}

// Options configure the picker.
type Options struct {
	Prompt         string
	HighlightColor string
	Icons          bool
	Debug          bool
	Keys           *config.Keybindings
}

// Model is the picker state.
type Model struct {
	ranker Ranker
	opts   Options
	keys   map[string]config.KeyAction
	styles styles

	query  []rune
	cursor int

	matches  []finder.Match
	selected int
	offset   int
	rankTime time.Duration

	// past holds queries submitted this session; pastPos == len(past)
	// means the live draft is being edited.
	past    []string
	pastPos int
	draft   string

	width  int
	height int

	choice *finder.Item
	err    error
	done   bool
}

// New returns a picker over r showing the empty-query ranking.
func New(r Ranker, opts Options) Model {
	if opts.Keys == nil {
		opts.Keys = config.NewKeybindings()
	}
	m := Model{
		ranker: r,
		opts:   opts,
		keys:   opts.Keys.Index(),
		styles: newStyles(opts.HighlightColor),
	}
	m.rerank()
	return m
}

// Init returns nil; ranking already happened in New.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key and window-size messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
		if m.done {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.adjustScroll()
	}
	return m, nil
}

// Query returns the current query text.
func (m Model) Query() string { return string(m.query) }

// Cursor returns the cursor position in runes.
func (m Model) Cursor() int { return m.cursor }

// Matches returns the current ranking.
func (m Model) Matches() []finder.Match { return m.matches }

// SelectedIndex returns the index of the highlighted match; 0 is the best.
func (m Model) SelectedIndex() int { return m.selected }

// Choice returns the accepted item, or nil when the picker was cancelled.
func (m Model) Choice() *finder.Item { return m.choice }

// Err returns ErrInterrupted after Ctrl-C.
func (m Model) Err() error { return m.err }

// Done reports whether the picker has finished.
func (m Model) Done() bool { return m.done }

func (m *Model) handleKey(msg tea.KeyMsg) {
	if action, ok := m.keys[msg.String()]; ok {
		m.apply(action)
		return
	}
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		if msg.Alt {
			return
		}
		m.insert(msg.Runes)
	}
}

func (m *Model) apply(action config.KeyAction) {
	switch action {
	case config.ActionSelectNext:
		if m.selected < len(m.matches)-1 {
			m.selected++
			m.adjustScroll()
		}
	case config.ActionSelectPrev:
		if m.selected > 0 {
			m.selected--
			m.adjustScroll()
		}
	case config.ActionCursorLeft:
		m.cursor = max(m.cursor-1, 0)
	case config.ActionCursorRight:
		m.cursor = min(m.cursor+1, len(m.query))
	case config.ActionHome:
		m.cursor = 0
	case config.ActionEnd:
		m.cursor = len(m.query)
	case config.ActionDeleteBack:
		if m.cursor > 0 {
			m.edit(append(m.query[:m.cursor-1:m.cursor-1], m.query[m.cursor:]...), m.cursor-1)
		}
	case config.ActionDeleteToStart:
		if m.cursor > 0 {
			m.edit(append([]rune(nil), m.query[m.cursor:]...), 0)
		}
	case config.ActionDeleteToEnd:
		if m.cursor < len(m.query) {
			m.edit(m.query[:m.cursor:m.cursor], m.cursor)
		}
	case config.ActionDeleteWordLeft:
		if start := wordStart(m.query, m.cursor); start < m.cursor {
			m.edit(append(m.query[:start:start], m.query[m.cursor:]...), start)
		}
	case config.ActionHistoryUp:
		m.historyUp()
	case config.ActionHistoryDown:
		m.historyDown()
	case config.ActionAccept:
		if len(m.matches) == 0 {
			return
		}
		item := m.matches[m.selected].Item
		m.remember()
		m.choice = &item
		m.done = true
	case config.ActionCancel:
		if len(m.query) > 0 {
			m.remember()
			m.edit(nil, 0)
			return
		}
		m.done = true
	case config.ActionInterrupt:
		m.err = ErrInterrupted
		m.done = true
	}
}

func (m *Model) insert(rs []rune) {
	q := make([]rune, 0, len(m.query)+len(rs))
	q = append(q, m.query[:m.cursor]...)
	q = append(q, rs...)
	q = append(q, m.query[m.cursor:]...)
	m.edit(q, m.cursor+len(rs))
}

// edit replaces the query, moves the cursor, and re-ranks.
func (m *Model) edit(q []rune, cursor int) {
	m.query = q
	m.cursor = cursor
	m.pastPos = len(m.past)
	m.rerank()
}

func (m *Model) setQuery(s string) {
	m.query = []rune(s)
	m.cursor = len(m.query)
	m.rerank()
}

func (m *Model) rerank() {
	start := time.Now()
	m.matches = m.ranker.Find(string(m.query))
	m.rankTime = time.Since(start)
	m.selected = 0
	m.offset = 0
}

// remember appends the current query to the session history, skipping
// immediate repeats.
func (m *Model) remember() {
	q := string(m.query)
	if q != "" && (len(m.past) == 0 || m.past[len(m.past)-1] != q) {
		m.past = append(m.past, q)
	}
	m.pastPos = len(m.past)
}

func (m *Model) historyUp() {
	if m.pastPos == 0 {
		return
	}
	if m.pastPos == len(m.past) {
		m.draft = string(m.query)
	}
	m.pastPos--
	m.setQuery(m.past[m.pastPos])
}

func (m *Model) historyDown() {
	if m.pastPos >= len(m.past) {
		return
	}
	m.pastPos++
	if m.pastPos == len(m.past) {
		m.setQuery(m.draft)
		return
	}
	m.setQuery(m.past[m.pastPos])
}

// wordStart finds where the word before cursor begins, skipping trailing
// spaces first.
func wordStart(q []rune, cursor int) int {
	i := cursor
	for i > 0 && unicode.IsSpace(q[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(q[i-1]) {
		i--
	}
	return i
}

func (m Model) headerLines() int {
	if m.opts.Debug {
		return 3
	}
	return 1
}

func (m Model) listRows() int {
	if m.height <= 0 {
		return defaultRows
	}
	return max(m.height-m.headerLines()-1, 1)
}

func (m *Model) adjustScroll() {
	rows := m.listRows()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
}

// View renders the header, the list growing upward, and the prompt last.
func (m Model) View() string {
	if m.done {
		return ""
	}
	var lines []string
	lines = append(lines, m.header()...)

	rows := m.listRows()
	end := min(m.offset+rows, len(m.matches))
	for pad := rows - (end - m.offset); pad > 0; pad-- {
		lines = append(lines, "")
	}
	for i := end - 1; i >= m.offset; i-- {
		lines = append(lines, m.row(i))
	}

	lines = append(lines, m.promptLine())
	return strings.Join(lines, "\n")
}

func (m Model) header() []string {
	s := m.styles
	var out []string
	if len(m.matches) == 0 {
		out = append(out, s.Dim.Render("No matches"))
	} else {
		it := m.matches[m.selected].Item
		title := m.fit(it.Display)
		line := s.Title.Render(title)
		if rest := m.available() - width.Cells(title) - 2; rest > 0 {
			line += "  " + s.Dim.Render(width.Truncate(it.Description, rest))
		}
		out = append(out, line)
	}
	if !m.opts.Debug {
		return out
	}

	exec, score := "", ""
	if len(m.matches) > 0 {
		sel := m.matches[m.selected]
		exec, score = sel.Item.Identity, fmt.Sprintf("%.1f", sel.Score)
	}
	out = append(out,
		s.Dim.Render(m.fit(fmt.Sprintf("exec: %s  score: %s", exec, score))),
		s.Dim.Render(m.fit(fmt.Sprintf("%d/%d matches  ranked in %s", len(m.matches), m.ranker.ItemCount(), m.rankTime.Round(time.Microsecond)))),
	)
	return out
}

func (m Model) row(i int) string {
	s := m.styles
	it := m.matches[i].Item

	marker := "  "
	if i == m.selected {
		marker = s.Marker.Render("> ")
	}
	prefix := ""
	if m.opts.Icons && it.Icon != "" {
		prefix = it.Icon + " "
	}

	display := it.Display
	if avail := m.available() - 2 - width.Cells(prefix); avail > 0 {
		display = width.Truncate(display, avail)
	}
	body := prefix + highlight(display, m.Query(), s, i == m.selected)
	return marker + body
}

// highlight styles the runes of display that the query matched.
func highlight(display, query string, s styles, selected bool) string {
	set := fuzzy.PositionSet(display, query)
	var b strings.Builder
	for i, r := range display {
		switch {
		case set[i]:
			b.WriteString(s.Highlight.Render(string(r)))
		case selected:
			b.WriteString(s.Selected.Render(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (m Model) promptLine() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.Prompt.Render(m.opts.Prompt))
	b.WriteByte(' ')
	b.WriteString(string(m.query[:m.cursor]))
	if m.cursor < len(m.query) {
		b.WriteString(s.Cursor.Render(string(m.query[m.cursor])))
		b.WriteString(string(m.query[m.cursor+1:]))
	} else {
		b.WriteString(s.Cursor.Render(" "))
	}
	return b.String()
}

func (m Model) available() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m Model) fit(s string) string {
	return width.Truncate(s, m.available())
}
