// Package chapterlist provides the surah index view with search and a
// continue-reading shortcut.
package chapterlist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tilawa/internal/icons"
	"github.com/llehouerou/tilawa/internal/keymap"
	"github.com/llehouerou/tilawa/internal/quran"
	"github.com/llehouerou/tilawa/internal/search"
	"github.com/llehouerou/tilawa/internal/ui"
	"github.com/llehouerou/tilawa/internal/ui/cursor"
	"github.com/llehouerou/tilawa/internal/ui/render"
	"github.com/llehouerou/tilawa/internal/ui/styles"
)

// Result tells the parent which chapter to open, 0 for none.
type Result struct {
	Chapter int
}

// Model is the chapter index.
type Model struct {
	ui.Base
	all      []quran.ChapterSummary
	filtered []quran.ChapterSummary
	cursor   cursor.Cursor
	input    textinput.Model

	searching bool
	loading   bool
	err       string
	last      int          // last opened chapter, 0 if none
	recent    map[int]bool // recently opened chapters, marked in the list
}

const recentMark = "•"

// New creates an empty chapter list.
func New() Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search by name, Arabic or meaning..."
	ti.CharLimit = 64

	return Model{
		cursor:  cursor.New(ui.ScrollMargin),
		input:   ti,
		loading: true,
		recent:  make(map[int]bool),
	}
}

// SetChapters installs the index and reapplies the current filter.
func (m *Model) SetChapters(chapters []quran.ChapterSummary) {
	m.all = chapters
	m.loading = false
	m.err = ""
	m.refilter()
	m.reveal(m.last)
}

// SetError shows msg in place of the list.
func (m *Model) SetError(msg string) {
	m.loading = false
	m.err = msg
}

// SetLastChapter enables the continue-reading shortcut for n (0 disables it)
// and marks n as recently read.
func (m *Model) SetLastChapter(n int) {
	if !quran.ValidNumber(n) {
		n = 0
	}
	m.last = n
	if n > 0 {
		m.recent[n] = true
		m.reveal(n)
	}
}

// reveal moves the cursor to chapter n when it is visible.
func (m *Model) reveal(n int) {
	for i, c := range m.filtered {
		if c.Number == n {
			m.cursor.Focus(i, len(m.filtered), m.listHeight())
			return
		}
	}
}

// SetRecent marks the given chapters as recently read.
func (m *Model) SetRecent(chapters []int) {
	clear(m.recent)
	for _, n := range chapters {
		if quran.ValidNumber(n) {
			m.recent[n] = true
		}
	}
}

// IsRecent reports whether chapter n is marked as recently read.
func (m Model) IsRecent(n int) bool {
	return m.recent[n]
}

// LastChapter returns the continue-reading target, 0 if none.
func (m Model) LastChapter() int {
	return m.last
}

// SetSize sets the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.input.Width = max(width-4, 10)
}

// Loading reports whether the index is still being fetched.
func (m Model) Loading() bool {
	return m.loading
}

// Searching reports whether the search input has focus.
func (m Model) Searching() bool {
	return m.searching
}

// Query returns the current search text.
func (m Model) Query() string {
	return m.input.Value()
}

// Visible returns the chapters shown after filtering.
func (m Model) Visible() []quran.ChapterSummary {
	return m.filtered
}

// Selected returns the chapter under the cursor.
func (m Model) Selected() (quran.ChapterSummary, bool) {
	pos := m.cursor.Pos()
	if pos < 0 || pos >= len(m.filtered) {
		return quran.ChapterSummary{}, false
	}
	return m.filtered[pos], true
}

// StartSearch focuses the search input.
func (m *Model) StartSearch() tea.Cmd {
	m.searching = true
	return m.input.Focus()
}

// HandleAction processes a bound key while the search input is not focused.
func (m *Model) HandleAction(a keymap.Action) (Result, tea.Cmd) {
	if m.cursor.HandleAction(a, len(m.filtered), m.listHeight()) {
		return Result{}, nil
	}

	switch a { //nolint:exhaustive // remaining actions belong to other views
	case keymap.ActionSearch:
		return Result{}, m.StartSearch()
	case keymap.ActionSelect:
		if c, ok := m.Selected(); ok {
			return Result{Chapter: c.Number}, nil
		}
	case keymap.ActionContinueReading:
		if m.last > 0 {
			return Result{Chapter: m.last}, nil
		}
	case keymap.ActionBack:
		if m.input.Value() != "" {
			m.input.SetValue("")
			m.refilter()
		}
	}
	return Result{}, nil
}

// UpdateSearch feeds a key to the focused search input. Enter opens the
// selected match, esc clears the query, arrows move through matches.
func (m *Model) UpdateSearch(msg tea.KeyMsg) (Result, tea.Cmd) {
	switch msg.Type { //nolint:exhaustive // all other keys edit the query
	case tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		m.input.SetValue("")
		m.refilter()
		return Result{}, nil
	case tea.KeyEnter:
		m.searching = false
		m.input.Blur()
		if c, ok := m.Selected(); ok {
			return Result{Chapter: c.Number}, nil
		}
		return Result{}, nil
	case tea.KeyUp:
		m.cursor.Move(-1, len(m.filtered), m.listHeight())
		return Result{}, nil
	case tea.KeyDown:
		m.cursor.Move(1, len(m.filtered), m.listHeight())
		return Result{}, nil
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.refilter()
		m.cursor.JumpStart()
	}
	return Result{}, cmd
}

func (m *Model) refilter() {
	m.filtered = search.Filter(m.all, m.input.Value())
	m.cursor.ClampToBounds(len(m.filtered))
	m.cursor.EnsureVisible(len(m.filtered), m.listHeight())
}

func (m Model) headerLines() int {
	n := ui.HeaderHeight
	if m.searching || m.input.Value() != "" {
		n++
	}
	if m.last > 0 {
		n++
	}
	return n
}

func (m Model) listHeight() int {
	return m.BodyHeight(m.headerLines())
}

// View renders the list. spinner is shown while the index loads.
func (m Model) View(spinner string) string {
	width := m.Width()
	if width == 0 || m.Height() == 0 {
		return ""
	}
	t := styles.T()

	var b strings.Builder
	title := styles.Heading("The Noble Quran")
	count := t.S().Muted.Render(fmt.Sprintf("%d surahs", len(m.all)))
	b.WriteString(render.Row(title, count, width))
	b.WriteString("\n")
	b.WriteString(t.S().Subtle.Render(render.Separator(width)))

	if m.searching || m.input.Value() != "" {
		b.WriteString("\n")
		b.WriteString(m.input.View())
	}
	if m.last > 0 {
		b.WriteString("\n")
		b.WriteString(m.continueLine())
	}

	switch {
	case m.loading:
		b.WriteString("\n\n")
		b.WriteString(spinner + " Loading surahs...")
		return b.String()
	case m.err != "":
		b.WriteString("\n\n")
		b.WriteString(t.S().Error.Render(m.err))
		return b.String()
	case len(m.filtered) == 0:
		b.WriteString("\n\n")
		b.WriteString(t.S().Muted.Render("No surah matches " + strconv.Quote(m.input.Value())))
		return b.String()
	}

	start, end := m.cursor.VisibleRange(len(m.filtered), m.listHeight())
	for i := start; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(m.renderRow(m.filtered[i], i == m.cursor.Pos(), width))
	}
	return b.String()
}

func (m Model) continueLine() string {
	t := styles.T()
	label := fmt.Sprintf("Continue reading Surah %d", m.last)
	for _, c := range m.all {
		if c.Number == m.last {
			label += " · " + c.Name
			break
		}
	}
	keys := t.S().Subtle.Render("(c)")
	return t.S().VerseNumber.Render(icons.FormatBookmark(label)) + " " + keys
}

func (m Model) renderRow(c quran.ChapterSummary, selected bool, width int) string {
	t := styles.T()

	mark := " "
	if m.recent[c.Number] {
		mark = recentMark
	}
	num := fmt.Sprintf("%3d", c.Number)
	name := render.TruncateAndPad(c.Name, 18)
	meaning := render.Truncate(c.NameTranslation, max(width/3, 10))
	left := mark + num + "  " + name + "  " + meaning

	meta := fmt.Sprintf("%s · %d ayahs", c.RevelationPlace, c.TotalVerses)
	right := meta + "  " + c.NameArabic

	row := render.Row(left, right, width)
	if selected {
		return t.S().Cursor.Render(row)
	}
	// mark and number take four cells
	const lead = 4 + 2 + 18 + 2
	return t.S().VerseNumber.Render(mark) + t.S().Base.Render(num+"  "+name) + "  " +
		t.S().Muted.Render(render.Row(meaning, right, width-lead))
}
