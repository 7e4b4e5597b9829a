// Package reader renders an open chapter: bismillah, verses with optional
// translations and chapter navigation. It implements scroll.Scroller so the
// verse being recited can be brought to the middle of the view.
package reader

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tilawa/internal/quran"
	"github.com/llehouerou/tilawa/internal/scroll"
	"github.com/llehouerou/tilawa/internal/ui"
	"github.com/llehouerou/tilawa/internal/ui/layout"
	"github.com/llehouerou/tilawa/internal/ui/render"
	"github.com/llehouerou/tilawa/internal/ui/styles"
)

const (
	bismillahArabic  = "بِسْمِ ٱللَّهِ ٱلرَّحْمَـٰنِ ٱلرَّحِيمِ"
	bismillahEnglish = "In the name of Allah, the Most Compassionate, Most Merciful"

	marginLeft = 2
)

// Highlighter reports the highlighted verse, -1 for none.
type Highlighter interface {
	Active() int
}

// Anchor is the scroll handle registered for each rendered verse.
type Anchor struct {
	Line   int // first content line of the verse
	Height int // lines occupied, including the trailing gap
}

type lineKind int

const (
	kindBlank lineKind = iota
	kindMarker
	kindArabic
	kindEnglish
	kindUrdu
	kindBismillah
	kindNote
	kindNav
)

type line struct {
	text  string
	kind  lineKind
	verse int // -1 outside verses
}

// Model is the reader view. It is used through a pointer because the scroll
// coordinator holds it as its Scroller.
type Model struct {
	ui.Base
	registry  *scroll.Registry
	highlight Highlighter

	chapterID   int
	chapter     *quran.Chapter
	bismillah   bool
	showEnglish bool
	showUrdu    bool
	playing     bool
	hasPrev     bool
	hasNext     bool
	notFound    string

	lines  []line
	offset int
	anim   animation
}

// New creates a reader registering verse anchors in registry.
func New(registry *scroll.Registry) *Model {
	return &Model{
		registry:    registry,
		showEnglish: true,
		showUrdu:    true,
	}
}

// SetHighlighter sets the source of the highlighted verse.
func (m *Model) SetHighlighter(h Highlighter) {
	m.highlight = h
}

// SetSize sets the view dimensions and re-lays out the text.
func (m *Model) SetSize(width, height int) {
	if width == m.Width() && height == m.Height() {
		return
	}
	m.Base.SetSize(width, height)
	m.layout()
}

// SetLoading shows the loading state for chapter id.
func (m *Model) SetLoading(id int) {
	m.chapterID = id
	m.chapter = nil
	m.notFound = ""
	m.offset = 0
	m.anim.stop()
	m.layout()
}

// SetNotFound shows msg in place of the verses.
func (m *Model) SetNotFound(id int, msg string) {
	m.chapterID = id
	m.chapter = nil
	m.notFound = msg
	m.layout()
}

// SetChapter shows ch from the top.
func (m *Model) SetChapter(ch *quran.Chapter, bismillah bool) {
	m.chapter = ch
	m.chapterID = ch.Number
	m.bismillah = bismillah
	m.notFound = ""
	m.offset = 0
	m.anim.stop()
	m.layout()
}

// SetNavigation enables the previous/next chapter hints.
func (m *Model) SetNavigation(hasPrev, hasNext bool) {
	if hasPrev == m.hasPrev && hasNext == m.hasNext {
		return
	}
	m.hasPrev = hasPrev
	m.hasNext = hasNext
	m.layout()
}

// SetTranslations selects which translations are shown.
func (m *Model) SetTranslations(english, urdu bool) {
	if english == m.showEnglish && urdu == m.showUrdu {
		return
	}
	m.showEnglish = english
	m.showUrdu = urdu
	m.layout()
}

// Translations returns the translation toggles.
func (m *Model) Translations() (english, urdu bool) {
	return m.showEnglish, m.showUrdu
}

// SetPlaying sets whether the highlighted verse is being recited right now.
func (m *Model) SetPlaying(playing bool) {
	m.playing = playing
}

// Chapter returns the displayed chapter, nil while loading.
func (m *Model) Chapter() *quran.Chapter {
	return m.chapter
}

// Offset returns the first visible content line.
func (m *Model) Offset() int {
	return m.offset
}

// LineCount returns the number of content lines.
func (m *Model) LineCount() int {
	return len(m.lines)
}

func (m *Model) bodyHeight() int {
	return m.BodyHeight(ui.HeaderHeight)
}

func (m *Model) maxOffset() int {
	return max(len(m.lines)-m.bodyHeight(), 0)
}

func (m *Model) clampOffset(o int) int {
	return min(max(o, 0), m.maxOffset())
}

// ScrollBy moves the view by delta lines and cancels any running animation.
func (m *Model) ScrollBy(delta int) {
	m.anim.stop()
	m.offset = m.clampOffset(m.offset + delta)
}

// ScrollHome jumps to the top.
func (m *Model) ScrollHome() {
	m.anim.stop()
	m.offset = 0
}

// ScrollEnd jumps to the bottom.
func (m *Model) ScrollEnd() {
	m.anim.stop()
	m.offset = m.maxOffset()
}

// PageSize returns the number of lines a page scroll moves.
func (m *Model) PageSize() int {
	return max(m.bodyHeight()-2, 1)
}

// ScrollTo implements scroll.Scroller.
func (m *Model) ScrollTo(req scroll.Request) {
	a, ok := req.Handle.(Anchor)
	if !ok {
		return
	}
	target := a.Line
	if req.Center {
		target = a.Line - (m.bodyHeight()-a.Height)/2
	}
	target = m.clampOffset(target)

	if req.Smooth {
		m.anim.start(target)
		return
	}
	m.anim.stop()
	m.offset = target
}

// ScrollToVerse centers verse i without animation, if it is rendered.
func (m *Model) ScrollToVerse(i int) {
	h, ok := m.registry.Lookup(i)
	if !ok {
		return
	}
	m.ScrollTo(scroll.Request{Verse: i, Handle: h, Center: true})
}

func (m *Model) active() int {
	if m.highlight == nil {
		return -1
	}
	return m.highlight.Active()
}

func (m *Model) textWidth() int {
	return layout.TextWidth(m.Width(), marginLeft)
}

// layout rebuilds the content lines and re-registers verse anchors.
func (m *Model) layout() {
	m.lines = m.lines[:0]
	if m.chapter != nil {
		m.registry.Clear()
	}
	if m.Width() == 0 || m.chapter == nil {
		return
	}

	width := m.textWidth()
	add := func(kind lineKind, verse int, text string) {
		m.lines = append(m.lines, line{text: text, kind: kind, verse: verse})
	}

	if m.bismillah {
		add(kindBlank, -1, "")
		add(kindBismillah, -1, render.Center(bismillahArabic, width))
		for _, l := range render.Wrap(bismillahEnglish, width) {
			add(kindNote, -1, render.Center(l, width))
		}
	}
	add(kindBlank, -1, "")

	for i := range m.chapter.TotalVerses {
		v := m.chapter.Verse(i)
		start := len(m.lines)

		add(kindMarker, i, fmt.Sprintf("(%d)", i+1))
		for _, l := range render.Wrap(v.Arabic, width) {
			add(kindArabic, i, render.AlignRight(l, width))
		}
		if m.showEnglish && v.English != "" {
			for _, l := range render.Wrap(v.English, width) {
				add(kindEnglish, i, l)
			}
		}
		if m.showUrdu && v.Urdu != "" {
			for _, l := range render.Wrap(v.Urdu, width) {
				add(kindUrdu, i, render.AlignRight(l, width))
			}
		}
		add(kindBlank, -1, "")

		m.registry.Register(i, Anchor{Line: start, Height: len(m.lines) - start})
	}

	if nav := m.navLine(width); nav != "" {
		add(kindNav, -1, nav)
	}

	m.offset = m.clampOffset(m.offset)
	m.anim.target = m.clampOffset(m.anim.target)
}

func (m *Model) navLine(width int) string {
	var left, right string
	if m.hasPrev {
		left = "← Previous Surah ["
	}
	if m.hasNext {
		right = "] Next Surah →"
	}
	if left == "" && right == "" {
		return ""
	}
	return render.Row(left, right, width)
}

// View renders the header and the visible part of the chapter. spinner is
// shown while the chapter loads.
func (m *Model) View(title, spinner string) string {
	width := m.Width()
	if width == 0 || m.Height() == 0 {
		return ""
	}
	t := styles.T()

	var b strings.Builder
	b.WriteString(m.headerLine(title, width))
	b.WriteString("\n")
	b.WriteString(t.S().Subtle.Render(render.Separator(width)))

	switch {
	case m.notFound != "":
		b.WriteString("\n\n")
		b.WriteString(t.S().Error.Render(m.notFound))
		b.WriteString("\n")
		b.WriteString(t.S().Muted.Render("Press esc to go back to the list."))
		return b.String()
	case m.chapter == nil:
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("%s Loading Surah %d...", spinner, m.chapterID))
		return b.String()
	}

	active := m.active()
	end := min(m.offset+m.bodyHeight(), len(m.lines))
	pad := strings.Repeat(" ", marginLeft)
	for i := m.offset; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(pad)
		b.WriteString(m.renderLine(m.lines[i], active))
	}
	return b.String()
}

func (m *Model) headerLine(title string, width int) string {
	t := styles.T()
	if m.chapter == nil {
		return styles.Heading(render.Truncate(title, width))
	}
	left := styles.Heading(fmt.Sprintf("%d. %s", m.chapter.Number, m.chapter.Name)) +
		"  " + t.S().Muted.Render(m.chapter.NameTranslation)
	right := t.S().Arabic.Render(m.chapter.NameArabicLong)
	return render.Row(left, right, width)
}

func (m *Model) renderLine(l line, active int) string {
	t := styles.T()
	width := m.textWidth()
	highlighted := l.verse >= 0 && l.verse == active

	text := l.text
	if l.kind == kindMarker && highlighted && m.playing {
		text = render.Row(text, "Playing", width)
	}

	if highlighted {
		return t.S().Highlight.Render(render.Pad(text, width))
	}

	switch l.kind {
	case kindMarker:
		return t.S().VerseNumber.Render(text)
	case kindArabic, kindBismillah:
		return t.S().Arabic.Render(text)
	case kindEnglish, kindNote:
		return t.S().Muted.Render(text)
	case kindUrdu:
		return t.S().Subtle.Render(text)
	case kindNav:
		return lipgloss.NewStyle().Foreground(t.Primary).Render(text)
	case kindBlank:
	}
	return text
}
