package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tilawa/internal/keymap"
	"github.com/llehouerou/tilawa/internal/session"
	"github.com/llehouerou/tilawa/internal/ui"
	"github.com/llehouerou/tilawa/internal/ui/layout"
	"github.com/llehouerou/tilawa/internal/ui/playerbar"
)

// handleKey routes a key press: help popup first, then the focused search
// input, then global, playback and view bindings.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()

	if m.showHelp {
		return m.handleHelpKey(m.keys.Resolve(key, "list"))
	}

	if m.view == ViewList && m.list.Searching() {
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		res, cmd := m.list.UpdateSearch(msg)
		if res.Chapter > 0 {
			var open tea.Cmd
			m, open = m.openChapter(res.Chapter)
			return m, tea.Batch(cmd, open)
		}
		return m, cmd
	}

	action := m.keys.Resolve(key, m.keyContexts()...)
	switch action { //nolint:exhaustive // view actions handled below
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = true
		m.help.Reset()
		return m, nil
	}

	if handled, cmd := m.handlePlaybackAction(action, key); handled {
		return m, cmd
	}

	if m.view == ViewReader {
		return m.handleReaderAction(action)
	}

	res, cmd := m.list.HandleAction(action)
	if res.Chapter > 0 {
		var open tea.Cmd
		m, open = m.openChapter(res.Chapter)
		return m, tea.Batch(cmd, open)
	}
	return m, cmd
}

// keyContexts lists the binding contexts of the focused view, most specific
// first.
func (m Model) keyContexts() []string {
	if m.view == ViewReader {
		return []string{"reader", "playback"}
	}
	return []string{"list", "playback"}
}

func (m Model) handleHelpKey(action keymap.Action) (Model, tea.Cmd) {
	switch action { //nolint:exhaustive // other keys are ignored while help is open
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp, keymap.ActionBack:
		m.showHelp = false
	case keymap.ActionMoveUp:
		m.help.ScrollBy(-1)
	case keymap.ActionMoveDown:
		m.help.ScrollBy(1)
	case keymap.ActionPageUp:
		m.help.ScrollBy(-m.height / 2)
	case keymap.ActionPageDown:
		m.help.ScrollBy(m.height / 2)
	}
	return m, nil
}

func (m Model) handleReaderAction(action keymap.Action) (Model, tea.Cmd) {
	switch action { //nolint:exhaustive // list and playback actions handled elsewhere
	case keymap.ActionBack:
		m.view = ViewList
		return m, nil
	case keymap.ActionMoveUp:
		m.reader.ScrollBy(-1)
	case keymap.ActionMoveDown:
		m.reader.ScrollBy(1)
	case keymap.ActionPageUp:
		m.reader.ScrollBy(-m.reader.PageSize())
	case keymap.ActionPageDown:
		m.reader.ScrollBy(m.reader.PageSize())
	case keymap.ActionJumpStart:
		m.reader.ScrollHome()
	case keymap.ActionJumpEnd:
		m.reader.ScrollEnd()
	case keymap.ActionPrevChapter:
		if n, ok := m.session.Previous(); ok {
			return m.openChapter(n)
		}
	case keymap.ActionNextChapter:
		if n, ok := m.session.Next(); ok {
			return m.openChapter(n)
		}
	case keymap.ActionToggleEnglish:
		english, urdu := m.reader.Translations()
		m.setTranslations(!english, urdu)
	case keymap.ActionToggleUrdu:
		english, urdu := m.reader.Translations()
		m.setTranslations(english, !urdu)
	case keymap.ActionFollowVerse:
		if i := m.coord.Active(); i >= 0 {
			m.reader.ScrollToVerse(i)
			return m, nil
		}
		cmd := m.info("Nothing is being recited")
		return m, cmd
	case keymap.ActionDownload:
		return m.startDownload()
	}
	return m, nil
}

// openChapter shows chapter n in the reader. Reopening the chapter that is
// already loaded only switches views so playback carries on.
func (m Model) openChapter(n int) (Model, tea.Cmd) {
	m.view = ViewReader
	m.autoplay = false
	if n == m.session.ID() && m.session.Status() == session.StatusReady {
		return m, nil
	}

	l := m.session.Open(n)
	m.reader.SetLoading(n)
	_, hasPrev := m.session.Previous()
	_, hasNext := m.session.Next()
	m.reader.SetNavigation(hasPrev, hasNext)
	m.layout()

	return m, tea.Batch(m.fetchChapter(l), m.spinner.Tick)
}

// setTranslations changes the visible translations and keeps the recited
// verse on screen.
func (m *Model) setTranslations(english, urdu bool) {
	m.reader.SetTranslations(english, urdu)
	if i := m.coord.Active(); i >= 0 {
		m.reader.ScrollToVerse(i)
	}
}

func (m Model) playerVisible() bool {
	return m.machine.Chapter() != nil
}

// bodyHeight is the height left for the list or the reader.
func (m Model) bodyHeight() int {
	opts := layout.ContentOpts{StatusHeight: ui.StatusHeight}
	if m.playerVisible() {
		opts.PlayerBarHeight = playerbar.Height()
	}
	return layout.ContentHeight(m.height, opts)
}

func (m *Model) layout() {
	body := m.bodyHeight()
	m.list.SetSize(m.width, body)
	m.reader.SetSize(m.width, body)
	m.help.SetSize(m.width, m.height)
}
