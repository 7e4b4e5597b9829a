package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/tilawa/internal/errmsg"
	"github.com/llehouerou/tilawa/internal/playback"
	"github.com/llehouerou/tilawa/internal/player"
	"github.com/llehouerou/tilawa/internal/quran"
	"github.com/llehouerou/tilawa/internal/session"
	"github.com/llehouerou/tilawa/internal/ui/reader"
)

// Update handles messages and returns updated model and commands. After
// every message the derived views are brought up to date.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.sync()
	return m, tea.Batch(cmd, m.reader.NextFrame())
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case reader.FrameMsg:
		return m, m.reader.HandleFrame(msg)

	case ChapterListMsg:
		return m.handleChapterList(msg)

	case ChapterLoadedMsg:
		return m.handleChapterLoaded(msg)

	case PlayerEventMsg:
		m.machine.HandleEvent(player.Event(msg))
		return m, m.WatchPlayerEvents()

	case PlayerClosedMsg:
		m.log.Debug("player event channel closed")
		return m, nil

	case StateChangedMsg:
		return m.handleStateChanged(msg)

	case VerseChangedMsg:
		return m, m.WatchPlaybackEvents()

	case PlaybackErrorMsg:
		return m.handlePlaybackError(msg)

	case PlaybackClosedMsg:
		return m, nil

	case DownloadDoneMsg:
		return m.handleDownloadDone(msg)

	case NotifiedMsg:
		m.notifyID = msg.ID
		return m, nil

	case StatusClearMsg:
		m.status.clear(msg.Seq)
		return m, nil

	case MPRISMsg:
		return m.handleMPRIS(msg)
	}

	return m, nil
}

func (m Model) handleChapterList(msg ChapterListMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		text := errmsg.Format(errmsg.OpChapterListLoad, msg.Err)
		m.list.SetError(text)
		cmd := m.fail(text)
		return m, cmd
	}
	m.list.SetChapters(msg.Chapters)
	return m, nil
}

func (m Model) handleChapterLoaded(msg ChapterLoadedMsg) (Model, tea.Cmd) {
	if !m.session.Apply(session.Result(msg)) {
		return m, nil
	}

	autoplay := m.autoplay
	m.autoplay = false

	if m.session.Status() == session.StatusNotFound {
		err := m.session.Err()
		var text string
		if err == nil || quran.IsNotFound(err) {
			text = fmt.Sprintf("Surah %d is not available", msg.Chapter)
		} else {
			text = errmsg.FormatWith(errmsg.OpChapterLoad, fmt.Sprintf("Surah %d", msg.Chapter), err)
		}
		m.reader.SetNotFound(msg.Chapter, text)
		cmd := m.fail(text)
		return m, tea.Batch(cmd, tea.SetWindowTitle(defaultTitle))
	}

	ch := m.session.Chapter()
	m.reader.SetChapter(ch, m.session.ShowsBismillah())
	m.list.SetLastChapter(ch.Number)
	if autoplay {
		m.machine.LoadAndPlay()
	}
	return m, tea.SetWindowTitle(m.session.Title())
}

func (m Model) handleStateChanged(msg StateChangedMsg) (Model, tea.Cmd) {
	cmds := []tea.Cmd{m.WatchPlaybackEvents()}
	switch {
	case msg.Previous == playback.StateLoading && msg.Current == playback.StatePlaying:
		cmds = append(cmds, m.notifyCmd())
	case msg.Current == playback.StateLoading:
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handlePlaybackError(msg PlaybackErrorMsg) (Model, tea.Cmd) {
	op := errmsg.OpPlaybackLoad
	if msg.Operation == "play" {
		op = errmsg.OpPlaybackStart
	}
	cmd := m.fail(errmsg.Format(op, msg.Err))
	return m, tea.Batch(cmd, m.WatchPlaybackEvents())
}

func (m Model) handleDownloadDone(msg DownloadDoneMsg) (Model, tea.Cmd) {
	m.downloading = false
	if msg.Err != nil {
		m.log.Error("download failed", "err", msg.Err)
		cmd := m.fail(errmsg.Format(errmsg.OpDownload, msg.Err))
		return m, cmd
	}
	m.log.Info("recitation saved", "path", msg.Path, "size", msg.Size)
	cmd := m.info(fmt.Sprintf("Saved %s (%s)", msg.Path, humanize.Bytes(uint64(max(msg.Size, 0)))))
	return m, cmd
}

// busy reports whether something is loading and the spinner should turn.
func (m Model) busy() bool {
	return m.list.Loading() ||
		m.session.Status() == session.StatusLoading ||
		m.machine.State() == playback.StateLoading ||
		m.downloading
}

// sync pushes model state into the views and external observers.
func (m *Model) sync() {
	m.reader.SetPlaying(m.machine.State() == playback.StatePlaying)
	m.layout()
	m.publishSnapshot()
	m.persistPreferences()
}
