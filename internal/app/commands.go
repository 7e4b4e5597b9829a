package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tilawa/internal/notify"
	"github.com/llehouerou/tilawa/internal/session"
)

const (
	defaultTitle    = "The Noble Quran"
	fetchTimeout    = 20 * time.Second
	downloadTimeout = 5 * time.Minute
)

// loadChapterList fetches the chapter index.
func (m Model) loadChapterList() tea.Cmd {
	src := m.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		chapters, err := src.ChapterList(ctx)
		return ChapterListMsg{Chapters: chapters, Err: err}
	}
}

// fetchChapter runs the fetch for l off the event loop.
func (m Model) fetchChapter(l session.Load) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return ChapterLoadedMsg(sess.Fetch(ctx, l))
	}
}

// WatchPlayerEvents returns a command that waits for the next audio element
// event. It is re-issued after every event.
func (m Model) WatchPlayerEvents() tea.Cmd {
	if m.player == nil {
		return nil
	}
	events := m.player.Events()
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return PlayerClosedMsg{}
		}
		return PlayerEventMsg(e)
	}
}

// WatchPlaybackEvents returns a command that waits for playback machine
// events and converts them to messages.
func (m Model) WatchPlaybackEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub := m.sub
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return StateChangedMsg(e)
		case e := <-sub.VerseChanged:
			return VerseChangedMsg(e)
		case e := <-sub.Error:
			return PlaybackErrorMsg(e)
		case <-sub.Done:
			return PlaybackClosedMsg{}
		}
	}
}

// downloadCmd copies url into the download directory.
func (m Model) downloadCmd(url, name string) tea.Cmd {
	exporter := m.exporter
	dir := m.cfg.GetDownloadDir()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), downloadTimeout)
		defer cancel()
		path, err := exporter.Export(ctx, url, dir, name)
		if err != nil {
			return DownloadDoneMsg{Err: err}
		}
		var size int64
		if info, statErr := os.Stat(path); statErr == nil {
			size = info.Size()
		}
		return DownloadDoneMsg{Path: path, Size: size}
	}
}

// notifyCmd announces the recitation that just started.
func (m Model) notifyCmd() tea.Cmd {
	ch := m.machine.Chapter()
	if ch == nil {
		return nil
	}
	n := notify.Recitation(
		fmt.Sprintf("%d. %s", ch.Number, ch.Name),
		ch.NameArabic,
		m.reciterName(),
		m.notifyID,
	)
	notifier := m.notifier
	log := m.log
	return func() tea.Msg {
		id, err := notifier.Notify(n)
		if err != nil {
			log.Debug("notification failed", "err", err)
			return nil
		}
		return NotifiedMsg{ID: id}
	}
}
