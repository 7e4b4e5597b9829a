package app

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tilawa/internal/keymap"
	"github.com/llehouerou/tilawa/internal/mpris"
	"github.com/llehouerou/tilawa/internal/playback"
)

const volumeStep = 0.1

// handlePlaybackAction runs transport actions. They work in every view as
// long as a chapter is bound to the machine.
func (m *Model) handlePlaybackAction(action keymap.Action, key string) (bool, tea.Cmd) {
	switch action { //nolint:exhaustive // only transport actions
	case keymap.ActionPlayPause:
		m.machine.TogglePlay()
	case keymap.ActionSeekForward:
		m.machine.SkipForward()
	case keymap.ActionSeekBack:
		m.machine.SkipBack()
	case keymap.ActionSeekPercent:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			m.machine.SeekFraction(float64(key[0]-'0') / 10)
		}
	case keymap.ActionVolumeUp:
		m.changeVolume(volumeStep)
	case keymap.ActionVolumeDown:
		m.changeVolume(-volumeStep)
	case keymap.ActionToggleMute:
		m.machine.ToggleMute()
	case keymap.ActionToggleRepeat:
		m.machine.ToggleRepeat()
	case keymap.ActionNextReciter:
		return true, m.cycleReciter(1)
	case keymap.ActionPrevReciter:
		return true, m.cycleReciter(-1)
	default:
		return false, nil
	}
	return true, nil
}

func (m Model) changeVolume(delta float64) {
	v := m.machine.Snapshot().Volume + delta
	m.machine.SetVolume(math.Round(v*10) / 10)
}

// cycleReciter selects the next narrator of the bound chapter. Switching
// narrators stops the recitation.
func (m *Model) cycleReciter(dir int) tea.Cmd {
	ch := m.machine.Chapter()
	if ch == nil || len(ch.Narrators) == 0 {
		return nil
	}
	current, _, err := playback.ResolveOrDefault(ch, m.machine.Snapshot().Narrator)
	if err != nil {
		return nil
	}
	idx := 0
	for i, n := range ch.Narrators {
		if n.ID == current {
			idx = i
			break
		}
	}
	n := len(ch.Narrators)
	next := ch.Narrators[((idx+dir)%n+n)%n]
	if next.ID == m.machine.Snapshot().Narrator {
		return nil
	}
	m.machine.SetNarrator(next.ID)
	return m.info("Reciter: " + next.Name)
}

// reciterName is the display name of the selected narrator, resolved
// against the bound chapter.
func (m Model) reciterName() string {
	ch := m.machine.Chapter()
	id, _, err := playback.ResolveOrDefault(ch, m.machine.Snapshot().Narrator)
	if err != nil {
		return ""
	}
	track, _ := ch.Narrator(id)
	return track.Name
}

// handleMPRIS applies a request from a media key or desktop widget.
func (m Model) handleMPRIS(msg MPRISMsg) (Model, tea.Cmd) {
	st := m.machine.State()
	ps := m.machine.Snapshot()

	switch msg.Command {
	case mpris.CommandPlay:
		if st != playback.StatePlaying && st != playback.StateLoading {
			m.machine.TogglePlay()
		}
	case mpris.CommandPause:
		if st == playback.StatePlaying || st == playback.StateLoading {
			m.machine.TogglePlay()
		}
	case mpris.CommandPlayPause:
		m.machine.TogglePlay()
	case mpris.CommandStop:
		m.machine.Stop()
	case mpris.CommandNext:
		if n, ok := m.session.Next(); ok {
			return m.skipToChapter(n)
		}
	case mpris.CommandPrevious:
		if n, ok := m.session.Previous(); ok {
			return m.skipToChapter(n)
		}
	case mpris.CommandSeek:
		if st.IsActive() {
			m.machine.Seek(ps.CurrentTime + msg.Offset)
		}
	case mpris.CommandSetPosition:
		if st.IsActive() {
			m.machine.Seek(msg.Position)
		}
	case mpris.CommandSetVolume:
		m.machine.SetVolume(msg.Volume)
	case mpris.CommandSetRepeat:
		if ps.Repeat != msg.Repeat {
			m.machine.ToggleRepeat()
		}
	}
	return m, nil
}

// skipToChapter opens chapter n and keeps reciting if something was playing.
func (m Model) skipToChapter(n int) (Model, tea.Cmd) {
	st := m.machine.State()
	wasPlaying := st == playback.StatePlaying || st == playback.StateLoading
	m, cmd := m.openChapter(n)
	m.autoplay = wasPlaying
	return m, cmd
}

// snapshot captures the state published to D-Bus clients.
func (m Model) snapshot() mpris.Snapshot {
	ps := m.machine.Snapshot()
	s := mpris.Snapshot{
		State:    m.machine.State(),
		Position: ps.CurrentTime,
		Duration: ps.Duration,
		Volume:   ps.Volume,
		Muted:    ps.Muted,
		Repeat:   ps.Repeat,
	}
	if ch := m.machine.Chapter(); ch != nil {
		s.ChapterNumber = ch.Number
		s.Chapter = ch.Name
		s.ChapterArabic = ch.NameArabic
		s.Reciter = m.reciterName()
		_, s.HasPrevious = m.session.Previous()
		_, s.HasNext = m.session.Next()
	}
	return s
}

func (m Model) publishSnapshot() {
	if m.mpris != nil {
		m.mpris.Publish(m.snapshot())
	}
}

// startDownload saves the selected recitation of the open chapter.
func (m Model) startDownload() (Model, tea.Cmd) {
	ch := m.session.Chapter()
	if ch == nil {
		return m, nil
	}
	if m.exporter == nil {
		cmd := m.info("Downloads are not available")
		return m, cmd
	}
	if m.downloading {
		cmd := m.info("A download is already in progress")
		return m, cmd
	}
	url, ok := m.session.DownloadURL()
	if !ok {
		cmd := m.info("No recitation available for this surah")
		return m, cmd
	}

	m.downloading = true
	name := downloadName(ch.Number, ch.Name, m.reciterName())
	status := m.info(fmt.Sprintf("Downloading Surah %s...", ch.Name))
	return m, tea.Batch(status, m.downloadCmd(url, name), m.spinner.Tick)
}

var unsafeFileChars = strings.NewReplacer("/", "-", "\\", "-", ":", "-")

// downloadName is the file name, without extension, of a saved recitation.
func downloadName(number int, chapter, reciter string) string {
	name := fmt.Sprintf("%03d %s", number, chapter)
	if reciter != "" {
		name += " - " + reciter
	}
	return unsafeFileChars.Replace(name)
}
