package app

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tilawa/internal/mpris"
	"github.com/llehouerou/tilawa/internal/playback"
	"github.com/llehouerou/tilawa/internal/player"
	"github.com/llehouerou/tilawa/internal/session"
	"github.com/llehouerou/tilawa/internal/ui/reader"
	"github.com/llehouerou/tilawa/internal/ui/testutil"
)

func TestHandleKey_Quit(t *testing.T) {
	tests := []struct {
		key      string
		wantQuit bool
	}{
		{"q", true},
		{"ctrl+c", true},
		{"x", false},
		{"Q", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, _ := newTestModel()
			_, cmd := m.handleKey(testutil.Key(tt.key))
			if !tt.wantQuit {
				if cmd != nil {
					assert.NotEqual(t, tea.QuitMsg{}, cmd())
				}
				return
			}
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestSearch_OpensMatch(t *testing.T) {
	m, _ := newTestModel()
	m = update(m, m.loadChapterList()())

	m = press(m, "/", "b", "a", "q")
	require.True(t, m.list.Searching())
	assert.Equal(t, "baq", m.list.Query())

	m = press(m, "q")
	assert.Equal(t, ViewList, m.CurrentView(), "q types into the search box")

	m = press(m, "esc", "/", "i", "m", "r", "enter")
	assert.Equal(t, ViewReader, m.CurrentView())
	assert.Equal(t, 3, m.session.ID())
}

func TestContinueReading(t *testing.T) {
	env := newTestEnv()
	env.store.SetLast(2)
	m := env.model(nil)
	m = update(m, m.loadChapterList()())

	m = press(m, "c")

	assert.Equal(t, ViewReader, m.CurrentView())
	assert.Equal(t, 2, m.session.ID())
}

func TestBack_KeepsPlayback(t *testing.T) {
	m, env := newTestModel()
	m = openLoaded(t, m, 2)
	m = press(m, " ")
	m = emit(m, env, player.EventPlaying, 0, 0)
	require.Equal(t, playback.StatePlaying, m.machine.State())

	m = press(m, "esc")
	assert.Equal(t, ViewList, m.CurrentView())
	assert.Equal(t, playback.StatePlaying, m.machine.State())
	assert.Contains(t, m.View(), "Al-Baqarah", "player bar stays visible")

	m, _ = m.openChapter(2)
	assert.Equal(t, ViewReader, m.CurrentView())
	assert.Equal(t, session.StatusReady, m.session.Status(), "reopening the open chapter does not reload")
	assert.Equal(t, playback.StatePlaying, m.machine.State())
}

func TestChapterNavigation(t *testing.T) {
	m, _ := newTestModel()
	m = openLoaded(t, m, 2)

	m = press(m, "]")
	assert.Equal(t, 3, m.session.ID())
	m = finishLoad(t, m)

	m = press(m, "[", "[")
	assert.Equal(t, 1, m.session.ID(), "a second press supersedes the pending load")
	m = finishLoad(t, m)

	m = press(m, "[")
	assert.Equal(t, 1, m.session.ID(), "no chapter before the first")
	assert.Equal(t, session.StatusReady, m.session.Status())
}

func TestChapterChange_StopsPlayback(t *testing.T) {
	m, env := newTestModel()
	m = openLoaded(t, m, 2)
	m = press(m, " ")

	m = press(m, "]")
	assert.Equal(t, playback.StateIdle, m.machine.State())
	assert.False(t, env.player.IsPlaying())
	assert.Equal(t, -1, m.coord.Active())
}

func TestVolumeKeys(t *testing.T) {
	m, _ := newTestModel()

	m = press(m, "-", "-", "-")
	assert.InDelta(t, 0.7, m.machine.Snapshot().Volume, 1e-9)

	m = press(m, "m")
	assert.True(t, m.machine.Snapshot().Muted)

	m = press(m, "+")
	assert.InDelta(t, 0.8, m.machine.Snapshot().Volume, 1e-9)
	assert.False(t, m.machine.Snapshot().Muted, "changing the volume unmutes")

	m = press(m, "=", "=", "=", "=")
	assert.InDelta(t, 1.0, m.machine.Snapshot().Volume, 1e-9)
}

func TestRepeatKey(t *testing.T) {
	m, _ := newTestModel()

	m = press(m, "r")
	assert.True(t, m.machine.Snapshot().Repeat)
	m = press(m, "r")
	assert.False(t, m.machine.Snapshot().Repeat)
}

func TestSeekPercentKeys(t *testing.T) {
	m, env := newTestModel()
	m = openLoaded(t, m, 2)

	m = press(m, " ")
	m = emit(m, env, player.EventLoadedMetadata, 0, 30*time.Second)
	m = emit(m, env, player.EventPlaying, 0, 0)

	m = press(m, "5")
	assert.Equal(t, 15*time.Second, m.machine.Snapshot().CurrentTime)
	assert.Equal(t, 15*time.Second, env.player.CurrentTime())

	m = press(m, "esc", "0")
	assert.Equal(t, time.Duration(0), m.machine.Snapshot().CurrentTime, "seeking works from the list too")
}

func TestCycleReciter(t *testing.T) {
	m, env := newTestModel()

	m = press(m, "n")
	assert.Empty(t, m.machine.Snapshot().Narrator, "no chapter, nothing to cycle")

	m = openLoaded(t, m, 2)
	m = press(m, " ")
	require.True(t, env.player.IsPlaying())

	m = press(m, "n")
	assert.Equal(t, "2", m.machine.Snapshot().Narrator)
	assert.Equal(t, playback.StateIdle, m.machine.State())
	assert.Equal(t, "Reciter: Abu Bakr Al Shatri", m.status.text)

	m = press(m, "N", "N")
	assert.Equal(t, "3", m.machine.Snapshot().Narrator, "wraps around")

	m = press(m, " ")
	assert.Equal(t, "https://audio.test/3/Al-Baqarah.mp3", env.player.Source())
}

func TestFollowVerse(t *testing.T) {
	env := newTestEnv()
	m := env.model(nil)
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 12})
	m = openLoaded(t, m, 2)

	m = press(m, "f")
	assert.Equal(t, "Nothing is being recited", m.status.text)

	m = press(m, " ")
	m = emit(m, env, player.EventLoadedMetadata, 0, 30*time.Second)
	m = emit(m, env, player.EventTimeUpdate, 25*time.Second, 0)
	require.Equal(t, 2, m.coord.Active())
	for m.reader.Animating() {
		m.reader.HandleFrame(reader.FrameMsg{})
	}
	target := m.reader.Offset()

	m = press(m, "g")
	assert.Equal(t, 0, m.reader.Offset())

	m = press(m, "f")
	assert.Equal(t, target, m.reader.Offset())
}

func TestStop_ClearsHighlight(t *testing.T) {
	m, env := newTestModel()
	m = openLoaded(t, m, 2)

	m = press(m, " ")
	m = emit(m, env, player.EventLoadedMetadata, 0, 30*time.Second)
	m = emit(m, env, player.EventTimeUpdate, 25*time.Second, 0)
	require.Equal(t, 2, m.coord.Active())

	m = press(m, "n")
	assert.Equal(t, playback.StateIdle, m.machine.State())
	assert.Equal(t, -1, m.coord.Active(), "reciter switch clears the highlight")

	m = press(m, " ")
	require.Equal(t, 0, m.coord.Active())

	m = update(m, MPRISMsg{Command: mpris.CommandStop})
	assert.Equal(t, -1, m.coord.Active(), "stop clears the highlight")

	m = press(m, " ")
	assert.Equal(t, 0, m.coord.Active(), "verse 0 is highlighted again after a stop on verse 0")
}

func TestHandleMPRIS(t *testing.T) {
	t.Run("play and pause are idempotent", func(t *testing.T) {
		m, _ := newTestModel()
		m = openLoaded(t, m, 2)

		m = update(m, MPRISMsg{Command: mpris.CommandPlay})
		assert.Equal(t, playback.StateLoading, m.machine.State())
		m = update(m, MPRISMsg{Command: mpris.CommandPlay})
		assert.Equal(t, playback.StateLoading, m.machine.State())

		m = update(m, MPRISMsg{Command: mpris.CommandPause})
		assert.Equal(t, playback.StatePaused, m.machine.State())
		m = update(m, MPRISMsg{Command: mpris.CommandPause})
		assert.Equal(t, playback.StatePaused, m.machine.State())

		m = update(m, MPRISMsg{Command: mpris.CommandStop})
		assert.Equal(t, playback.StateIdle, m.machine.State())
	})

	t.Run("seek", func(t *testing.T) {
		m, env := newTestModel()
		m = openLoaded(t, m, 2)
		m = update(m, MPRISMsg{Command: mpris.CommandPlayPause})
		m = emit(m, env, player.EventLoadedMetadata, 0, time.Minute)
		m = emit(m, env, player.EventTimeUpdate, 10*time.Second, 0)

		m = update(m, MPRISMsg{Command: mpris.CommandSeek, Offset: 5 * time.Second})
		assert.Equal(t, 15*time.Second, env.player.SeekCalls[len(env.player.SeekCalls)-1])

		_ = update(m, MPRISMsg{Command: mpris.CommandSetPosition, Position: 40 * time.Second})
		assert.Equal(t, 40*time.Second, env.player.SeekCalls[len(env.player.SeekCalls)-1])
	})

	t.Run("volume and repeat", func(t *testing.T) {
		m, _ := newTestModel()

		m = update(m, MPRISMsg{Command: mpris.CommandSetVolume, Volume: 0.25})
		assert.InDelta(t, 0.25, m.machine.Snapshot().Volume, 1e-9)

		m = update(m, MPRISMsg{Command: mpris.CommandSetRepeat, Repeat: true})
		assert.True(t, m.machine.Snapshot().Repeat)
		m = update(m, MPRISMsg{Command: mpris.CommandSetRepeat, Repeat: true})
		assert.True(t, m.machine.Snapshot().Repeat)
	})

	t.Run("next keeps reciting", func(t *testing.T) {
		m, env := newTestModel()
		m = openLoaded(t, m, 2)
		m = update(m, MPRISMsg{Command: mpris.CommandPlay})

		m = update(m, MPRISMsg{Command: mpris.CommandNext})
		assert.Equal(t, 3, m.session.ID())
		m = finishLoad(t, m)

		assert.Equal(t, playback.StateLoading, m.machine.State())
		assert.Equal(t, "https://audio.test/1/Ali 'Imran.mp3", env.player.Source())
	})

	t.Run("chapter key after next does not autoplay", func(t *testing.T) {
		m, _ := newTestModel()
		m = openLoaded(t, m, 2)
		m = update(m, MPRISMsg{Command: mpris.CommandPlay})

		m = update(m, MPRISMsg{Command: mpris.CommandNext})
		require.Equal(t, 3, m.session.ID())
		m = press(m, "[")
		m = finishLoad(t, m)

		assert.Equal(t, 2, m.session.ID())
		assert.Equal(t, playback.StateIdle, m.machine.State())
	})

	t.Run("previous while idle does not autoplay", func(t *testing.T) {
		m, _ := newTestModel()
		m = openLoaded(t, m, 2)

		m = update(m, MPRISMsg{Command: mpris.CommandPrevious})
		m = finishLoad(t, m)

		assert.Equal(t, 1, m.session.ID())
		assert.Equal(t, playback.StateIdle, m.machine.State())
	})
}

func TestDownload(t *testing.T) {
	m, env := newTestModel()
	m = openLoaded(t, m, 2)

	m, cmd := m.startDownload()
	require.NotNil(t, cmd)
	assert.True(t, m.downloading)

	msg := m.downloadCmd("https://audio.test/1/Al-Baqarah.mp3", "002 Al-Baqarah - Mishary Rashid Al Afasy")()
	assert.Equal(t, "/tmp/quran", env.exporter.dir)
	done, ok := msg.(DownloadDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)

	done.Size = 2_500_000
	m = update(m, done)
	assert.False(t, m.downloading)
	assert.Equal(t, "Saved /tmp/quran/002 Al-Baqarah - Mishary Rashid Al Afasy.mp3 (2.5 MB)", m.status.text)
}

func TestDownload_Failure(t *testing.T) {
	m, _ := newTestModel()
	m.downloading = true

	m = update(m, DownloadDoneMsg{Err: errors.New("disk full")})

	assert.False(t, m.downloading)
	assert.Equal(t, "Failed to download recitation: disk full", m.status.text)
}

func TestDownload_Unavailable(t *testing.T) {
	env := newTestEnv()
	m := New(Deps{Source: env.source, State: env.store, Player: env.player})
	m = openLoaded(t, m, 2)

	m = press(m, "d")

	assert.False(t, m.downloading)
	assert.Equal(t, "Downloads are not available", m.status.text)
}

func TestDownloadName(t *testing.T) {
	assert.Equal(t, "002 Al-Baqarah - Abu Bakr Al Shatri", downloadName(2, "Al-Baqarah", "Abu Bakr Al Shatri"))
	assert.Equal(t, "114 An-Nas", downloadName(114, "An-Nas", ""))
	assert.Equal(t, "009 At-Tawbah - A-B", downloadName(9, "At-Tawbah", "A/B"))
}
