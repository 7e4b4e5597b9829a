//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"sync/atomic"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/tilawa/internal/playback"
)

// Adapter serves MPRIS over the session bus.
type Adapter struct {
	server *server.Server
	state  *atomic.Pointer[Snapshot]
}

// New creates and starts an adapter. send is called from D-Bus goroutines
// and must hand the request to the event loop without blocking.
func New(send func(Request)) (*Adapter, error) {
	state := &atomic.Pointer[Snapshot]{}
	state.Store(&Snapshot{})

	a := &Adapter{
		server: server.NewServer("tilawa", &rootAdapter{}, &playerAdapter{send: send, state: state}),
		state:  state,
	}

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Publish replaces the snapshot served to D-Bus clients.
func (a *Adapter) Publish(s Snapshot) {
	a.state.Store(&s)
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error { return a.server.Stop() }

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }

func (r *rootAdapter) Quit() error { return nil }

func (r *rootAdapter) CanQuit() (bool, error) { return false, nil }

func (r *rootAdapter) CanRaise() (bool, error) { return false, nil }

func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }

func (r *rootAdapter) Identity() (string, error) { return "Tilawa", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) { return []string{"https"}, nil }

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) { return []string{"audio/mpeg", "audio/mp3"}, nil }

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the loop
// status extension.
type playerAdapter struct {
	send  func(Request)
	state *atomic.Pointer[Snapshot]
}

func (p *playerAdapter) snapshot() Snapshot { return *p.state.Load() }

func (p *playerAdapter) command(c Command) error {
	p.send(Request{Command: c})
	return nil
}

func (p *playerAdapter) Next() error { return p.command(CommandNext) }

func (p *playerAdapter) Previous() error { return p.command(CommandPrevious) }

func (p *playerAdapter) Pause() error { return p.command(CommandPause) }

func (p *playerAdapter) PlayPause() error { return p.command(CommandPlayPause) }

func (p *playerAdapter) Stop() error { return p.command(CommandStop) }

func (p *playerAdapter) Play() error { return p.command(CommandPlay) }

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.send(Request{Command: CommandSeek, Offset: time.Duration(offset) * time.Microsecond})
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.send(Request{Command: CommandSetPosition, Position: time.Duration(position) * time.Microsecond})
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error { return nil }

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.snapshot().State {
	case playback.StatePlaying, playback.StateLoading:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateIdle, playback.StateEnded:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) SetRate(_ float64) error { return nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	s := p.snapshot()
	if !s.HasTrack() {
		return types.Metadata{}, nil
	}

	title := s.Chapter
	if s.ChapterArabic != "" {
		title = fmt.Sprintf("%s (%s)", s.Chapter, s.ChapterArabic)
	}
	return types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(s.ChapterNumber, s.Reciter)),
		Length:      types.Microseconds(s.Duration.Microseconds()),
		Title:       title,
		Artist:      []string{s.Reciter},
		Album:       "The Noble Quran",
		TrackNumber: s.ChapterNumber,
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) { return p.snapshot().EffectiveVolume(), nil }

func (p *playerAdapter) SetVolume(v float64) error {
	p.send(Request{Command: CommandSetVolume, Volume: min(max(v, 0), 1)})
	return nil
}

func (p *playerAdapter) Position() (int64, error) { return p.snapshot().Position.Microseconds(), nil }

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) CanGoNext() (bool, error) { return p.snapshot().HasNext, nil }

func (p *playerAdapter) CanGoPrevious() (bool, error) { return p.snapshot().HasPrevious, nil }

func (p *playerAdapter) CanPlay() (bool, error) { return p.snapshot().HasTrack(), nil }

func (p *playerAdapter) CanPause() (bool, error) { return true, nil }

func (p *playerAdapter) CanSeek() (bool, error) { return p.snapshot().Duration > 0, nil }

func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	if p.snapshot().Repeat {
		return types.LoopStatusTrack, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// Only whole-chapter repeat exists, so playlist looping maps to it too.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	p.send(Request{Command: CommandSetRepeat, Repeat: status != types.LoopStatusNone})
	return nil
}

func formatTrackID(chapter int, reciter string) string {
	h := fnv.New32a()
	h.Write([]byte(reciter))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%d_%x", chapter, h.Sum32())
}
