// Package player implements the audio element: a single streaming source
// with play/pause/seek/volume that reports its lifecycle as events.
package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// ErrNoSource is returned by Play when no source has been set.
var ErrNoSource = errors.New("no source")

const timeUpdateInterval = 250 * time.Millisecond

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// Player is the beep-backed audio element.
type Player struct {
	mu    sync.Mutex
	cache *Cache
	log   *slog.Logger
	queue *eventQueue

	src        string
	gen        uint64
	wantPlay   bool
	loading    bool
	cancelLoad context.CancelFunc

	stream   beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	level    float64
	duration time.Duration
	queued   bool // the stream is in the speaker mixer
	ended    bool

	stopTicker chan struct{}
	closed     bool
}

// New creates a player that loads sources through cache.
func New(cache *Cache, log *slog.Logger) *Player {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Player{
		cache: cache,
		log:   log,
		queue: newEventQueue(),
		level: 1,
	}
}

// Events returns the event channel. It is closed by Close.
func (p *Player) Events() <-chan Event {
	return p.queue.out
}

// Source returns the current source URL.
func (p *Player) Source() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.src
}

// SetSource replaces the current source. Loading starts on the next Play.
func (p *Player) SetSource(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || url == p.src {
		return
	}
	p.teardownLocked()
	p.src = url
	p.gen++
	p.wantPlay = false
	p.ended = false
	p.duration = 0
}

// Play starts or resumes playback. If the source is not loaded yet it is
// loaded in the background and playback starts once it is ready.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errors.New("player closed")
	}
	if p.src == "" {
		return ErrNoSource
	}
	p.wantPlay = true

	if p.stream == nil {
		if !p.loading {
			p.startLoadLocked()
		}
		return nil
	}

	if p.ended {
		speaker.Lock()
		err := p.stream.Seek(0)
		speaker.Unlock()
		if err != nil {
			return fmt.Errorf("rewind: %w", err)
		}
		p.ended = false
	}
	p.startLocked()
	return nil
}

// Pause pauses playback, keeping the position.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.wantPlay = false
	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = true
		speaker.Unlock()
	}
	p.stopTickerLocked()
}

// CurrentTime returns the playback position.
func (p *Player) CurrentTime() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

// Duration returns the source duration, 0 while unknown.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

// SetCurrentTime seeks to t, clamped to the source bounds.
func (p *Player) SetCurrentTime(t time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil {
		return
	}
	t = max(0, min(t, p.duration))

	speaker.Lock()
	err := p.stream.Seek(p.format.SampleRate.N(t))
	speaker.Unlock()
	if err != nil {
		p.log.Warn("seek failed", "source", p.src, "target", t, "err", err)
		return
	}
	p.queue.push(Event{Type: EventTimeUpdate, Source: p.src, Time: t, Duration: p.duration})
}

// SetVolume sets the output level (0.0 to 1.0).
func (p *Player) SetVolume(level float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.level = clampLevel(level)
	p.applyVolumeLocked()
}

// Volume returns the output level.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// Close stops playback and closes the event channel.
func (p *Player) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.teardownLocked()
	p.closed = true
	p.mu.Unlock()

	p.queue.close()
	return nil
}

func (p *Player) startLoadLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancelLoad = cancel
	p.loading = true
	go p.load(ctx, p.gen, p.src)
}

// load downloads and decodes src, then hands the stream to the player if
// the source has not changed meanwhile.
func (p *Player) load(ctx context.Context, gen uint64, src string) {
	stream, format, err := p.open(ctx, src)
	if err != nil {
		p.mu.Lock()
		defer p.mu.Unlock()
		if gen != p.gen {
			return
		}
		p.loading = false
		p.wantPlay = false
		if !errors.Is(err, context.Canceled) {
			p.log.Error("load source", "source", src, "err", err)
			p.queue.push(Event{Type: EventError, Source: src, Err: err})
		}
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen || p.closed {
		stream.Close()
		return
	}

	var out beep.Streamer = stream
	if format.SampleRate != speakerSampleRate {
		out = beep.Resample(4, format.SampleRate, speakerSampleRate, stream)
	}

	p.stream = stream
	p.format = format
	p.ctrl = &beep.Ctrl{Streamer: out, Paused: true}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2}
	p.applyVolumeLocked()
	p.duration = format.SampleRate.D(stream.Len())
	p.loading = false

	p.queue.push(Event{Type: EventLoadedMetadata, Source: src, Duration: p.duration})
	p.queue.push(Event{Type: EventDurationChange, Source: src, Duration: p.duration})

	if p.wantPlay {
		p.startLocked()
	}
}

func (p *Player) open(ctx context.Context, src string) (beep.StreamSeekCloser, beep.Format, error) {
	path, err := p.cache.Fetch(ctx, src)
	if err != nil {
		return nil, beep.Format{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	stream, format, err := decodeMP3(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode: %w", err)
	}
	if err := initSpeaker(format.SampleRate); err != nil {
		stream.Close()
		return nil, beep.Format{}, err
	}
	return stream, format, nil
}

func initSpeaker(rate beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()

	if speakerInitialized {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speakerSampleRate = rate
	speakerInitialized = true
	return nil
}

// startLocked unpauses the stream, queueing it in the mixer if needed.
func (p *Player) startLocked() {
	if !p.queued {
		gen := p.gen
		speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
			// Runs on the speaker goroutine with the mixer locked.
			go p.handleEnded(gen)
		})))
		p.queued = true
	}

	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()

	p.queue.push(Event{Type: EventPlaying, Source: p.src, Time: p.positionLocked(), Duration: p.duration})
	p.startTickerLocked()
}

func (p *Player) handleEnded(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen || p.stream == nil {
		return
	}
	p.queued = false
	p.ended = true
	p.wantPlay = false
	p.stopTickerLocked()
	p.queue.push(Event{Type: EventTimeUpdate, Source: p.src, Time: p.duration, Duration: p.duration})
	p.queue.push(Event{Type: EventEnded, Source: p.src, Time: p.duration, Duration: p.duration})
}

func (p *Player) startTickerLocked() {
	if p.stopTicker != nil {
		return
	}
	stop := make(chan struct{})
	p.stopTicker = stop
	go p.tick(stop)
}

func (p *Player) stopTickerLocked() {
	if p.stopTicker != nil {
		close(p.stopTicker)
		p.stopTicker = nil
	}
}

// tick emits timeupdate events while playing.
func (p *Player) tick(stop <-chan struct{}) {
	ticker := time.NewTicker(timeUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.mu.Lock()
			if p.stream != nil && !p.ended {
				p.queue.push(Event{Type: EventTimeUpdate, Source: p.src, Time: p.positionLocked(), Duration: p.duration})
			}
			p.mu.Unlock()
		}
	}
}

func (p *Player) positionLocked() time.Duration {
	if p.stream == nil {
		return 0
	}
	speaker.Lock()
	pos := p.stream.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos)
}

func (p *Player) applyVolumeLocked() {
	if p.volume == nil {
		return
	}
	speaker.Lock()
	p.volume.Volume = levelToVolume(p.level)
	p.volume.Silent = p.level <= 0
	speaker.Unlock()
}

// teardownLocked releases the loaded stream and cancels any pending load.
func (p *Player) teardownLocked() {
	if p.cancelLoad != nil {
		p.cancelLoad()
		p.cancelLoad = nil
	}
	p.loading = false
	p.stopTickerLocked()

	if p.stream != nil {
		if p.queued {
			speaker.Clear()
		}
		p.stream.Close()
		p.stream = nil
	}
	p.ctrl = nil
	p.volume = nil
	p.queued = false
	p.ended = false
	p.duration = 0
}
