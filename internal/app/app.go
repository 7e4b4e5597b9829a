// Package app is the bubbletea root model. Its Update loop is the single
// thread that drives the playback machine, the scroll coordinator and the
// chapter session; background work reports back as messages.
package app

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tilawa/internal/config"
	"github.com/llehouerou/tilawa/internal/keymap"
	"github.com/llehouerou/tilawa/internal/mpris"
	"github.com/llehouerou/tilawa/internal/notify"
	"github.com/llehouerou/tilawa/internal/playback"
	"github.com/llehouerou/tilawa/internal/player"
	"github.com/llehouerou/tilawa/internal/quran"
	"github.com/llehouerou/tilawa/internal/scroll"
	"github.com/llehouerou/tilawa/internal/session"
	"github.com/llehouerou/tilawa/internal/state"
	"github.com/llehouerou/tilawa/internal/ui/chapterlist"
	"github.com/llehouerou/tilawa/internal/ui/helpbindings"
	"github.com/llehouerou/tilawa/internal/ui/reader"
	"github.com/llehouerou/tilawa/internal/ui/styles"
)

// ChapterSource provides the chapter index and chapter details.
type ChapterSource interface {
	ChapterList(ctx context.Context) ([]quran.ChapterSummary, error)
	Chapter(ctx context.Context, n int) (*quran.Chapter, error)
}

// Exporter copies a recitation into a directory.
type Exporter interface {
	Export(ctx context.Context, url, dir, name string) (string, error)
}

// Publisher receives playback snapshots for external controllers.
type Publisher interface {
	Publish(s mpris.Snapshot)
}

// Deps are the collaborators built by main. Exporter, Notifier, MPRIS and
// Log are optional.
type Deps struct {
	Config   *config.Config
	Source   ChapterSource
	State    state.Interface
	Player   player.Interface
	Exporter Exporter
	Notifier notify.Notifier
	MPRIS    Publisher
	Log      *slog.Logger
}

// recentLimit is how many recently read chapters the list marks.
const recentLimit = 10

// View identifies the screen shown above the player bar.
type View int

const (
	ViewList View = iota
	ViewReader
)

// Model is the application state.
type Model struct {
	cfg      *config.Config
	source   ChapterSource
	store    state.Interface
	player   player.Interface
	exporter Exporter
	notifier notify.Notifier
	mpris    Publisher
	log      *slog.Logger

	machine *playback.Machine
	coord   *scroll.Coordinator
	session *session.Controller
	sub     *playback.Subscription
	keys    *keymap.Resolver

	list    chapterlist.Model
	reader  *reader.Model
	help    helpbindings.Model
	spinner spinner.Model
	status  statusLine

	saved       state.Preferences
	notifyID    uint32
	downloading bool
	autoplay    bool // play once the pending chapter is loaded

	view     View
	showHelp bool
	width    int
	height   int
}

// New builds the model and restores saved preferences.
func New(d Deps) Model {
	log := d.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	cfg := d.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	notifier := d.Notifier
	if notifier == nil {
		notifier = notify.Discard{}
	}

	prefs := loadPreferences(d.State, cfg, log)

	registry := scroll.NewRegistry()
	rd := reader.New(registry)
	coord := scroll.NewCoordinator(registry, rd, log.With("component", "scroll"))
	rd.SetHighlighter(coord)
	rd.SetTranslations(prefs.ShowEnglish, prefs.ShowUrdu)

	machine := playback.NewMachine(d.Player,
		playback.WithObserver(coord),
		playback.WithSkip(cfg.Skip()),
		playback.WithNarrator(prefs.Narrator),
		playback.WithLogger(log.With("component", "playback")),
	)
	machine.SetVolume(prefs.Volume)
	machine.SetMuted(prefs.Muted)
	if prefs.Repeat {
		machine.ToggleRepeat()
	}

	list := chapterlist.New()
	if recent, err := d.State.RecentChapters(recentLimit); err != nil {
		log.Warn("load recent chapters", "err", err)
	} else {
		list.SetRecent(recent)
	}
	if n, ok, err := d.State.LastChapter(); err != nil {
		log.Warn("load last chapter", "err", err)
	} else if ok {
		list.SetLastChapter(n)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.T().Primary)

	return Model{
		cfg:      cfg,
		source:   d.Source,
		store:    d.State,
		player:   d.Player,
		exporter: d.Exporter,
		notifier: notifier,
		mpris:    d.MPRIS,
		log:      log,
		machine:  machine,
		coord:    coord,
		session:  session.New(d.Source, d.State, machine, coord, log.With("component", "session")),
		sub:      machine.Subscribe(),
		keys:     keymap.NewResolver(keymap.Bindings),
		list:     list,
		reader:   rd,
		help:     helpbindings.New(),
		spinner:  sp,
		saved:    prefs,
	}
}

// Init starts loading the chapter index and watching playback events.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadChapterList(),
		m.WatchPlayerEvents(),
		m.WatchPlaybackEvents(),
		m.spinner.Tick,
		tea.SetWindowTitle(defaultTitle),
	)
}

// Machine returns the playback machine.
func (m Model) Machine() *playback.Machine {
	return m.machine
}

// Session returns the chapter session.
func (m Model) Session() *session.Controller {
	return m.session
}

// CurrentView returns the screen being shown.
func (m Model) CurrentView() View {
	return m.view
}

// Shutdown persists preferences and stops playback. It is called with the
// final model once the program has exited.
func (m Model) Shutdown() {
	m.persistPreferences()
	m.machine.Unsubscribe(m.sub)
	m.machine.Close()
	if m.notifyID != 0 {
		_ = m.notifier.Close(m.notifyID)
	}
}
