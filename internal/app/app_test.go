package app

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tilawa/internal/config"
	"github.com/llehouerou/tilawa/internal/mpris"
	"github.com/llehouerou/tilawa/internal/notify"
	"github.com/llehouerou/tilawa/internal/playback"
	"github.com/llehouerou/tilawa/internal/player"
	"github.com/llehouerou/tilawa/internal/quran"
	"github.com/llehouerou/tilawa/internal/session"
	"github.com/llehouerou/tilawa/internal/state"
	"github.com/llehouerou/tilawa/internal/ui/testutil"
)

type fakeSource struct {
	chapters   map[int]*quran.Chapter
	listErr    error
	chapterErr error
}

func (f *fakeSource) ChapterList(context.Context) ([]quran.ChapterSummary, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]quran.ChapterSummary, 0, quran.ChapterCount)
	for n := 1; n <= quran.ChapterCount; n++ {
		if ch, ok := f.chapters[n]; ok {
			out = append(out, ch.Summary())
		}
	}
	return out, nil
}

func (f *fakeSource) Chapter(_ context.Context, n int) (*quran.Chapter, error) {
	if f.chapterErr != nil {
		return nil, f.chapterErr
	}
	ch, ok := f.chapters[n]
	if !ok {
		return nil, &quran.FetchError{Op: "chapter", Status: 404}
	}
	return ch, nil
}

type fakeNotifier struct {
	sent []notify.Notification
}

func (f *fakeNotifier) Notify(n notify.Notification) (uint32, error) {
	f.sent = append(f.sent, n)
	return uint32(len(f.sent)), nil
}

func (f *fakeNotifier) Close(uint32) error { return nil }

type fakeExporter struct {
	url, dir, name string
	err            error
}

func (f *fakeExporter) Export(_ context.Context, url, dir, name string) (string, error) {
	f.url, f.dir, f.name = url, dir, name
	if f.err != nil {
		return "", f.err
	}
	return dir + "/" + name + ".mp3", nil
}

type fakePublisher struct {
	last mpris.Snapshot
	n    int
}

func (f *fakePublisher) Publish(s mpris.Snapshot) {
	f.last = s
	f.n++
}

func testChapter(n int, name string) *quran.Chapter {
	return &quran.Chapter{
		Number:      n,
		Name:        name,
		NameArabic:  "سورة",
		TotalVerses: 3,
		English:     []string{"one", "two", "three"},
		Arabic1:     []string{"١", "٢", "٣"},
		Urdu:        []string{"ا", "ب", "ج"},
		Narrators: quran.NarratorList{
			{ID: "1", Name: "Mishary Rashid Al Afasy", URL: "https://audio.test/1/" + name + ".mp3"},
			{ID: "2", Name: "Abu Bakr Al Shatri", URL: "https://audio.test/2/" + name + ".mp3"},
			{ID: "3", Name: "Nasser Al Qatami", URL: "https://audio.test/3/" + name + ".mp3"},
		},
	}
}

type testEnv struct {
	player    *player.Mock
	store     *state.Mock
	source    *fakeSource
	notifier  *fakeNotifier
	exporter  *fakeExporter
	publisher *fakePublisher
}

func newTestEnv() *testEnv {
	return &testEnv{
		player: player.NewMock(),
		store:  state.NewMock(),
		source: &fakeSource{chapters: map[int]*quran.Chapter{
			1: testChapter(1, "Al-Fatiha"),
			2: testChapter(2, "Al-Baqarah"),
			3: testChapter(3, "Ali 'Imran"),
		}},
		notifier:  &fakeNotifier{},
		exporter:  &fakeExporter{},
		publisher: &fakePublisher{},
	}
}

func (e *testEnv) model(cfg *config.Config) Model {
	return New(Deps{
		Config:   cfg,
		Source:   e.source,
		State:    e.store,
		Player:   e.player,
		Exporter: e.exporter,
		Notifier: e.notifier,
		MPRIS:    e.publisher,
	})
}

func newTestModel() (Model, *testEnv) {
	env := newTestEnv()
	m := env.model(&config.Config{DownloadDir: "/tmp/quran"})
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 30})
	return m, env
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m = update(m, testutil.Key(k))
	}
	return m
}

// finishLoad runs the pending chapter fetch and feeds its result back.
func finishLoad(t *testing.T, m Model) Model {
	t.Helper()
	require.Equal(t, session.StatusLoading, m.session.Status())
	l := session.Load{Version: m.session.Version(), Chapter: m.session.ID()}
	return update(m, ChapterLoadedMsg(m.session.Fetch(context.Background(), l)))
}

func openLoaded(t *testing.T, m Model, n int) Model {
	t.Helper()
	m, _ = m.openChapter(n)
	return finishLoad(t, m)
}

func emit(m Model, env *testEnv, typ player.EventType, at, dur time.Duration) Model {
	return update(m, PlayerEventMsg{Type: typ, Source: env.player.Source(), Time: at, Duration: dur})
}

func TestNew_RestoresPreferences(t *testing.T) {
	env := newTestEnv()
	env.store.SetPreferences(state.Preferences{
		Narrator:    "2",
		Volume:      0.4,
		Muted:       true,
		Repeat:      true,
		ShowEnglish: true,
		ShowUrdu:    false,
	})
	env.store.SetLast(18)

	m := env.model(&config.Config{})

	ps := m.machine.Snapshot()
	assert.Equal(t, "2", ps.Narrator)
	assert.InDelta(t, 0.4, ps.Volume, 1e-9)
	assert.True(t, ps.Muted)
	assert.True(t, ps.Repeat)
	english, urdu := m.reader.Translations()
	assert.True(t, english)
	assert.False(t, urdu)
	assert.Equal(t, 18, m.list.LastChapter())
	assert.True(t, m.list.IsRecent(18), "the last chapter is always marked recent")
	assert.Equal(t, playback.StateIdle, m.machine.State())
}

func TestNew_MarksRecentChapters(t *testing.T) {
	env := newTestEnv()
	require.NoError(t, env.store.SetLastChapter(36))
	require.NoError(t, env.store.SetLastChapter(67))

	m := env.model(&config.Config{})
	assert.True(t, m.list.IsRecent(36))
	assert.True(t, m.list.IsRecent(67))
	assert.False(t, m.list.IsRecent(1))

	m = openLoaded(t, m, 1)
	assert.True(t, m.list.IsRecent(1))
}

func TestNew_ConfigDefaults(t *testing.T) {
	env := newTestEnv()
	off := false
	m := env.model(&config.Config{DefaultReciter: "3", ShowEnglish: &off})

	assert.Equal(t, "3", m.machine.Snapshot().Narrator)
	english, urdu := m.reader.Translations()
	assert.False(t, english)
	assert.True(t, urdu)
}

func TestChapterList(t *testing.T) {
	m, _ := newTestModel()
	require.True(t, m.list.Loading())

	m = update(m, m.loadChapterList()())
	assert.False(t, m.list.Loading())
	assert.Len(t, m.list.Visible(), 3)
}

func TestChapterList_Error(t *testing.T) {
	m, env := newTestModel()
	env.source.listErr = errors.New("offline")

	m = update(m, m.loadChapterList()())

	assert.Equal(t, statusError, m.status.kind)
	assert.Equal(t, "Failed to load chapter list: offline", m.status.text)
}

func TestOpenChapter_ShowsReader(t *testing.T) {
	m, env := newTestModel()

	m, _ = m.openChapter(2)
	assert.Equal(t, ViewReader, m.CurrentView())
	assert.Equal(t, session.StatusLoading, m.session.Status())

	m = finishLoad(t, m)
	assert.Equal(t, session.StatusReady, m.session.Status())
	assert.Equal(t, "Al-Baqarah (سورة) — The Noble Quran", m.session.Title())
	assert.Equal(t, []int{2}, env.store.SetLastCalls)
	assert.Equal(t, 2, m.list.LastChapter())
	assert.Same(t, m.session.Chapter(), m.machine.Chapter())
}

func TestChapterLoaded_StaleResultIgnored(t *testing.T) {
	m, _ := newTestModel()

	m, _ = m.openChapter(1)
	stale := m.session.Fetch(context.Background(), session.Load{Version: m.session.Version(), Chapter: 1})
	m, _ = m.openChapter(3)

	m = update(m, ChapterLoadedMsg(stale))
	assert.Equal(t, 3, m.session.ID())
	assert.Equal(t, session.StatusLoading, m.session.Status())

	m = finishLoad(t, m)
	assert.Equal(t, 3, m.session.Chapter().Number)
}

func TestChapterLoaded_NotFound(t *testing.T) {
	m, _ := newTestModel()

	m, _ = m.openChapter(5)
	m = finishLoad(t, m)

	assert.Equal(t, session.StatusNotFound, m.session.Status())
	assert.Equal(t, statusError, m.status.kind)
	assert.Equal(t, "Surah 5 is not available", m.status.text)
	assert.Nil(t, m.machine.Chapter())
}

func TestChapterLoaded_FetchFailure(t *testing.T) {
	m, env := newTestModel()
	env.source.chapterErr = &quran.FetchError{Op: "chapter 2", Err: errors.New("connection refused")}

	m, _ = m.openChapter(2)
	m = finishLoad(t, m)

	assert.Equal(t, session.StatusNotFound, m.session.Status())
	assert.Contains(t, m.status.text, "Failed to load chapter 'Surah 2'")
}

func TestPlayback_DrivesHighlight(t *testing.T) {
	m, env := newTestModel()
	m = openLoaded(t, m, 2)

	m = press(m, " ")
	require.Equal(t, playback.StateLoading, m.machine.State())
	assert.Equal(t, 0, m.coord.Active())

	m = emit(m, env, player.EventLoadedMetadata, 0, 30*time.Second)
	m = emit(m, env, player.EventPlaying, 0, 0)
	assert.Equal(t, playback.StatePlaying, m.machine.State())

	m = emit(m, env, player.EventTimeUpdate, 15*time.Second, 0)
	assert.Equal(t, 1, m.coord.Active())
	assert.Equal(t, 1, m.machine.Snapshot().CurrentVerse)

	m = emit(m, env, player.EventTimeUpdate, 25*time.Second, 0)
	assert.Equal(t, 2, m.coord.Active())
}

func TestPlayback_ErrorShowsStatus(t *testing.T) {
	m, _ := newTestModel()

	m = update(m, PlaybackErrorMsg{Operation: "load", Err: errors.New("decode failed")})

	assert.Equal(t, "Failed to load recitation: decode failed", m.status.text)
	assert.Equal(t, statusError, m.status.kind)
}

func TestStatusClear_OnlyLatest(t *testing.T) {
	m, _ := newTestModel()
	m.info("first")
	m.info("second")

	m = update(m, StatusClearMsg{Seq: 1})
	assert.Equal(t, "second", m.status.text)

	m = update(m, StatusClearMsg{Seq: 2})
	assert.Empty(t, m.status.text)
}

func TestNotifyOnRecitationStart(t *testing.T) {
	m, env := newTestModel()
	m = openLoaded(t, m, 2)

	msg := m.notifyCmd()()
	m = update(m, msg)

	require.Len(t, env.notifier.sent, 1)
	assert.Equal(t, "2. Al-Baqarah (سورة)", env.notifier.sent[0].Title)
	assert.Equal(t, "Mishary Rashid Al Afasy", env.notifier.sent[0].Body)
	assert.Equal(t, uint32(1), m.notifyID)

	_ = m.notifyCmd()()
	assert.Equal(t, uint32(1), env.notifier.sent[1].ReplacesID)
}

func TestPublishSnapshot(t *testing.T) {
	m, env := newTestModel()
	m = openLoaded(t, m, 2)
	m = press(m, " ")

	s := env.publisher.last
	assert.Equal(t, playback.StateLoading, s.State)
	assert.Equal(t, 2, s.ChapterNumber)
	assert.Equal(t, "Al-Baqarah", s.Chapter)
	assert.Equal(t, "Mishary Rashid Al Afasy", s.Reciter)
	assert.True(t, s.HasPrevious)
	assert.True(t, s.HasNext)
}

func TestPersistPreferences(t *testing.T) {
	m, env := newTestModel()
	before := len(env.store.SavedPrefs)

	m = press(m, "-")
	require.Len(t, env.store.SavedPrefs, before+1)
	assert.InDelta(t, 0.9, env.store.SavedPrefs[before].Volume, 1e-9)

	m = update(m, StatusClearMsg{})
	assert.Len(t, env.store.SavedPrefs, before+1, "unchanged preferences are not saved again")

	m = openLoaded(t, m, 1)
	_ = press(m, "u")
	last := env.store.SavedPrefs[len(env.store.SavedPrefs)-1]
	assert.False(t, last.ShowUrdu)
}

func TestView(t *testing.T) {
	m, _ := newTestModel()
	m = update(m, m.loadChapterList()())

	v := m.View()
	assert.Contains(t, v, "Al-Fatiha")
	assert.Contains(t, v, "? help")
	assert.NotContains(t, v, "Tap play to listen")

	m = openLoaded(t, m, 2)
	v = m.View()
	bar := testutil.LineIndex(v, "Tap play to listen")
	assert.Equal(t, 30-1-3, bar, "player bar sits above the status line")
	assert.Contains(t, v, "Al-Baqarah")
}

func TestView_HelpOverlay(t *testing.T) {
	m, _ := newTestModel()

	m = press(m, "?")
	assert.Contains(t, m.View(), "Key Bindings")

	m = press(m, "esc")
	assert.NotContains(t, m.View(), "Key Bindings")
}

func TestShutdown(t *testing.T) {
	m, env := newTestModel()
	m = openLoaded(t, m, 2)
	m = press(m, " ")
	require.True(t, env.player.IsPlaying())

	m.Shutdown()
	assert.False(t, env.player.IsPlaying())
	assert.Equal(t, playback.StateIdle, m.machine.State())
}
