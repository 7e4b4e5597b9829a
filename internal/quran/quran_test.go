package quran

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fatihaJSON = `{
	"surahName": "Al-Faatiha",
	"surahNameArabic": "الفاتحة",
	"surahNameArabicLong": "سورة الفاتحة",
	"surahNameTranslation": "The Opening",
	"revelationPlace": "Mecca",
	"totalAyah": 3,
	"surahNo": 1,
	"audio": {
		"3": {"reciter": "Nasser Al Qatami", "url": "https://example.com/3/1.mp3", "originalUrl": ""},
		"1": {"reciter": "Mishary Rashid Al Afasy", "url": "https://example.com/1/1.mp3", "originalUrl": ""},
		"2": {"reciter": "Abu Bakr Al Shatri", "url": "https://example.com/2/1.mp3", "originalUrl": ""}
	},
	"english": ["one", "two", "three"],
	"arabic1": ["a", "b", "c"],
	"arabic2": ["a", "b", "c"]
}`

func TestNarratorList_PreservesSourceOrder(t *testing.T) {
	var ch Chapter
	require.NoError(t, json.Unmarshal([]byte(fatihaJSON), &ch))

	ids := make([]string, 0, len(ch.Narrators))
	for _, n := range ch.Narrators {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"3", "1", "2"}, ids)
	assert.Equal(t, "Mishary Rashid Al Afasy", ch.Narrators[1].Name)
}

func TestNarratorList_RoundTripKeepsOrder(t *testing.T) {
	in := NarratorList{
		{ID: "b", Name: "B", URL: "https://x/b.mp3"},
		{ID: "a", Name: "A", URL: "https://x/a.mp3"},
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out NarratorList
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestNarratorList_RejectsNonObject(t *testing.T) {
	var l NarratorList
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &l))
}

func TestChapter_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Chapter)
		wantErr bool
	}{
		{"valid", func(_ *Chapter) {}, false},
		{"number too low", func(c *Chapter) { c.Number = 0 }, true},
		{"number too high", func(c *Chapter) { c.Number = 115 }, true},
		{"no verses", func(c *Chapter) { c.TotalVerses = 0 }, true},
		{"english length mismatch", func(c *Chapter) { c.English = c.English[:2] }, true},
		{"missing urdu is fine", func(c *Chapter) { c.Urdu = nil }, false},
		{"narrator without url is kept", func(c *Chapter) { c.Narrators[0].URL = "" }, false},
		{"malformed narrator url is kept", func(c *Chapter) { c.Narrators[1].URL = "not a url" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ch Chapter
			require.NoError(t, json.Unmarshal([]byte(fatihaJSON), &ch))
			tt.mutate(&ch)

			err := ch.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidChapter)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChapter_Verse(t *testing.T) {
	var ch Chapter
	require.NoError(t, json.Unmarshal([]byte(fatihaJSON), &ch))

	v := ch.Verse(1)
	assert.Equal(t, "b", v.Arabic)
	assert.Equal(t, "two", v.English)
	assert.Empty(t, v.Urdu)
	assert.Empty(t, ch.Verse(10).Arabic)
}

func newTestServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		switch r.URL.Path {
		case "/surah.json":
			_, _ = w.Write([]byte(`[{"surahName":"Al-Faatiha","surahNameArabic":"الفاتحة","surahNameTranslation":"The Opening","revelationPlace":"Mecca","totalAyah":7},{"surahName":"Al-Baqara","surahNameArabic":"البقرة","surahNameTranslation":"The Cow","revelationPlace":"Madina","totalAyah":286}]`))
		case "/1.json":
			_, _ = w.Write([]byte(fatihaJSON))
		case "/3.json":
			_, _ = w.Write([]byte(fatihaJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ChapterList_NumbersByPosition(t *testing.T) {
	srv := newTestServer(t, nil)
	c := NewClient(srv.URL, WithRateLimit(0, 0))

	list, err := c.ChapterList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Number)
	assert.Equal(t, 2, list[1].Number)
	assert.Equal(t, "The Cow", list[1].NameTranslation)
}

func TestClient_Chapter(t *testing.T) {
	srv := newTestServer(t, nil)
	c := NewClient(srv.URL+"/", WithRateLimit(0, 0))

	ch, err := c.Chapter(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Al-Faatiha", ch.Name)
	assert.Len(t, ch.Narrators, 3)
}

func TestClient_Chapter_NonSuccessIsFetchError(t *testing.T) {
	srv := newTestServer(t, nil)
	c := NewClient(srv.URL, WithRateLimit(0, 0))

	_, err := c.Chapter(context.Background(), 2)

	var fe *FetchError
	require.True(t, errors.As(err, &fe), "want *FetchError, got %T", err)
	assert.Equal(t, http.StatusNotFound, fe.Status)
	assert.True(t, IsNotFound(err))
}

func TestClient_Chapter_OutOfRange(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", WithRateLimit(0, 0))

	_, err := c.Chapter(context.Background(), 115)
	assert.ErrorIs(t, err, ErrInvalidChapter)
}

func TestDecodeChapter_KeepsNarratorWithoutURL(t *testing.T) {
	body := strings.Replace(fatihaJSON, `"url": "https://example.com/1/1.mp3"`, `"url": ""`, 1)

	ch, err := decodeChapter([]byte(body))
	require.NoError(t, err)
	require.Len(t, ch.Narrators, 3)
	n, ok := ch.Narrator("1")
	require.True(t, ok)
	assert.Empty(t, n.URL)
	assert.Len(t, ch.English, 3, "text stays readable")
}

func TestClient_Chapter_NumberMismatch(t *testing.T) {
	srv := newTestServer(t, nil)
	c := NewClient(srv.URL, WithRateLimit(0, 0))

	_, err := c.Chapter(context.Background(), 3)
	assert.ErrorIs(t, err, ErrInvalidChapter)
}

func TestClient_Unreachable(t *testing.T) {
	srv := newTestServer(t, nil)
	url := srv.URL
	srv.Close()

	c := NewClient(url, WithRateLimit(0, 0))
	_, err := c.ChapterList(context.Background())

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Zero(t, fe.Status)
}

func TestSource_CachesChapter(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)
	dir := t.TempDir()
	s := NewSource(NewClient(srv.URL, WithRateLimit(0, 0)), dir, nil)

	first, err := s.Chapter(context.Background(), 1)
	require.NoError(t, err)
	second, err := s.Chapter(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, first, second)
	assert.FileExists(t, filepath.Join(dir, "1.json"))
}

func TestSource_CorruptCacheRefetches(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "surah.json"), []byte("{not json"), 0o600))
	s := NewSource(NewClient(srv.URL, WithRateLimit(0, 0)), dir, nil)

	list, err := s.ChapterList(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestSource_MismatchedCacheRefetches(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2.json"), []byte(fatihaJSON), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.json"), []byte(strings.Replace(fatihaJSON, `"surahNo": 1`, `"surahNo": 2`, 1)), 0o600))
	s := NewSource(NewClient(srv.URL, WithRateLimit(0, 0)), dir, nil)

	ch, err := s.Chapter(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, ch.Number)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "mismatched cache entry is refetched")

	_, err = s.Chapter(context.Background(), 2)
	require.Error(t, err, "cached chapter 1 is not served as chapter 2")
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestSource_NoCacheDir(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)
	s := NewSource(NewClient(srv.URL, WithRateLimit(0, 0)), "", nil)

	_, err := s.Chapter(context.Background(), 1)
	require.NoError(t, err)
	_, err = s.Chapter(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}
