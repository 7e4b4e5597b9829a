package quran

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

// Fetcher is the data source contract consumed by the session and list views.
type Fetcher interface {
	ChapterList(ctx context.Context) ([]ChapterSummary, error)
	Chapter(ctx context.Context, n int) (*Chapter, error)
}

// Source provides chapters from the local cache or the API.
type Source struct {
	client   *Client
	cacheDir string
	log      *slog.Logger
}

// Verify Source implements Fetcher at compile time.
var _ Fetcher = (*Source)(nil)

// NewSource creates a source backed by client, caching payloads under cacheDir.
// An empty cacheDir disables caching.
func NewSource(client *Client, cacheDir string, log *slog.Logger) *Source {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Source{client: client, cacheDir: cacheDir, log: log}
}

// ChapterList returns the chapter index, preferring the cache.
func (s *Source) ChapterList(ctx context.Context) ([]ChapterSummary, error) {
	path := s.cachePath("surah.json")
	if body, err := s.loadFromCache(path); err == nil {
		if list, err := decodeChapterList(body); err == nil {
			return list, nil
		}
		s.log.Warn("discarding corrupt cache entry", "path", path)
	}

	body, err := s.client.chapterListRaw(ctx)
	if err != nil {
		return nil, err
	}
	list, err := decodeChapterList(body)
	if err != nil {
		return nil, err
	}
	s.saveToCache(path, body)
	return list, nil
}

// Chapter returns chapter n, preferring the cache.
func (s *Source) Chapter(ctx context.Context, n int) (*Chapter, error) {
	path := s.cachePath(strconv.Itoa(n) + ".json")
	if body, err := s.loadFromCache(path); err == nil {
		if ch, err := decodeChapterNumber(body, n); err == nil {
			return ch, nil
		}
		s.log.Warn("discarding corrupt cache entry", "path", path)
	}

	body, err := s.client.chapterRaw(ctx, n)
	if err != nil {
		return nil, err
	}
	ch, err := decodeChapterNumber(body, n)
	if err != nil {
		return nil, err
	}
	s.saveToCache(path, body)
	return ch, nil
}

func (s *Source) cachePath(name string) string {
	if s.cacheDir == "" {
		return ""
	}
	return filepath.Join(s.cacheDir, name)
}

func (s *Source) loadFromCache(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("cache disabled")
	}
	return os.ReadFile(path)
}

func (s *Source) saveToCache(path string, body []byte) {
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.log.Warn("create cache dir", "err", err)
		return
	}
	if err := os.WriteFile(path, body, 0o600); err != nil {
		s.log.Warn("write cache", "path", path, "err", err)
	}
}
