package player

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
)

// Cache downloads remote tracks into local files so they can be decoded and seeked.
type Cache struct {
	dir        string
	httpClient *http.Client
	log        *slog.Logger
}

// NewCache creates a track cache rooted at dir.
func NewCache(dir string, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Cache{
		dir: dir,
		httpClient: &http.Client{
			// Whole recitations can be tens of megabytes.
			Timeout: 10 * time.Minute,
		},
		log: log,
	}
}

// Path returns the local file path for url.
func (c *Cache) Path(url string) string {
	h := fnv.New64a()
	h.Write([]byte(url))
	return filepath.Join(c.dir, fmt.Sprintf("%x%s", h.Sum64(), filepath.Ext(url)))
}

// Has reports whether url is already cached.
func (c *Cache) Has(url string) bool {
	_, err := os.Stat(c.Path(url))
	return err == nil
}

// Fetch returns the local path for url, downloading it first if needed.
func (c *Cache) Fetch(ctx context.Context, url string) (string, error) {
	path := c.Path(url)
	if c.Has(url) {
		return path, nil
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	tmp := path + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("download: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}

	c.log.Info("track cached", "url", url, "size", humanize.Bytes(uint64(n))) //nolint:gosec // n >= 0
	return path, nil
}

// Export copies the track for url into dir and returns the written path.
// The track is downloaded first when it is not cached yet.
func (c *Cache) Export(ctx context.Context, url, dir, name string) (string, error) {
	src, err := c.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dst := filepath.Join(dir, name+filepath.Ext(src))
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", err
	}
	return dst, out.Close()
}
