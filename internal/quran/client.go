package quran

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public quranapi endpoint.
	DefaultBaseURL = "https://quranapi.pages.dev/api"
	userAgent      = "tilawa/1.0 (https://github.com/llehouerou/tilawa)"
	maxBodySize    = 16 << 20
)

// Client is a quranapi.pages.dev API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit limits outbound requests to rps per second.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

// NewClient creates a new API client for baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(4), 4),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ChapterList fetches the chapter index.
func (c *Client) ChapterList(ctx context.Context) ([]ChapterSummary, error) {
	body, err := c.chapterListRaw(ctx)
	if err != nil {
		return nil, err
	}
	return decodeChapterList(body)
}

// Chapter fetches the detail of chapter n.
func (c *Client) Chapter(ctx context.Context, n int) (*Chapter, error) {
	body, err := c.chapterRaw(ctx, n)
	if err != nil {
		return nil, err
	}
	return decodeChapterNumber(body, n)
}

func (c *Client) chapterListRaw(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "chapter list", "/surah.json")
}

func (c *Client) chapterRaw(ctx context.Context, n int) ([]byte, error) {
	op := "chapter " + strconv.Itoa(n)
	if !ValidNumber(n) {
		return nil, &FetchError{Op: op, Err: fmt.Errorf("%w: number %d out of range", ErrInvalidChapter, n)}
	}
	return c.get(ctx, op, "/"+strconv.Itoa(n)+".json")
}

func (c *Client) get(ctx context.Context, op, path string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &FetchError{Op: op, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, &FetchError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Op: op, Err: fmt.Errorf("http request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status: %s", resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &FetchError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

func decodeChapterList(body []byte) ([]ChapterSummary, error) {
	var list []ChapterSummary
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode chapter list: %w", err)
	}
	for i := range list {
		list[i].Number = i + 1
	}
	return list, nil
}

func decodeChapter(body []byte) (*Chapter, error) {
	var ch Chapter
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&ch); err != nil {
		return nil, fmt.Errorf("decode chapter: %w", err)
	}
	if err := ch.Validate(); err != nil {
		return nil, err
	}
	return &ch, nil
}

// decodeChapterNumber decodes body and checks that it holds chapter n.
func decodeChapterNumber(body []byte, n int) (*Chapter, error) {
	ch, err := decodeChapter(body)
	if err != nil {
		return nil, err
	}
	if ch.Number != n {
		return nil, fmt.Errorf("%w: got chapter %d, want %d", ErrInvalidChapter, ch.Number, n)
	}
	return ch, nil
}
