package source

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultUserAgent is sent with photo downloads.
const DefaultUserAgent = "planetize/1.0"

// DefaultMaxDownload caps the size of a downloaded photo.
const DefaultMaxDownload = 32 << 20

// Fetcher downloads photos over HTTP.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
	Headers   map[string]string
	// MaxBytes caps the response body; zero means DefaultMaxDownload.
	MaxBytes int64
}

// NewFetcher creates a fetcher with a 30s client timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:    &http.Client{Timeout: 30 * time.Second},
		UserAgent: DefaultUserAgent,
	}
}

// IsURL reports whether input names an http or https resource.
func IsURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// Fetch downloads the photo at url and returns its square crop.
func (f *Fetcher) Fetch(ctx context.Context, url string, maxSide int) (*image.RGBA, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", f.UserAgent)
	for key, value := range f.Headers {
		req.Header.Set(key, value)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %d: %s", url, resp.StatusCode, resp.Status)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxDownload
	}
	body := io.LimitReader(resp.Body, limit+1)
	crop, err := Acquire(&countingReader{r: body, limit: limit}, maxSide)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return crop, nil
}

// countingReader fails once more than limit bytes were read.
type countingReader struct {
	r     io.Reader
	n     int64
	limit int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if c.n > c.limit {
		return n, fmt.Errorf("photo exceeds %d bytes", c.limit)
	}
	return n, err
}
