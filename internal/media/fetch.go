package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"
)

// MaxAudioBytes bounds how much attachment audio is ever downloaded.
const MaxAudioBytes = 25 << 20 // 25 MiB, the Whisper API upload limit

// HTTPFetcher downloads attachment bytes over HTTP with a bounded timeout.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher with the given per-download timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch downloads the resource and returns its bytes plus a filename
// derived from the URL path for the transcription backend's format
// detection.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch attachment: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, "", fmt.Errorf("attachment fetch returned %d", resp.StatusCode)
	}
	if resp.ContentLength > MaxAudioBytes {
		_ = resp.Body.Close()
		return nil, "", ErrAudioTooLarge
	}

	reader := &limitedReadCloser{
		reader: io.LimitReader(resp.Body, MaxAudioBytes+1),
		closer: resp.Body,
	}
	return reader, filenameFromURL(rawURL), nil
}

func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || path.Base(parsed.Path) == "/" || path.Base(parsed.Path) == "." {
		return "audio.ogg"
	}
	name := path.Base(parsed.Path)
	if path.Ext(name) == "" {
		return name + ".ogg"
	}
	return name
}

type limitedReadCloser struct {
	reader io.Reader
	closer io.Closer
	read   int64
}

func (l *limitedReadCloser) Read(p []byte) (int, error) {
	n, err := l.reader.Read(p)
	l.read += int64(n)
	if l.read > MaxAudioBytes {
		return n, ErrAudioTooLarge
	}
	return n, err
}

func (l *limitedReadCloser) Close() error {
	return l.closer.Close()
}

var _ Fetcher = (*HTTPFetcher)(nil)
