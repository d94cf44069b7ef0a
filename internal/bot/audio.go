package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"
)

// AudioFetcher downloads the audio clip behind a response's audio reference.
type AudioFetcher interface {
	Fetch(ctx context.Context, ref string) (name string, body io.ReadCloser, err error)
}

// HTTPFetcher fetches audio over HTTP.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns a fetcher whose requests time out after timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch downloads ref. The caller closes the returned body.
func (f *HTTPFetcher) Fetch(ctx context.Context, ref string) (string, io.ReadCloser, error) {
	u, err := url.Parse(ref)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", nil, fmt.Errorf("audio: unsupported reference %q", ref)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return "", nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("audio: get %s: %w", ref, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return "", nil, fmt.Errorf("audio: get %s: status %d", ref, resp.StatusCode)
	}
	return fileName(u), resp.Body, nil
}

func fileName(u *url.URL) string {
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "response.mp3"
	}
	return name
}
