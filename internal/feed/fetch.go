package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// Fetcher retrieves the raw text of a timetable file
type Fetcher interface {
	Fetch(ctx context.Context, path string) (string, error)
}

// HTTPStatusError is returned for a non-success response
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// HTTPFetcher fetches timetable files relative to a base URL.
// Concurrent fetches of the same path share one request.
type HTTPFetcher struct {
	baseURL    string
	httpClient *http.Client
	group      singleflight.Group
}

// NewHTTPFetcher creates a fetcher for baseURL
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch returns the body of baseURL+path
func (f *HTTPFetcher) Fetch(ctx context.Context, path string) (string, error) {
	url := f.baseURL + "/" + strings.TrimPrefix(path, "/")

	ch := f.group.DoChan(url, func() (interface{}, error) {
		return f.get(context.WithoutCancel(ctx), url)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (f *HTTPFetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/csv, text/plain")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPStatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FileFetcher reads timetable files from a local directory
type FileFetcher struct {
	dir string
}

// NewFileFetcher creates a fetcher rooted at dir
func NewFileFetcher(dir string) *FileFetcher {
	return &FileFetcher{dir: dir}
}

// Fetch reads dir/path
func (f *FileFetcher) Fetch(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(f.dir, filepath.FromSlash(strings.TrimPrefix(path, "/"))))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewFetcher picks an HTTP fetcher for URLs and a file fetcher otherwise
func NewFetcher(source string, timeout time.Duration) Fetcher {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return NewHTTPFetcher(source, timeout)
	}
	return NewFileFetcher(source)
}
