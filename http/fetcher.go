// Package http provides an HTTP-based implementation of unfurl.Fetcher.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/unfurl"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize = 10 << 20

// DefaultUserAgent is sent unless WithUserAgent overrides it.
const DefaultUserAgent = "Mozilla/5.0 (compatible; unfurl/1.0; +https://github.com/fwojciec/unfurl)"

// Ensure Fetcher implements unfurl.Fetcher at compile time.
var _ unfurl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves resources using plain HTTP GET requests.
// Redirects are followed by the underlying client. Non-2xx responses are
// returned like any other; callers inspect StatusCode if they care.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
	retryDelays []time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize limits the number of body bytes handed to callers.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// WithRetryDelays retries requests that fail before a response arrives,
// waiting delays[i] before attempt i+2. Responses with any status code are
// never retried.
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.retryDelays = delays
	}
}

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves url and returns the final response after redirects.
// Text bodies are transcoded to UTF-8 based on the declared charset and
// any <meta charset> found in the document.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*unfurl.Response, error) {
	resp, err := f.doWithRetry(ctx, url)
	if err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	var r io.Reader = io.LimitReader(resp.Body, f.maxBodySize)
	if isText(contentType) {
		r, err = charset.NewReader(r, contentType)
		if errors.Is(err, io.EOF) {
			r, err = http.NoBody, nil
		}
		if err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("decoding %s body: %w", contentType, err)
		}
	}

	return &unfurl.Response{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        &limitedBody{Reader: r, Closer: resp.Body},
	}, nil
}

func (f *Fetcher) doWithRetry(ctx context.Context, url string) (*http.Response, error) {
	maxAttempts := len(f.retryDelays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := f.do(ctx, url)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if unfurl.ErrorCode(err) == unfurl.EINVALID || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.retryDelays[attempt]):
		}
	}

	return nil, lastErr
}

func (f *Fetcher) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, unfurl.Errorf(unfurl.EINVALID, "invalid url %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,image/*;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	return resp, nil
}

// Close releases resources. For HTTP fetcher this only drops idle
// connections since http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// limitedBody reads through Reader but closes the original response body.
type limitedBody struct {
	io.Reader
	io.Closer
}

func isText(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/")
}
