// Package slog provides log/slog decorators for unfurl services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/unfurl"
)

// Ensure LoggingFetcher implements unfurl.Fetcher.
var _ unfurl.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   unfurl.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next unfurl.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (resp *unfurl.Response, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url}
		if resp != nil {
			attrs = append(attrs,
				"final_url", resp.URL,
				"status", resp.StatusCode,
				"content_type", resp.ContentType,
			)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
