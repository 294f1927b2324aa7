package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/unfurl"
)

// Ensure LoggingExtractor implements unfurl.Extractor.
var _ unfurl.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   unfurl.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next unfurl.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs what was found.
func (e *LoggingExtractor) Extract(markup, baseURL string, opts unfurl.ExtractOptions) (p *unfurl.Preview, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", baseURL, "bytes", len(markup)}
		if p != nil {
			attrs = append(attrs,
				"title", p.Title != nil,
				"description", p.Description != nil,
				"images", len(p.Images),
				"videos", len(p.Videos),
			)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		e.logger.Debug("extract", attrs...)
	}(time.Now())
	return e.next.Extract(markup, baseURL, opts)
}
