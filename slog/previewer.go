package slog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/unfurl"
)

// Ensure LoggingPreviewer implements unfurl.Previewer.
var _ unfurl.Previewer = (*LoggingPreviewer)(nil)

// LoggingPreviewer wraps a Previewer with logging.
type LoggingPreviewer struct {
	next   unfurl.Previewer
	logger *slog.Logger
}

// NewLoggingPreviewer creates a new LoggingPreviewer.
func NewLoggingPreviewer(next unfurl.Previewer, logger *slog.Logger) *LoggingPreviewer {
	return &LoggingPreviewer{next: next, logger: logger}
}

// Preview delegates to the wrapped previewer and logs the chosen strategy.
// Superseded and canceled requests are logged at debug level.
func (p *LoggingPreviewer) Preview(ctx context.Context, url string, opts unfurl.ExtractOptions) (result *unfurl.Result, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if unfurl.ErrorCode(err) == unfurl.ECANCELED || errors.Is(err, context.Canceled) {
			level = slog.LevelDebug
		}
		strategy := "none"
		if result != nil {
			strategy = result.Strategy.String()
		}
		p.logger.Log(ctx, level, "preview",
			"url", url,
			"strategy", strategy,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Preview(ctx, url, opts)
}
