package slog_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/mock"
	unfurlslog "github.com/fwojciec/unfurl/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingPreviewer_Preview(t *testing.T) {
	t.Parallel()

	t.Run("logs strategy", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Previewer{
			PreviewFn: func(_ context.Context, url string, _ unfurl.ExtractOptions) (*unfurl.Result, error) {
				return &unfurl.Result{Strategy: unfurl.StrategyImage, Preview: unfurl.NewImagePreview(url, "image/png")}, nil
			},
		}

		_, err := unfurlslog.NewLoggingPreviewer(inner, logger).Preview(context.Background(), "https://example.com/a.png", unfurl.ExtractOptions{})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "url=https://example.com/a.png")
		assert.Contains(t, output, "strategy=image")
	})

	t.Run("logs superseded requests at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Previewer{
			PreviewFn: func(context.Context, string, unfurl.ExtractOptions) (*unfurl.Result, error) {
				return nil, unfurl.Errorf(unfurl.ECANCELED, "superseded")
			},
		}

		_, err := unfurlslog.NewLoggingPreviewer(inner, logger).Preview(context.Background(), "https://example.com", unfurl.ExtractOptions{})

		require.Error(t, err)
		assert.Empty(t, buf.String())
	})
	t.Run("logs canceled requests at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Previewer{
			PreviewFn: func(context.Context, string, unfurl.ExtractOptions) (*unfurl.Result, error) {
				return nil, fmt.Errorf("fetching https://example.com: %w", context.Canceled)
			},
		}

		_, err := unfurlslog.NewLoggingPreviewer(inner, logger).Preview(context.Background(), "https://example.com", unfurl.ExtractOptions{})

		require.ErrorIs(t, err, context.Canceled)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.NotContains(t, output, "level=INFO")
	})
}
