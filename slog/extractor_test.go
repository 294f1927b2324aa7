package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/mock"
	unfurlslog "github.com/fwojciec/unfurl/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs counts at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		title := "Hello"
		inner := &mock.Extractor{
			ExtractFn: func(markup, baseURL string, opts unfurl.ExtractOptions) (*unfurl.Preview, error) {
				return &unfurl.Preview{
					URL:    baseURL,
					Title:  &title,
					Images: []string{"https://example.com/a.png", "https://example.com/b.png"},
				}, nil
			},
		}

		extractor := unfurlslog.NewLoggingExtractor(inner, logger)
		p, err := extractor.Extract("<title>Hello</title>", "https://example.com", unfurl.ExtractOptions{})

		require.NoError(t, err)
		assert.Equal(t, "Hello", *p.Title)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "title=true")
		assert.Contains(t, output, "description=false")
		assert.Contains(t, output, "images=2")
		assert.Contains(t, output, "videos=0")
	})

	t.Run("is silent at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(markup, baseURL string, opts unfurl.ExtractOptions) (*unfurl.Preview, error) {
				return &unfurl.Preview{URL: baseURL}, nil
			},
		}

		_, err := unfurlslog.NewLoggingExtractor(inner, logger).Extract("", "https://example.com", unfurl.ExtractOptions{})

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}
