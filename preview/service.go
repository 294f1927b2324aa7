// Package preview composes a Fetcher and an Extractor into the link preview
// pipeline, and provides request superseding and batch helpers on top.
package preview

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/unfurl"
)

// Ensure Service implements unfurl.Previewer at compile time.
var _ unfurl.Previewer = (*Service)(nil)

// Service runs one preview at a time per call: fetch, classify, then either
// synthesize an image preview, extract metadata from markup, or hand the
// response back untouched.
type Service struct {
	fetcher   unfurl.Fetcher
	extractor unfurl.Extractor
}

// NewService creates a new Service with the given dependencies.
func NewService(fetcher unfurl.Fetcher, extractor unfurl.Extractor) *Service {
	return &Service{
		fetcher:   fetcher,
		extractor: extractor,
	}
}

// Preview fetches rawURL and summarizes it according to its content type.
//
// For StrategyUnhandled the caller receives the response with its body
// unread and is responsible for closing it.
func (s *Service) Preview(ctx context.Context, rawURL string, opts unfurl.ExtractOptions) (*unfurl.Result, error) {
	target, err := unfurl.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	resp, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}
	if resp.URL == "" {
		resp.URL = target
	}

	strategy := unfurl.Classify(resp.URL, resp.ContentType)
	switch strategy {
	case unfurl.StrategyImage:
		resp.Body.Close()
		return &unfurl.Result{
			Strategy: strategy,
			Preview:  unfurl.NewImagePreview(resp.URL, resp.ContentType),
		}, nil

	case unfurl.StrategyText:
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", resp.URL, err)
		}

		p, err := s.extractor.Extract(string(body), resp.URL, opts)
		if err != nil {
			return nil, err
		} else if p == nil {
			return nil, unfurl.Errorf(unfurl.EINTERNAL, "extractor returned no preview for %s", resp.URL)
		}
		contentType := resp.ContentType
		p.ContentType = &contentType

		return &unfurl.Result{Strategy: strategy, Preview: p}, nil

	default:
		return &unfurl.Result{Strategy: strategy, Response: resp}, nil
	}
}
