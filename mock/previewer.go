package mock

import (
	"context"

	"github.com/fwojciec/unfurl"
)

var _ unfurl.Previewer = (*Previewer)(nil)

// Previewer is a mock implementation of unfurl.Previewer.
type Previewer struct {
	PreviewFn func(ctx context.Context, url string, opts unfurl.ExtractOptions) (*unfurl.Result, error)
}

func (p *Previewer) Preview(ctx context.Context, url string, opts unfurl.ExtractOptions) (*unfurl.Result, error) {
	return p.PreviewFn(ctx, url, opts)
}
