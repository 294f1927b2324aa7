package mock

import "github.com/fwojciec/unfurl"

var _ unfurl.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of unfurl.Extractor.
type Extractor struct {
	ExtractFn func(markup, baseURL string, opts unfurl.ExtractOptions) (*unfurl.Preview, error)
}

func (e *Extractor) Extract(markup, baseURL string, opts unfurl.ExtractOptions) (*unfurl.Preview, error) {
	return e.ExtractFn(markup, baseURL, opts)
}
