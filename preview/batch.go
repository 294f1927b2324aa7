package preview

import (
	"context"
	"sync"

	"github.com/fwojciec/unfurl"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Batch.Concurrency is not positive.
const DefaultConcurrency = 4

// Outcome is the result of previewing one URL of a batch.
type Outcome struct {
	URL    string
	Result *unfurl.Result
	Err    error
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	URL       string
	Completed int
	Total     int
	Error     error
}

// ProgressFunc is called as URLs are processed.
type ProgressFunc func(ProgressEvent)

// Batch previews many URLs concurrently. Each preview is still a single
// linear fetch-and-extract; only independent URLs run in parallel.
type Batch struct {
	Previewer   unfurl.Previewer
	Concurrency int
}

// PreviewAll previews every URL and returns outcomes in input order.
// Per-URL failures are recorded in the outcome and do not stop the batch.
// The returned error is non-nil only when ctx ends before all URLs finish.
func (b *Batch) PreviewAll(ctx context.Context, urls []string, opts unfurl.ExtractOptions, progress ProgressFunc) ([]Outcome, error) {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	outcomes := make([]Outcome, len(urls))
	total := len(urls)

	var mu sync.Mutex
	var completed int

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, url := range urls {
		g.Go(func() error {
			result, err := b.Previewer.Preview(gctx, url, opts)
			outcomes[i] = Outcome{URL: url, Result: result, Err: err}

			if progress != nil {
				mu.Lock()
				completed++
				progress(ProgressEvent{
					URL:       url,
					Completed: completed,
					Total:     total,
					Error:     err,
				})
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes, ctx.Err()
}
