package preview

import (
	"context"
	"sync"

	"github.com/fwojciec/unfurl"
)

// Ensure Latest implements unfurl.Previewer at compile time.
var _ unfurl.Previewer = (*Latest)(nil)

// Latest wraps a Previewer so that only the most recent request wins.
// Starting a new request cancels the context of the one in flight, and a
// request that was superseded reports ECANCELED instead of its result, even
// when it managed to finish. Latest is safe for concurrent use.
type Latest struct {
	next unfurl.Previewer

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewLatest creates a new Latest around next.
func NewLatest(next unfurl.Previewer) *Latest {
	return &Latest{next: next}
}

// Preview supersedes any in-flight request and previews url.
func (l *Latest) Preview(ctx context.Context, url string, opts unfurl.ExtractOptions) (*unfurl.Result, error) {
	ctx, cancel, seq := l.begin(ctx)
	defer cancel()

	result, err := l.next.Preview(ctx, url, opts)
	return l.settle(seq, url, result, err)
}

// Go supersedes any in-flight request immediately, then previews url in a
// new goroutine and passes the outcome to fn. Requests started by Go are
// ordered by call order, not by goroutine scheduling. fn is always called;
// it receives an ECANCELED error if the request was superseded.
func (l *Latest) Go(ctx context.Context, url string, opts unfurl.ExtractOptions, fn func(*unfurl.Result, error)) {
	ctx, cancel, seq := l.begin(ctx)
	go func() {
		defer cancel()
		result, err := l.next.Preview(ctx, url, opts)
		fn(l.settle(seq, url, result, err))
	}()
}

// begin cancels the in-flight request and registers a new one.
func (l *Latest) begin(ctx context.Context) (context.Context, context.CancelFunc, uint64) {
	ctx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	l.cancel = cancel
	return ctx, cancel, l.seq
}

// settle drops the outcome of request seq if a newer request has started.
func (l *Latest) settle(seq uint64, url string, result *unfurl.Result, err error) (*unfurl.Result, error) {
	l.mu.Lock()
	current := l.seq == seq
	if current {
		l.cancel = nil
	}
	l.mu.Unlock()

	if !current {
		discard(result)
		return nil, unfurl.Errorf(unfurl.ECANCELED, "preview of %q superseded by a newer request", url)
	}
	return result, err
}

// discard releases anything a dropped result still holds.
func discard(result *unfurl.Result) {
	if result != nil && result.Response != nil && result.Response.Body != nil {
		result.Response.Body.Close()
	}
}
