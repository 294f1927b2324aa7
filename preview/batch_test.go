package preview_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/mock"
	"github.com/fwojciec/unfurl/preview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatch_PreviewAll(t *testing.T) {
	t.Parallel()

	t.Run("returns outcomes in input order", func(t *testing.T) {
		t.Parallel()

		inner := &mock.Previewer{
			PreviewFn: func(_ context.Context, url string, _ unfurl.ExtractOptions) (*unfurl.Result, error) {
				if url == "https://a.example" {
					time.Sleep(20 * time.Millisecond)
				}
				return &unfurl.Result{Strategy: unfurl.StrategyText, Preview: &unfurl.Preview{URL: url}}, nil
			},
		}

		b := &preview.Batch{Previewer: inner, Concurrency: 3}
		urls := []string{"https://a.example", "https://b.example", "https://c.example"}

		outcomes, err := b.PreviewAll(context.Background(), urls, unfurl.ExtractOptions{}, nil)

		require.NoError(t, err)
		require.Len(t, outcomes, 3)
		for i, url := range urls {
			assert.Equal(t, url, outcomes[i].URL)
			require.NoError(t, outcomes[i].Err)
			assert.Equal(t, url, outcomes[i].Result.Preview.URL)
		}
	})

	t.Run("records per-url failures without stopping", func(t *testing.T) {
		t.Parallel()

		inner := &mock.Previewer{
			PreviewFn: func(_ context.Context, url string, _ unfurl.ExtractOptions) (*unfurl.Result, error) {
				if url == "https://bad.example" {
					return nil, errors.New("connection refused")
				}
				return &unfurl.Result{Strategy: unfurl.StrategyText, Preview: &unfurl.Preview{URL: url}}, nil
			},
		}

		var mu sync.Mutex
		var events []preview.ProgressEvent
		progress := func(e preview.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e)
		}

		b := &preview.Batch{Previewer: inner}
		outcomes, err := b.PreviewAll(context.Background(), []string{"https://bad.example", "https://good.example"}, unfurl.ExtractOptions{}, progress)

		require.NoError(t, err)
		assert.Error(t, outcomes[0].Err)
		assert.NoError(t, outcomes[1].Err)

		require.Len(t, events, 2)
		completed := []int{events[0].Completed, events[1].Completed}
		assert.ElementsMatch(t, []int{1, 2}, completed)
		for _, e := range events {
			assert.Equal(t, 2, e.Total)
		}
	})

	t.Run("limits concurrency", func(t *testing.T) {
		t.Parallel()

		var inFlight, maxInFlight atomic.Int32
		inner := &mock.Previewer{
			PreviewFn: func(_ context.Context, url string, _ unfurl.ExtractOptions) (*unfurl.Result, error) {
				n := inFlight.Add(1)
				for {
					m := maxInFlight.Load()
					if n <= m || maxInFlight.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				inFlight.Add(-1)
				return &unfurl.Result{}, nil
			},
		}

		b := &preview.Batch{Previewer: inner, Concurrency: 2}
		urls := []string{"https://1.example", "https://2.example", "https://3.example", "https://4.example", "https://5.example"}

		_, err := b.PreviewAll(context.Background(), urls, unfurl.ExtractOptions{}, nil)

		require.NoError(t, err)
		assert.LessOrEqual(t, maxInFlight.Load(), int32(2))
	})

	t.Run("reports context cancellation", func(t *testing.T) {
		t.Parallel()

		inner := &mock.Previewer{
			PreviewFn: func(ctx context.Context, _ string, _ unfurl.ExtractOptions) (*unfurl.Result, error) {
				return nil, ctx.Err()
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		b := &preview.Batch{Previewer: inner}
		outcomes, err := b.PreviewAll(ctx, []string{"https://a.example"}, unfurl.ExtractOptions{}, nil)

		require.ErrorIs(t, err, context.Canceled)
		require.Len(t, outcomes, 1)
		assert.ErrorIs(t, outcomes[0].Err, context.Canceled)
	})
}
