package unfurl

import "context"

// Fetcher retrieves resources over the network.
type Fetcher interface {
	// Fetch issues a GET for url, following redirects.
	// The returned Response body must be closed by the caller.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases fetcher resources.
	Close() error
}
