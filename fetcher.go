package linkpost

import "context"

// Fetcher retrieves HTML from URLs.
// Implementations are expected to decode the body to UTF-8.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
