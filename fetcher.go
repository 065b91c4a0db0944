package llmstxt

import "context"

// Content is the text retrieved for one location.
type Content struct {
	// Location is the resolved URL or absolute path that was read.
	Location string

	// Text is the complete body.
	Text string

	// ContentType is the response MIME type for remote targets, or the
	// extension-derived type for local files. Empty when unknown.
	ContentType string
}

// Fetcher retrieves the content of a resolved target.
// Each call either returns the complete text or fails; there are no partial reads.
type Fetcher interface {
	// Fetch reads the target. The context controls cancellation.
	Fetch(ctx context.Context, target *Target) (*Content, error)
}

// BatchFetcher runs the resolve, check and fetch pipeline over a list of
// location strings.
type BatchFetcher interface {
	// FetchAll returns one Content per input in input order. The first
	// failure aborts the batch and no partial results are returned.
	FetchAll(ctx context.Context, inputs []string) ([]*Content, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
