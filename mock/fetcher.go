package mock

import (
	"context"

	"github.com/fwojciec/llmstxt"
)

var _ llmstxt.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of llmstxt.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, target *llmstxt.Target) (*llmstxt.Content, error)
}

func (f *Fetcher) Fetch(ctx context.Context, target *llmstxt.Target) (*llmstxt.Content, error) {
	return f.FetchFn(ctx, target)
}

var _ llmstxt.BatchFetcher = (*BatchFetcher)(nil)

// BatchFetcher is a mock implementation of llmstxt.BatchFetcher.
type BatchFetcher struct {
	FetchAllFn func(ctx context.Context, inputs []string) ([]*llmstxt.Content, error)
}

func (f *BatchFetcher) FetchAll(ctx context.Context, inputs []string) ([]*llmstxt.Content, error) {
	return f.FetchAllFn(ctx, inputs)
}
