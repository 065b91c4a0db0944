package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/llmstxt"
)

// Ensure LoggingBatchFetcher implements llmstxt.BatchFetcher.
var _ llmstxt.BatchFetcher = (*LoggingBatchFetcher)(nil)

// LoggingBatchFetcher wraps a BatchFetcher with debug logging.
type LoggingBatchFetcher struct {
	next   llmstxt.BatchFetcher
	logger *slog.Logger
}

// NewLoggingBatchFetcher creates a new LoggingBatchFetcher.
func NewLoggingBatchFetcher(next llmstxt.BatchFetcher, logger *slog.Logger) *LoggingBatchFetcher {
	return &LoggingBatchFetcher{next: next, logger: logger}
}

// FetchAll delegates to the wrapped fetcher and logs the batch outcome.
func (f *LoggingBatchFetcher) FetchAll(ctx context.Context, inputs []string) (contents []*llmstxt.Content, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch batch",
			"requested", len(inputs),
			"fetched", len(contents),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchAll(ctx, inputs)
}
