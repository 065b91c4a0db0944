// Package slog provides debug logging decorators for the fetch pipeline.
package slog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/llmstxt"
)

// Ensure LoggingFetcher implements llmstxt.Fetcher.
var _ llmstxt.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   llmstxt.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next llmstxt.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the size and digest of the
// returned text.
func (f *LoggingFetcher) Fetch(ctx context.Context, target *llmstxt.Target) (content *llmstxt.Content, err error) {
	defer func(begin time.Time) {
		var size int
		var digest string
		if content != nil {
			size = len(content.Text)
			digest = Digest(content.Text)
		}
		f.logger.Info("fetch",
			"location", target.Location(),
			"kind", target.Kind,
			"bytes", size,
			"digest", digest,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, target)
}

// Digest returns a short content fingerprint for correlating log lines.
func Digest(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}
