package slog

import (
	"log/slog"

	"github.com/fwojciec/llmstxt"
)

// Ensure LoggingResolver implements llmstxt.Resolver.
var _ llmstxt.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver with debug logging.
type LoggingResolver struct {
	next   llmstxt.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next llmstxt.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the classification.
func (r *LoggingResolver) Resolve(input string) *llmstxt.Target {
	target := r.next.Resolve(input)
	attrs := []any{"input", input, "kind", target.Kind}
	if target.Kind == llmstxt.TargetUnsupported {
		attrs = append(attrs, "reason", target.Reason)
	} else {
		attrs = append(attrs, "location", target.Location())
	}
	r.logger.Info("resolve", attrs...)
	return target
}
