package slog

import (
	"log/slog"

	"github.com/fwojciec/llmstxt"
)

// Ensure LoggingGuard implements llmstxt.Guard.
var _ llmstxt.Guard = (*LoggingGuard)(nil)

// LoggingGuard wraps a Guard and logs denied targets.
type LoggingGuard struct {
	next   llmstxt.Guard
	logger *slog.Logger
}

// NewLoggingGuard creates a new LoggingGuard.
func NewLoggingGuard(next llmstxt.Guard, logger *slog.Logger) *LoggingGuard {
	return &LoggingGuard{next: next, logger: logger}
}

// CheckAccess delegates to the wrapped guard. Only denials are logged.
func (g *LoggingGuard) CheckAccess(t *llmstxt.Target) error {
	err := g.next.CheckAccess(t)
	if err != nil {
		g.logger.Warn("access denied",
			"location", t.Location(),
			"kind", t.Kind,
			"err", err,
		)
	}
	return err
}
