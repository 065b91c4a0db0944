// Package fetch composes resolution, access checks and fetching into the
// batch pipeline behind the fetch tool.
package fetch

import (
	"context"

	"github.com/fwojciec/llmstxt"
)

var _ llmstxt.Fetcher = (*Router)(nil)

// Router dispatches a target to the fetcher for its kind.
type Router struct {
	Remote llmstxt.Fetcher
	Local  llmstxt.Fetcher

	// RateLimiter, when set, is waited on before every remote fetch.
	RateLimiter llmstxt.DomainLimiter
}

// Fetch implements llmstxt.Fetcher. Unsupported targets fail with
// EUNSUPPORTED before any I/O.
func (r *Router) Fetch(ctx context.Context, target *llmstxt.Target) (*llmstxt.Content, error) {
	switch target.Kind {
	case llmstxt.TargetRemote:
		if r.RateLimiter != nil {
			if err := r.RateLimiter.Wait(ctx, target.Hostname); err != nil {
				return nil, err
			}
		}
		return r.Remote.Fetch(ctx, target)
	case llmstxt.TargetFileURL, llmstxt.TargetLocalPath:
		return r.Local.Fetch(ctx, target)
	default:
		return nil, llmstxt.Errorf(llmstxt.EUNSUPPORTED, "cannot fetch content for unsupported target: %s", target.Reason)
	}
}
