package mock

import "github.com/fwojciec/llmstxt"

var _ llmstxt.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of llmstxt.Resolver.
type Resolver struct {
	ResolveFn func(input string) *llmstxt.Target
}

func (r *Resolver) Resolve(input string) *llmstxt.Target {
	return r.ResolveFn(input)
}
