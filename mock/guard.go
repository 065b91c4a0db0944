package mock

import "github.com/fwojciec/llmstxt"

var _ llmstxt.Guard = (*Guard)(nil)

// Guard is a mock implementation of llmstxt.Guard.
type Guard struct {
	CheckAccessFn func(t *llmstxt.Target) error
}

func (g *Guard) CheckAccess(t *llmstxt.Target) error {
	return g.CheckAccessFn(t)
}
