package mock

import "github.com/fwojciec/llmstxt"

var _ llmstxt.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of llmstxt.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*llmstxt.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*llmstxt.ExtractResult, error) {
	return e.ExtractFn(html)
}
