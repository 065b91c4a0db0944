// Package goquery implements llmstxt.Extractor with CSS selectors, keeping
// the main content of an HTML documentation page.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/llmstxt"
)

// Ensure Extractor implements llmstxt.Extractor at compile time.
var _ llmstxt.Extractor = (*Extractor)(nil)

// boilerplateSelector matches elements that never carry documentation text.
const boilerplateSelector = "script, style, noscript, template, iframe, svg, form, nav, header, footer, aside, [role=navigation], [role=banner], [role=contentinfo], [aria-hidden=true]"

// contentSelectors are tried in order; the first match is the content root.
var contentSelectors = []string{
	"main",
	"[role=main]",
	"article",
	".markdown-body",
	".theme-doc-markdown",
	".md-content",
	".rst-content",
	"body",
}

// Extractor strips page chrome and returns the main content element.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract implements llmstxt.Extractor.
func (e *Extractor) Extract(html string) (*llmstxt.ExtractResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, llmstxt.Errorf(llmstxt.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, llmstxt.Errorf(llmstxt.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("head title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	doc.Find(boilerplateSelector).Remove()

	root := doc.Selection
	for _, sel := range contentSelectors {
		if found := doc.Find(sel).First(); found.Length() > 0 {
			root = found
			break
		}
	}

	content, err := root.Html()
	if err != nil {
		return nil, llmstxt.Errorf(llmstxt.EINVALID, "failed to render HTML: %v", err)
	}

	return &llmstxt.ExtractResult{
		Title:       title,
		ContentHTML: strings.TrimSpace(content),
	}, nil
}
