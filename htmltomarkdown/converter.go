// Package htmltomarkdown implements llmstxt.Converter for --markdown mode.
// Sources that answer with an HTML page instead of a plain llms.txt are
// rendered to Markdown so the fetch tool still returns readable text.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/llmstxt"
)

// Ensure Converter implements llmstxt.Converter at compile time.
var _ llmstxt.Converter = (*Converter)(nil)

// Converter renders the main content of documentation pages, typically the
// output of goquery.Extractor. Tables are kept because API references rely
// on them.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert returns trimmed Markdown for html. A page whose extracted content
// is blank fails with EINVALID, which fails the fetch of that location.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", llmstxt.Errorf(llmstxt.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", llmstxt.WrapError(err, llmstxt.EINVALID, "failed to convert HTML to markdown: %v", err)
	}
	return strings.TrimSpace(md), nil
}
