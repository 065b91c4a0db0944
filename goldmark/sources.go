// Package goldmark reads documentation source lists written as Markdown
// bullet lists, the format of the bundled defaults file.
package goldmark

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParseSourceList returns the text of every top-level list item in a
// Markdown document, in document order. Items such as
//
//	- react:https://react.dev/llms.txt
//
// come back as "react:https://react.dev/llms.txt". Headings, paragraphs and
// nested lists are ignored.
func ParseSourceList(src []byte) []string {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var items []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		list, ok := n.(*ast.List)
		if !ok {
			continue
		}
		for item := list.FirstChild(); item != nil; item = item.NextSibling() {
			if s := itemText(item, src); s != "" {
				items = append(items, s)
			}
		}
	}
	return items
}

// itemText returns the first text block of a list item, lines joined.
func itemText(item ast.Node, src []byte) string {
	block := item.FirstChild()
	if block == nil || block.Kind() == ast.KindList {
		return ""
	}

	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.Write(bytes.TrimSpace(seg.Value(src)))
	}
	return strings.TrimSpace(buf.String())
}
