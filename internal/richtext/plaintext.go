// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package richtext

import (
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// htmlTagRe strips tags from raw HTML fragments while keeping their
// inner text, so "<b>hi</b>" measures as "hi", not as nothing.
var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// PlainText reduces a Markdown body to the text a reader actually sees:
// markup tokens are dropped, raw HTML is tag-stripped (inner text kept),
// and HTML entities are decoded. This is what platform length limits are
// measured against.
func PlainText(body string) string {
	src := []byte(body)
	doc := md.Parser().Parse(text.NewReader(src))

	var b strings.Builder
	plainNode(&b, doc, src)
	return html.UnescapeString(strings.TrimSpace(b.String()))
}

// Length returns the visible length of a Markdown body in UTF-16 code
// units — the indexing Telegram applies its limits in. For text inside
// the Basic Multilingual Plane this equals the rune count.
func Length(body string) int {
	return utf16Length(PlainText(body))
}

func plainNode(b *strings.Builder, node ast.Node, src []byte) {
	switch n := node.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(src))
		if n.HardLineBreak() || n.SoftLineBreak() {
			b.WriteString("\n")
		}

	case *ast.String:
		b.Write(n.Value)

	case *ast.CodeSpan:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			plainNode(b, c, src)
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(src))
		}

	case *ast.AutoLink:
		b.Write(n.Label(src))

	case *ast.Image:
		plainChildren(b, n, src)

	case *ast.RawHTML:
		b.WriteString(htmlTagRe.ReplaceAllString(segmentsText(n.Segments, src), ""))

	case *ast.HTMLBlock:
		var raw strings.Builder
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			raw.Write(seg.Value(src))
		}
		if n.HasClosure() {
			raw.Write(n.ClosureLine.Value(src))
		}
		b.WriteString(htmlTagRe.ReplaceAllString(raw.String(), ""))

	default:
		plainChildren(b, node, src)
		if isBlockSeparator(node) {
			b.WriteString("\n")
		}
	}
}

func plainChildren(b *strings.Builder, n ast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		plainNode(b, c, src)
	}
}

// isBlockSeparator reports whether the node ends a visible line.
func isBlockSeparator(n ast.Node) bool {
	switch n.(type) {
	case *ast.Paragraph, *ast.Heading, *ast.TextBlock, *ast.ListItem, *ast.Blockquote:
		return true
	}
	return false
}

// utf16Length counts UTF-16 code units: astral-plane runes (emoji, some
// CJK extensions) count as two, everything else as one.
func utf16Length(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
