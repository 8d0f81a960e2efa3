// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package richtext

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// md is the configured goldmark instance, reused across calls. Only the
// parser is used; rendering is done by the typed walk below because the
// target is Telegram's restricted HTML dialect, not browser HTML.
var md = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough),
)

// spoilerRe matches ||spoiler|| markers inside already-escaped plain
// text. Non-greedy so adjacent spoilers do not merge.
var spoilerRe = regexp.MustCompile(`\|\|(.+?)\|\|`)

// allowedTagRe matches the raw HTML tags passed through unescaped.
// Everything else a user types as HTML is escaped into visible text.
var allowedTagRe = regexp.MustCompile(`^</?(?:u|s|b|i|strong|em|tg-spoiler)>$`)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// ToTelegramHTML converts Markdown to the HTML dialect Telegram's Bot API
// accepts: no block wrappers, a short tag set, and everything else
// escaped. GFM strikethrough is supported; ||spoiler|| markers are
// recognized in plain text and become <tg-spoiler> elements.
func ToTelegramHTML(markdown string) string {
	src := []byte(markdown)
	doc := md.Parser().Parse(text.NewReader(src))

	r := &telegramRenderer{src: src}
	r.renderChildren(&r.b, doc)
	return strings.TrimRight(r.b.String(), "\n")
}

type telegramRenderer struct {
	src []byte
	b   strings.Builder
}

func (r *telegramRenderer) renderChildren(b *strings.Builder, n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderNode(b, c)
	}
}

// renderNode dispatches on the concrete node type. Unhandled block kinds
// fall through to rendering their children as text, so no user content
// is ever dropped silently.
func (r *telegramRenderer) renderNode(b *strings.Builder, node ast.Node) {
	switch n := node.(type) {
	case *ast.Paragraph:
		r.renderChildren(b, n)
		b.WriteString("\n")

	case *ast.TextBlock:
		r.renderChildren(b, n)
		b.WriteString("\n")

	case *ast.Heading:
		b.WriteString("<b>")
		r.renderChildren(b, n)
		b.WriteString("</b>\n")

	case *ast.Blockquote:
		b.WriteString("<blockquote>")
		b.WriteString(strings.TrimRight(r.capture(n), "\n"))
		b.WriteString("</blockquote>\n")

	case *ast.List:
		ordinal := n.Start
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if n.IsOrdered() {
				fmt.Fprintf(b, "%d. ", ordinal)
				ordinal++
			} else {
				b.WriteString("- ")
			}
			b.WriteString(strings.TrimRight(r.capture(c), "\n"))
			b.WriteString("\n")
		}

	case *ast.FencedCodeBlock:
		lang := string(n.Language(r.src))
		if lang != "" {
			b.WriteString(`<pre><code class="language-` + attrEscaper.Replace(lang) + `">`)
		} else {
			b.WriteString("<pre><code>")
		}
		b.WriteString(htmlEscaper.Replace(r.linesText(n)))
		b.WriteString("</code></pre>\n")

	case *ast.CodeBlock:
		b.WriteString("<pre><code>")
		b.WriteString(htmlEscaper.Replace(r.linesText(n)))
		b.WriteString("</code></pre>\n")

	case *ast.CodeSpan:
		b.WriteString("<code>")
		b.WriteString(htmlEscaper.Replace(r.inlineText(n)))
		b.WriteString("</code>")

	case *ast.Emphasis:
		tag := "i"
		if n.Level == 2 {
			tag = "b"
		}
		b.WriteString("<" + tag + ">")
		r.renderChildren(b, n)
		b.WriteString("</" + tag + ">")

	case *east.Strikethrough:
		b.WriteString("<s>")
		r.renderChildren(b, n)
		b.WriteString("</s>")

	case *ast.Link:
		b.WriteString(`<a href="` + attrEscaper.Replace(string(n.Destination)) + `">`)
		r.renderChildren(b, n)
		b.WriteString("</a>")

	case *ast.AutoLink:
		url := string(n.URL(r.src))
		b.WriteString(`<a href="` + attrEscaper.Replace(url) + `">`)
		b.WriteString(htmlEscaper.Replace(string(n.Label(r.src))))
		b.WriteString("</a>")

	case *ast.Image:
		// Telegram bodies cannot embed images; keep the alt text.
		r.renderChildren(b, n)

	case *ast.RawHTML:
		raw := segmentsText(n.Segments, r.src)
		if allowedTagRe.MatchString(raw) {
			b.WriteString(raw)
		} else {
			b.WriteString(htmlEscaper.Replace(raw))
		}

	case *ast.HTMLBlock:
		raw := strings.TrimRight(r.linesText(n), "\n")
		if n.HasClosure() {
			raw += string(n.ClosureLine.Value(r.src))
			raw = strings.TrimRight(raw, "\n")
		}
		if allowedTagRe.MatchString(strings.TrimSpace(raw)) {
			b.WriteString(raw)
		} else {
			b.WriteString(htmlEscaper.Replace(raw))
		}
		b.WriteString("\n")

	case *ast.ThematicBreak:
		b.WriteString("\n")

	case *ast.Text:
		b.WriteString(spoilerize(htmlEscaper.Replace(string(n.Segment.Value(r.src)))))
		if n.HardLineBreak() || n.SoftLineBreak() {
			b.WriteString("\n")
		}

	case *ast.String:
		b.WriteString(spoilerize(htmlEscaper.Replace(string(n.Value))))

	default:
		r.renderChildren(b, node)
	}
}

// capture renders a node's children into a fresh buffer. Used where the
// surrounding markup needs the inner text without its trailing newline.
func (r *telegramRenderer) capture(n ast.Node) string {
	var b strings.Builder
	r.renderChildren(&b, n)
	return b.String()
}

// inlineText collects the literal text of an inline container (code span).
func (r *telegramRenderer) inlineText(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(r.src))
		case *ast.String:
			b.Write(t.Value)
		}
	}
	return b.String()
}

// linesText collects the raw source lines of a block node.
func (r *telegramRenderer) linesText(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(r.src))
	}
	return b.String()
}

func segmentsText(segments *text.Segments, src []byte) string {
	var b strings.Builder
	for i := 0; i < segments.Len(); i++ {
		seg := segments.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}

// spoilerize rewrites ||...|| markers in escaped plain text as
// tg-spoiler elements. It runs only on text that has already been
// HTML-escaped, never inside code, so the markers cannot be forged by
// raw HTML.
func spoilerize(escaped string) string {
	if !strings.Contains(escaped, "||") {
		return escaped
	}
	return spoilerRe.ReplaceAllString(escaped, "<tg-spoiler>$1</tg-spoiler>")
}
