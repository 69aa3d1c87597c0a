package render

import (
	"bytes"
	"html/template"
	"strings"

	"blogsmith/internal/article/model"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// outlineDepth is the deepest heading level listed in an article outline.
const outlineDepth = 3

// MarkdownRenderer renders article content as CommonMark. Raw HTML in the
// source is omitted, since content comes from a remote model.
type MarkdownRenderer struct {
	md goldmark.Markdown
}

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)}
}

// Heading is one outline entry of an article.
type Heading struct {
	Level int
	ID    string
	Text  string
}

type MarkdownResult struct {
	HTML     template.HTML
	Headings []Heading
}

// Render converts the article body. A leading top-level heading that repeats
// the article title is dropped, since the page already shows the title.
func (r *MarkdownRenderer) Render(a model.Article) (MarkdownResult, error) {
	src := []byte(strings.ReplaceAll(a.Content, "\r\n", "\n"))
	doc := r.md.Parser().Parse(text.NewReader(src))

	if h, ok := doc.FirstChild().(*ast.Heading); ok && h.Level == 1 &&
		strings.EqualFold(strings.TrimSpace(plainText(h, src)), a.Title) {
		doc.RemoveChild(doc, h)
	}

	var outline []Heading
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level > outlineDepth {
			continue
		}
		outline = append(outline, Heading{
			Level: h.Level,
			ID:    headingID(h),
			Text:  strings.TrimSpace(plainText(h, src)),
		})
	}

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return MarkdownResult{}, err
	}
	return MarkdownResult{HTML: template.HTML(buf.String()), Headings: outline}, nil
}

func headingID(h *ast.Heading) string {
	v, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	switch v := v.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	}
	return ""
}

// plainText joins the text of every inline descendant of n, so emphasis and
// code spans keep their words.
func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
