package thesis

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(ghtml.WithHardWraps(), ghtml.WithXHTML()),
	)
}

// RenderHTML converts the markdown document into a standalone HTML page.
func RenderHTML(markdown, title string) (string, error) {
	var buf bytes.Buffer
	if err := newMarkdown().Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\" />\n")
	b.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(title)))
	b.WriteString("</head>\n<body>\n")
	b.Write(buf.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

// RenderPDF lays the markdown document out on A4 pages.
// Only the block types the thesis template produces are styled.
func RenderPDF(markdown, title string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	source := []byte(markdown)
	doc := newMarkdown().Parser().Parse(text.NewReader(source))
	r := &pdfRenderer{
		pdf:    pdf,
		source: source,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
	}
	if err := ast.Walk(doc, r.walk); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfRenderer struct {
	pdf    *fpdf.Fpdf
	source []byte
	tr     func(string) string
}

// cp1252 has no ballot box
var pdfReplacer = strings.NewReplacer("□", "[ ]", "▲", "+", "▼", "-")

func (r *pdfRenderer) write(style string, size, lineHeight float64, s string) {
	r.pdf.SetFont("Helvetica", style, size)
	r.pdf.MultiCell(0, lineHeight, r.tr(pdfReplacer.Replace(s)), "", "L", false)
}

func (r *pdfRenderer) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	switch node := n.(type) {
	case *ast.Heading:
		size := 16.0
		if node.Level > 1 {
			size = 13
		}
		r.pdf.Ln(3)
		r.write("B", size, 8, plainText(node, r.source))
		return ast.WalkSkipChildren, nil
	case *ast.Blockquote:
		r.write("I", 10, 5, plainText(node, r.source))
		r.pdf.Ln(2)
		return ast.WalkSkipChildren, nil
	case *ast.ListItem:
		r.write("", 10, 5, "- "+plainText(node, r.source))
		return ast.WalkSkipChildren, nil
	case *ast.Paragraph:
		style := ""
		if isStrongOnly(node) {
			style = "B"
		}
		r.write(style, 10, 5, plainText(node, r.source))
		r.pdf.Ln(1)
		return ast.WalkSkipChildren, nil
	case *ast.ThematicBreak:
		x, y := r.pdf.GetXY()
		w, _ := r.pdf.GetPageSize()
		left, _, right, _ := r.pdf.GetMargins()
		r.pdf.Line(x, y+2, w-right, y+2)
		r.pdf.SetXY(left, y+5)
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

// isStrongOnly reports whether a paragraph is a single bold span.
func isStrongOnly(p *ast.Paragraph) bool {
	if p.ChildCount() != 1 {
		return false
	}
	em, ok := p.FirstChild().(*ast.Emphasis)
	return ok && em.Level == 2
}

// plainText flattens the inline content below n. Hard and soft line breaks
// become newlines the way they render on screen.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if _, ok := c.(*ast.Paragraph); ok && c.NextSibling() != nil {
				b.WriteString("\n")
			}
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.HardLineBreak() || t.SoftLineBreak() {
				b.WriteString("\n")
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
