package docs

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// flattenMarkdown parses markdown and returns the first heading (as a display
// title, possibly empty) plus the document flattened to plain text. Block
// structure becomes newlines; inline formatting disappears with its syntax.
func flattenMarkdown(source []byte) (title, plain string) {
	md := goldmark.New()
	reader := text.NewReader(source)
	doc := md.Parser().Parse(reader)

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			line := blockText(n, source)
			if title == "" {
				title = line
			}
			sb.WriteString(line)
			sb.WriteString("\n")
			return ast.WalkSkipChildren, nil
		case ast.KindParagraph, ast.KindTextBlock:
			sb.WriteString(blockText(n, source))
			sb.WriteString("\n")
			return ast.WalkSkipChildren, nil
		case ast.KindCodeBlock, ast.KindFencedCodeBlock:
			sb.WriteString(linesText(n, source))
			sb.WriteString("\n")
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return title, strings.TrimSpace(sb.String())
}

// blockText collects the text content of a block node's inline children.
func blockText(n ast.Node, source []byte) string {
	var sb strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		if t, ok := n.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteString(" ")
			}
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

// linesText reconstructs a code block's raw lines.
func linesText(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return strings.TrimRight(sb.String(), "\n")
}
