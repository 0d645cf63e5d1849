package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// nonContentTags are removed from the tree before any text extraction.
var nonContentTags = map[string]bool{
	"script": true,
	"style":  true,
	"nav":    true,
	"footer": true,
	"aside":  true,
}

// containerTags are the elements eligible to be content containers when their
// class attribute carries a content indicator.
var containerTags = map[string]bool{
	"article": true,
	"main":    true,
	"div":     true,
	"section": true,
}

// contentIndicators mark a container class as likely holding main content.
var contentIndicators = []string{"content", "article", "main", "post", "entry"}

// pruneNonContent removes script, style, nav, footer and aside subtrees in
// place so later passes never see their text.
func pruneNonContent(n *html.Node) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if c.Type == html.ElementNode && nonContentTags[c.Data] {
			n.RemoveChild(c)
			continue
		}
		pruneNonContent(c)
	}
}

// findAll returns all element nodes under root matching pred, in document
// order. Nested matches are included.
func findAll(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			nodes = append(nodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return nodes
}

// nodeText flattens all text beneath n into a single whitespace-normalized
// string.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func isContentContainer(n *html.Node) bool {
	if !containerTags[n.Data] {
		return false
	}
	class := strings.ToLower(attr(n, "class"))
	if class == "" {
		return false
	}
	for _, indicator := range contentIndicators {
		if strings.Contains(class, indicator) {
			return true
		}
	}
	return false
}

func isHeadingOrParagraph(n *html.Node) bool {
	return n.Data == "p" || isHeadingTag(n.Data)
}

func isHeadingTag(tag string) bool {
	return len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6'
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// extractMetadata pulls the document title and the description meta tag.
func extractMetadata(doc *html.Node) Metadata {
	var meta Metadata
	for _, n := range findAll(doc, func(n *html.Node) bool { return n.Data == "title" }) {
		if t := nodeText(n); t != "" {
			meta.Title = t
			break
		}
	}
	for _, n := range findAll(doc, func(n *html.Node) bool { return n.Data == "meta" }) {
		if strings.EqualFold(attr(n, "name"), "description") {
			if desc := strings.TrimSpace(attr(n, "content")); desc != "" {
				meta.Description = desc
				break
			}
		}
	}
	return meta
}
