package websearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	duckDuckGoEndpoint = "https://html.duckduckgo.com/html/"

	defaultTimeout = 10 * time.Second

	maxBodyBytes = 2 << 20
)

// DuckDuckGo queries the DuckDuckGo HTML endpoint, which serves plain markup
// without JavaScript and is therefore parseable with a standard HTML
// tokenizer.
type DuckDuckGo struct {
	client    *http.Client
	userAgent string
	endpoint  string
}

// NewDuckDuckGo creates a DuckDuckGo searcher. A nil client gets a default
// with a 10s timeout.
func NewDuckDuckGo(client *http.Client, userAgent string) *DuckDuckGo {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &DuckDuckGo{client: client, userAgent: userAgent, endpoint: duckDuckGoEndpoint}
}

// Search returns up to limit result URLs in engine order.
func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultResultLimit
	}

	endpoint := d.endpoint + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request: status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	return parseResults(doc, limit), nil
}

// parseResults collects result anchor hrefs in document order, unwrapping
// DuckDuckGo's redirect links, until limit is reached.
func parseResults(doc *html.Node, limit int) []string {
	var urls []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(urls) >= limit {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" && isResultAnchor(n) {
			if u := resolveResultURL(attrVal(n, "href")); u != "" {
				urls = append(urls, u)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return urls
}

func isResultAnchor(n *html.Node) bool {
	return strings.Contains(attrVal(n, "class"), "result__a")
}

// resolveResultURL unwraps the /l/?uddg= redirect wrapper when present.
func resolveResultURL(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.IsAbs() {
		return href
	}
	return ""
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
