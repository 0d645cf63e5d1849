package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// FetchIcon retrieves the favicon URL declared by the page at pageURL,
// resolved against the page address. It returns an empty string without error
// when the page declares no icon.
func (e *Extractor) FetchIcon(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("invalid request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: status code %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("parse: %w", err)
	}

	href := findIconHref(doc)
	if href == "" {
		return "", nil
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parse icon url: %w", err)
	}
	return base.ResolveReference(ref).String(), nil
}

// findIconHref returns the href of the first link element whose rel is
// "icon" or "shortcut icon".
func findIconHref(doc *html.Node) string {
	for _, n := range findAll(doc, func(n *html.Node) bool { return n.Data == "link" }) {
		rel := strings.ToLower(attr(n, "rel"))
		if rel == "icon" || rel == "shortcut icon" {
			if href := attr(n, "href"); href != "" {
				return href
			}
		}
	}
	return ""
}
