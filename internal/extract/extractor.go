// Package extract fetches web pages and reduces their HTML to clean text plus
// metadata. Extraction applies a ladder of heuristics: class-marked content
// containers first, then all headings and paragraphs, then the full flattened
// page text, so a non-empty page never yields empty content.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	// DefaultTimeout bounds a single fetch, including the response body read.
	DefaultTimeout = 10 * time.Second

	// DefaultRateLimit is the fixed pre-fetch delay applied before every
	// request. A primitive throttle, not a token bucket.
	DefaultRateLimit = 1 * time.Second

	// DefaultUserAgent mimics a desktop browser; several news sites refuse
	// requests with an obvious bot agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 4 << 20

	// minContentLength is the threshold below which the heading/paragraph
	// passes are considered to have failed and the full-page fallback runs.
	minContentLength = 200

	// minParagraphLength filters boilerplate paragraphs in the second pass.
	minParagraphLength = 50
)

// Extractor fetches URLs and extracts their main content. The zero value is
// not usable; construct with New.
type Extractor struct {
	client    *http.Client
	rateLimit time.Duration
	userAgent string
	logger    *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) { e.client.Timeout = d }
}

// WithRateLimit sets the fixed delay applied before every fetch.
func WithRateLimit(d time.Duration) Option {
	return func(e *Extractor) { e.rateLimit = d }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(e *Extractor) { e.userAgent = ua }
}

// WithLogger sets the logger used for per-URL fetch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) { e.logger = logger }
}

// New creates an Extractor with default timeout, rate limit and user agent.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		client:    &http.Client{Timeout: DefaultTimeout},
		rateLimit: DefaultRateLimit,
		userAgent: DefaultUserAgent,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract fetches one URL and returns the extracted content and metadata.
// Network failures, timeouts and non-2xx statuses are downgraded to an
// error-status Result; Extract never returns an error to the caller.
func (e *Extractor) Extract(ctx context.Context, url string) Result {
	if e.rateLimit > 0 {
		select {
		case <-time.After(e.rateLimit):
		case <-ctx.Done():
			return errorResult(url, ctx.Err().Error())
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errorResult(url, fmt.Sprintf("invalid request: %v", err))
	}
	req.Header.Set("User-Agent", e.userAgent)

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			e.logger.Error("request timed out", "url", url, "timeout", e.client.Timeout)
			return errorResult(url, fmt.Sprintf("timeout after %s", e.client.Timeout))
		}
		e.logger.Error("request failed", "url", url, "error", err)
		return errorResult(url, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e.logger.Error("failed to retrieve page", "url", url, "status", resp.StatusCode)
		return errorResult(url, fmt.Sprintf("status code %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return errorResult(url, fmt.Sprintf("read body: %v", err))
	}
	e.logger.Info("successful response", "url", url, "elapsed", time.Since(start))

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		// html.Parse is lenient; a failure here is treated as a generic
		// extraction failure rather than a distinct error class.
		return errorResult(url, fmt.Sprintf("parse: %v", err))
	}

	return e.fromDocument(url, doc)
}

// fromDocument runs the extraction ladder over a parsed document.
func (e *Extractor) fromDocument(url string, doc *html.Node) Result {
	meta := extractMetadata(doc)
	pruneNonContent(doc)

	var sb strings.Builder

	// Pass 1: class-marked content containers.
	for _, container := range findAll(doc, isContentContainer) {
		appendHeadingsAndParagraphs(&sb, container, false)
	}

	// Pass 2: all headings and paragraphs, short paragraphs discarded.
	if sb.Len() == 0 {
		appendHeadingsAndParagraphs(&sb, doc, true)
	}

	// Final fallback: the whole page, flattened and whitespace-normalized.
	content := sb.String()
	if len(content) < minContentLength {
		if full := nodeText(doc); full != "" {
			content = full
		}
	}

	return Result{
		URL:      url,
		Status:   StatusSuccess,
		Metadata: meta,
		Content:  CollapseRepeatedSentences(content),
	}
}

// appendHeadingsAndParagraphs collects heading and paragraph text beneath
// root. Headings get a trailing newline, paragraphs a trailing space. When
// filterShort is set, paragraphs at or under minParagraphLength are dropped.
func appendHeadingsAndParagraphs(sb *strings.Builder, root *html.Node, filterShort bool) {
	for _, n := range findAll(root, isHeadingOrParagraph) {
		text := nodeText(n)
		if text == "" {
			continue
		}
		if isHeadingTag(n.Data) {
			sb.WriteString(text)
			sb.WriteString("\n")
			continue
		}
		if filterShort && len(text) <= minParagraphLength {
			continue
		}
		sb.WriteString(text)
		sb.WriteString(" ")
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
