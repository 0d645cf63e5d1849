// Package scout discovers grounding sources for a query. It consults a
// curated URL list first and falls back to a general web search only when no
// curated source is relevant. Results are extraction outputs that have
// already passed the relevance filter.
package scout

import (
	"context"
	"log/slog"
	"sync"

	"github.com/finsight-ai/finsight/internal/extract"
	"github.com/finsight-ai/finsight/internal/relevance"
	"github.com/finsight-ai/finsight/internal/websearch"
)

// PageExtractor is the extraction capability the orchestrator depends on.
// *extract.Extractor satisfies it; tests supply doubles.
type PageExtractor interface {
	Extract(ctx context.Context, url string) extract.Result
	FetchIcon(ctx context.Context, url string) (string, error)
}

// Source is one attributed grounding source from the most recent run.
type Source struct {
	URL     string
	IconURL string // empty when the page declares no icon
}

// GatherResult carries the relevance-filtered extraction results of a single
// orchestration run together with the URLs they came from. Sources are
// returned per invocation rather than read from shared state, so concurrent
// runs cannot corrupt each other's attribution.
type GatherResult struct {
	Results []extract.Result
	Sources []string
}

// Empty reports whether the run produced no grounding at all. Callers must
// treat this as "no grounding available", not as an error.
func (g *GatherResult) Empty() bool {
	return len(g.Results) == 0
}

// Orchestrator runs the two-phase source discovery. All collaborators are
// constructor-injected.
type Orchestrator struct {
	extractor   PageExtractor
	searcher    websearch.Searcher
	prefs       *PreferredList
	searchLimit int
	logger      *slog.Logger

	mu   sync.Mutex
	last []string // sources of the most recent completed run
}

// NewOrchestrator creates an orchestrator. If searchLimit is not positive,
// websearch.DefaultResultLimit is used. A nil logger falls back to
// slog.Default().
func NewOrchestrator(
	extractor PageExtractor,
	searcher websearch.Searcher,
	prefs *PreferredList,
	searchLimit int,
	logger *slog.Logger,
) *Orchestrator {
	if searchLimit <= 0 {
		searchLimit = websearch.DefaultResultLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		extractor:   extractor,
		searcher:    searcher,
		prefs:       prefs,
		searchLimit: searchLimit,
		logger:      logger,
	}
}

// GatherContext collects relevance-filtered extraction results for the query.
// Phase one walks the curated URL list in order; phase two issues a general
// web search only when phase one yielded nothing relevant. Individual URL
// failures are logged and skipped; total failure of both phases returns an
// empty result and no error.
func (o *Orchestrator) GatherContext(ctx context.Context, query string) (*GatherResult, error) {
	o.setLast(nil)
	result := &GatherResult{}

	o.logger.Info("searching preferred urls", "query", query)
	urls, err := o.prefs.URLs()
	if err != nil {
		return nil, err
	}
	o.gatherFrom(ctx, query, urls, result)

	if result.Empty() {
		o.logger.Info("no relevant preferred url results, falling back to web search")
		searched, err := o.searcher.Search(ctx, query, o.searchLimit)
		if err != nil {
			o.logger.Error("web search failed", "query", query, "error", err)
		} else {
			o.gatherFrom(ctx, query, searched, result)
		}
	}

	o.setLast(result.Sources)
	return result, nil
}

// gatherFrom extracts each URL sequentially, keeping successful extractions
// whose content passes the relevance filter. Input order is preserved.
func (o *Orchestrator) gatherFrom(ctx context.Context, query string, urls []string, result *GatherResult) {
	for _, url := range urls {
		info := o.extractor.Extract(ctx, url)
		if !info.OK() {
			o.logger.Warn("extraction failed", "url", url, "error", info.Err)
			continue
		}
		if !relevance.Match(query, info.Content) {
			o.logger.Info("query not sufficiently found in url", "url", url, "query", query)
			continue
		}
		result.Results = append(result.Results, info)
		result.Sources = append(result.Sources, info.URL)
	}
}

// LastSources returns the sources used by the most recent completed run,
// each paired with its favicon URL for front-end display. Icon lookups that
// fail leave the icon empty.
func (o *Orchestrator) LastSources(ctx context.Context) []Source {
	o.mu.Lock()
	urls := make([]string, len(o.last))
	copy(urls, o.last)
	o.mu.Unlock()

	sources := make([]Source, 0, len(urls))
	for _, url := range urls {
		icon, err := o.extractor.FetchIcon(ctx, url)
		if err != nil {
			o.logger.Warn("favicon lookup failed", "url", url, "error", err)
		}
		sources = append(sources, Source{URL: url, IconURL: icon})
	}
	return sources
}

func (o *Orchestrator) setLast(sources []string) {
	o.mu.Lock()
	o.last = sources
	o.mu.Unlock()
}
