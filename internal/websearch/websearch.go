// Package websearch provides the general web search collaborator used by the
// source orchestrator's fallback phase. The engine is treated as an opaque
// dependency: callers receive an ordered list of candidate URLs and nothing
// else.
package websearch

import "context"

// Searcher returns up to limit candidate URLs for a query, in engine order.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

// DefaultResultLimit bounds the fallback search when the caller passes no
// explicit limit.
const DefaultResultLimit = 5
