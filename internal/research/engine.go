// Package research produces grounded answers from live web sources: the
// scout orchestrator gathers relevance-filtered extractions, the composer
// appends them to the transcript, and an LLM backend generates the answer.
package research

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finsight-ai/finsight/internal/chat"
	"github.com/finsight-ai/finsight/internal/compose"
	"github.com/finsight-ai/finsight/internal/llm"
	"github.com/finsight-ai/finsight/internal/scout"
)

// Engine glues source discovery, context composition and answer generation.
type Engine struct {
	orchestrator *scout.Orchestrator
	backend      llm.Backend
	logger       *slog.Logger
}

// NewEngine creates a research engine.
func NewEngine(orchestrator *scout.Orchestrator, backend llm.Backend, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		orchestrator: orchestrator,
		backend:      backend,
		logger:       logger,
	}
}

// Respond gathers grounding for the query, appends the context and the final
// query message to the transcript, and generates an answer. An empty gather
// result means no grounding was available; the answer is still generated from
// the bare query rather than failing.
func (e *Engine) Respond(ctx context.Context, query string, messages []chat.Message) (string, []scout.Source, error) {
	e.logger.Info("starting advanced response creation", "query", query)

	gathered, err := e.orchestrator.GatherContext(ctx, query)
	if err != nil {
		return "", nil, fmt.Errorf("gather context: %w", err)
	}
	if gathered.Empty() {
		e.logger.Warn("no grounding available for query", "query", query)
	}

	messages = compose.AppendContext(messages, gathered.Results, query)

	answer, err := e.backend.Complete(ctx, messages)
	if err != nil {
		return "", nil, fmt.Errorf("generate answer: %w", err)
	}

	e.logger.Info("generated answer", "sources", len(gathered.Sources))
	return answer, e.orchestrator.LastSources(ctx), nil
}
