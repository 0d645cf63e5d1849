// Package rag answers questions from the persisted knowledge base: it embeds
// the query, looks up the nearest chunks in the vector index, and hands the
// retrieved context to an LLM backend. This static-index path and the live
// source orchestrator are independent retrieval strategies; neither consults
// the other.
package rag

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/finsight-ai/finsight/internal/chat"
	"github.com/finsight-ai/finsight/internal/embedding"
	"github.com/finsight-ai/finsight/internal/llm"
	"github.com/finsight-ai/finsight/internal/store"
)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 1

// answerPreamble frames the model as a domain advisor grounded in the
// retrieved context.
const answerPreamble = "You are a helpful financial advisor providing detailed and accurate answers."

// Engine retrieves relevant chunks and generates answers. All collaborators
// are provided at construction; the persisted artifacts are re-read per
// question so a fresh ingestion run is picked up without restart.
type Engine struct {
	chunks    *store.ChunkStore
	indexPath string
	embedder  embedding.Provider
	backend   llm.Backend
	topK      int
	logger    *slog.Logger
}

// NewEngine creates a retrieval engine over the artifacts in dataDir. If topK
// is not positive, DefaultTopK is used.
func NewEngine(embedder embedding.Provider, backend llm.Backend, dataDir string, topK int, logger *slog.Logger) *Engine {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		chunks:    store.NewChunkStore(filepath.Join(dataDir, store.StoreFile)),
		indexPath: filepath.Join(dataDir, store.IndexFile),
		embedder:  embedder,
		backend:   backend,
		topK:      topK,
		logger:    logger,
	}
}

// Retrieve returns the chunks nearest to the question. Missing artifacts
// surface as wrapped store.ErrStoreNotFound / store.ErrIndexNotFound; an
// index that does not match the store surfaces as store.ErrIndexStale.
func (e *Engine) Retrieve(ctx context.Context, question string) ([]store.Chunk, error) {
	chunks, err := e.chunks.Read()
	if err != nil {
		return nil, err
	}
	index, err := store.LoadIndex(e.indexPath)
	if err != nil {
		return nil, err
	}
	if err := index.Verify(chunks); err != nil {
		return nil, err
	}

	vectors, err := e.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := index.Search(vectors[0], e.topK)
	if err != nil {
		return nil, fmt.Errorf("index search: %w", err)
	}

	retrieved := make([]store.Chunk, len(matches))
	for i, m := range matches {
		retrieved[i] = chunks[m.Position]
		e.logger.Info("retrieved chunk",
			"rank", i+1,
			"source", retrieved[i].Metadata.SourcePath,
			"distance", m.Distance,
		)
	}
	return retrieved, nil
}

// Answer retrieves context for the question and generates an answer with the
// configured backend.
func (e *Engine) Answer(ctx context.Context, question string) (string, error) {
	retrieved, err := e.Retrieve(ctx, question)
	if err != nil {
		return "", err
	}

	prompt := buildPrompt(question, retrieved)
	answer, err := e.backend.Complete(ctx, []chat.Message{chat.User(answerPreamble + prompt)})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// Respond answers the question and appends the outcome to the caller-owned
// transcript. A retrieval failure is downgraded to its message so the
// conversation can continue without grounding.
func (e *Engine) Respond(ctx context.Context, question string, messages []chat.Message) (string, []chat.Message) {
	answer, err := e.Answer(ctx, question)
	if err != nil {
		e.logger.Error("rag answer failed", "error", err)
		answer = err.Error()
	}
	return answer, append(messages, chat.User(answer))
}

// buildPrompt assembles the advisor prompt from the retrieved chunks.
func buildPrompt(question string, retrieved []store.Chunk) string {
	var context strings.Builder
	for _, chunk := range retrieved {
		fmt.Fprintf(&context, "File: %s\nContent:\n%s\n\n", chunk.Metadata.SourcePath, chunk.Text)
	}

	return fmt.Sprintf(`

Context:
%s
Question:
%s

Answer as thoroughly as possible based on the context provided.`, context.String(), question)
}
