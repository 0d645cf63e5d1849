// Package ingest turns raw documents into the persisted chunk store and
// vector index consumed at answer time. Ingestion is batch and offline: each
// run embeds every document, replaces the store wholesale, and rebuilds the
// index from scratch.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/finsight-ai/finsight/internal/embedding"
	"github.com/finsight-ai/finsight/internal/store"
)

// Document is one named unit of ingestion input.
type Document struct {
	Name    string
	Content string
}

// Result contains statistics about an ingestion run.
type Result struct {
	Accepted   int  // documents embedded and persisted
	Skipped    int  // documents dropped for missing name or content
	IndexReady bool // a fresh index was built and persisted
	Duration   time.Duration
}

// Pipeline orchestrates embedding and persistence for a batch of documents.
type Pipeline struct {
	embedder  embedding.Provider
	chunks    *store.ChunkStore
	indexPath string
	logger    *slog.Logger
}

// NewPipeline creates an ingestion pipeline. The chunk store and index land
// in dataDir under their fixed filenames.
func NewPipeline(embedder embedding.Provider, dataDir string, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		embedder:  embedder,
		chunks:    store.NewChunkStore(filepath.Join(dataDir, store.StoreFile)),
		indexPath: filepath.Join(dataDir, store.IndexFile),
		logger:    logger,
	}
}

// Ingest embeds the given documents and replaces the persisted chunk store
// and vector index. Documents missing a name or content are skipped and
// logged. A batch with zero surviving documents is a no-op: existing
// artifacts, if any, are left untouched. After a successful run the index's
// vector count equals the store's chunk count.
func (p *Pipeline) Ingest(ctx context.Context, docs []Document) (*Result, error) {
	start := time.Now()
	result := &Result{}

	var accepted []Document
	for _, doc := range docs {
		if doc.Name == "" || doc.Content == "" {
			p.logger.Warn("skipping document with missing name or content", "name", doc.Name)
			result.Skipped++
			continue
		}
		accepted = append(accepted, doc)
	}

	if len(accepted) == 0 {
		p.logger.Info("no valid documents in batch, nothing to embed")
		result.Duration = time.Since(start)
		return result, nil
	}

	texts := make([]string, len(accepted))
	for i, doc := range accepted {
		texts[i] = doc.Content
	}

	embeddings, err := p.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embeddings: %w", err)
	}
	if len(embeddings) != len(accepted) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d documents",
			len(embeddings), len(accepted))
	}

	chunks := make([]store.Chunk, len(accepted))
	for i, doc := range accepted {
		chunks[i] = store.Chunk{
			ID:        uuid.New().String(),
			Text:      doc.Content,
			Metadata:  store.ChunkMetadata{SourcePath: doc.Name},
			Embedding: embeddings[i],
		}
	}

	if err := p.chunks.Write(chunks); err != nil {
		return nil, fmt.Errorf("write chunk store: %w", err)
	}

	index, err := store.BuildIndex(embeddings)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	if err := index.Save(p.indexPath); err != nil {
		return nil, fmt.Errorf("save index: %w", err)
	}

	result.Accepted = len(accepted)
	result.IndexReady = true
	result.Duration = time.Since(start)
	p.logger.Info("ingestion complete",
		"accepted", result.Accepted,
		"skipped", result.Skipped,
		"dimension", index.Dimension(),
		"ntotal", index.Ntotal(),
		"duration", result.Duration,
	)
	return result, nil
}
