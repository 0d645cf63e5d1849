package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/openai/openai-go"
)

const (
	// Model is the OpenAI model used for generating embeddings. Its output
	// vectors are unit-normalized by the model's own training contract,
	// which the flat L2 index relies on for cosine-equivalent ranking.
	Model = "text-embedding-3-small"

	// Dimension is the vector size produced by Model.
	Dimension = 1536

	// DefaultBatchSize balances requests-per-minute vs tokens-per-minute
	// rate limits. OpenAI accepts up to 2048 texts per batch, but smaller
	// batches reduce TPM pressure.
	DefaultBatchSize = 500
)

// Provider is the embedding capability consumed by the ingestion pipeline and
// the retrieval engine. It is passed explicitly into every component that
// needs it; there is no package-level model instance.
type Provider interface {
	// Embed maps each text to a fixed-length dense vector. The output
	// length equals len(texts) and every vector has the same dimension.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the length of the vectors Embed produces.
	Dimension() int
}

// Embedder generates embeddings through the OpenAI API. It batches requests
// and retries with exponential backoff on rate limit errors. Safe for
// concurrent use after construction.
type Embedder struct {
	client    *Client
	batchSize int
}

var _ Provider = (*Embedder)(nil)

// NewEmbedder creates an Embedder with the given client and optional batch
// size. If batchSize is 0, DefaultBatchSize is used.
func NewEmbedder(client *Client, batchSize int) *Embedder {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Embedder{
		client:    client,
		batchSize: batchSize,
	}
}

// Dimension returns the embedding vector length.
func (e *Embedder) Dimension() int {
	return Dimension
}

// Embed generates embeddings for the given texts, batching requests and
// retrying rate-limited batches with exponential backoff.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	var all [][]float32

	for i := 0; i < len(texts); i += e.batchSize {
		end := min(i+e.batchSize, len(texts))
		batch := texts[i:end]

		embeddings, err := e.embedBatchWithRetry(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("batch %d-%d: %w", i, end, err)
		}
		all = append(all, embeddings...)
	}

	return all, nil
}

// embedBatchWithRetry generates embeddings for a single batch. Rate limit
// errors (HTTP 429) are retried with backoff; other errors are permanent.
func (e *Embedder) embedBatchWithRetry(ctx context.Context, texts []string) ([][]float32, error) {
	var embeddings [][]float32

	operation := func() error {
		resp, err := e.client.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
			Input: openai.EmbeddingNewParamsInputUnion{
				OfArrayOfStrings: texts,
			},
			Model: Model,
		})
		if err != nil {
			if isRateLimitError(err) {
				return err
			}
			return backoff.Permanent(err)
		}

		embeddings = make([][]float32, len(resp.Data))
		for i, data := range resp.Data {
			embeddings[i] = toFloat32(data.Embedding)
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	err := backoff.Retry(operation, backoff.WithContext(b, ctx))
	return embeddings, err
}

// isRateLimitError checks if the error is a rate limit error (HTTP 429).
func isRateLimitError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}

// toFloat32 converts []float64 to []float32. The API returns float64, but
// the chunk store uses float32 for memory efficiency.
func toFloat32(f64 []float64) []float32 {
	f32 := make([]float32, len(f64))
	for i, v := range f64 {
		f32[i] = float32(v)
	}
	return f32
}
