// Package store persists embedded document chunks and the flat vector index
// built over them. Both artifacts are serialized blobs rewritten wholesale on
// every ingestion run; there is no per-chunk update or deletion.
package store

// Chunk is one unit of ingested text with its metadata and embedding. Chunks
// are immutable once created. Every chunk in a store carries an embedding of
// the same length (the embedding model's output dimension).
type Chunk struct {
	ID        string // UUID assigned at ingestion
	Text      string
	Metadata  ChunkMetadata
	Embedding []float32
}

// ChunkMetadata records where a chunk's text came from.
type ChunkMetadata struct {
	SourcePath string
}

const (
	// StoreFile is the chunk store blob filename inside the data directory.
	StoreFile = "chunks.gob"

	// IndexFile is the vector index blob filename inside the data directory.
	IndexFile = "index.gob"
)
