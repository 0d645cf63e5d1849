package store

import "errors"

var (
	ErrStoreNotFound     = errors.New("chunk store not found")
	ErrIndexNotFound     = errors.New("vector index not found")
	ErrIndexStale        = errors.New("vector index does not match chunk store")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrNoVectors         = errors.New("no vectors to index")
)
