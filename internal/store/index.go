package store

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
)

// FlatIndex is a brute-force nearest-neighbor index over fixed-dimension
// vectors using squared Euclidean distance. Ranking by squared L2 is
// equivalent to ranking by cosine similarity when the vectors are
// unit-normalized; that normalization is the embedding model's contract, not
// something the index enforces.
//
// The index is rebuilt from scratch on every ingestion run and carries a
// checksum of the embedding set it was built from, so a stale index can be
// detected against the chunk store it claims to cover.
type FlatIndex struct {
	dim      int
	vectors  [][]float32
	checksum [sha256.Size]byte
}

// Match is one nearest-neighbor hit. Position indexes into the chunk store
// the index was built from.
type Match struct {
	Position int
	Distance float32
}

// BuildIndex constructs a flat index over the given vectors. The dimension is
// inferred from the first vector; every vector must share it. An empty input
// yields ErrNoVectors.
func BuildIndex(vectors [][]float32) (*FlatIndex, error) {
	if len(vectors) == 0 {
		return nil, ErrNoVectors
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: zero-length embedding", ErrDimensionMismatch)
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has length %d, want %d",
				ErrDimensionMismatch, i, len(v), dim)
		}
	}
	return &FlatIndex{
		dim:      dim,
		vectors:  vectors,
		checksum: vectorChecksum(vectors),
	}, nil
}

// Ntotal returns the number of indexed vectors.
func (ix *FlatIndex) Ntotal() int {
	return len(ix.vectors)
}

// Dimension returns the vector dimension the index was built with.
func (ix *FlatIndex) Dimension() int {
	return ix.dim
}

// Search returns the k nearest vectors to query by squared L2 distance,
// closest first. Ties preserve insertion order.
func (ix *FlatIndex) Search(query []float32, k int) ([]Match, error) {
	if len(query) != ix.dim {
		return nil, fmt.Errorf("%w: query has length %d, want %d",
			ErrDimensionMismatch, len(query), ix.dim)
	}
	if k <= 0 {
		k = 1
	}
	if k > len(ix.vectors) {
		k = len(ix.vectors)
	}

	matches := make([]Match, len(ix.vectors))
	for i, v := range ix.vectors {
		matches[i] = Match{Position: i, Distance: squaredL2(query, v)}
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Distance < matches[b].Distance
	})
	return matches[:k], nil
}

// Verify checks the index against the chunk store contents it should have
// been built from and returns ErrIndexStale on any mismatch.
func (ix *FlatIndex) Verify(chunks []Chunk) error {
	if len(chunks) != len(ix.vectors) {
		return fmt.Errorf("%w: index holds %d vectors, store holds %d chunks",
			ErrIndexStale, len(ix.vectors), len(chunks))
	}
	vectors := make([][]float32, len(chunks))
	for i := range chunks {
		vectors[i] = chunks[i].Embedding
	}
	if vectorChecksum(vectors) != ix.checksum {
		return fmt.Errorf("%w: embedding checksum differs", ErrIndexStale)
	}
	return nil
}

// persistedIndex is the gob wire form of FlatIndex.
type persistedIndex struct {
	Dim      int
	Vectors  [][]float32
	Checksum [sha256.Size]byte
}

// Save writes the index to path via a temp file and rename, mirroring the
// chunk store's atomic replacement.
func (ix *FlatIndex) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".index-*")
	if err != nil {
		return fmt.Errorf("create temp index: %w", err)
	}
	defer os.Remove(tmp.Name())

	p := persistedIndex{Dim: ix.dim, Vectors: ix.vectors, Checksum: ix.checksum}
	if err := gob.NewEncoder(tmp).Encode(p); err != nil {
		tmp.Close()
		return fmt.Errorf("encode index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp index: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace index: %w", err)
	}
	return nil
}

// LoadIndex reads an index blob from path. A missing file yields
// ErrIndexNotFound.
func LoadIndex(path string) (*FlatIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, path)
		}
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer f.Close()

	var p persistedIndex
	if err := gob.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	return &FlatIndex{dim: p.Dim, vectors: p.Vectors, checksum: p.Checksum}, nil
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// vectorChecksum hashes the embedding set in order so the index can later be
// verified against the chunk store it was built from.
func vectorChecksum(vectors [][]float32) [sha256.Size]byte {
	h := sha256.New()
	var buf [4]byte
	for _, v := range vectors {
		binary.LittleEndian.PutUint32(buf[:], uint32(len(v)))
		h.Write(buf[:])
		for _, f := range v {
			binary.LittleEndian.PutUint32(buf[:], math.Float32bits(f))
			h.Write(buf[:])
		}
	}
	var sum [sha256.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
