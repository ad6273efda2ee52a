// Package vector provides exact nearest-neighbour search over chunk
// embeddings using cosine similarity.
//
// The corpus here is hundreds of chunks, so brute-force search is
// effectively free and gives exact recall; an approximate structure
// would only add tuning surface.
package vector

import (
	"fmt"
	"math"
	"sort"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
)

// Hit is a similarity search result. Ord is the chunk's insertion
// ordinal within the snapshot.
type Hit struct {
	Ord        int
	Similarity float64
}

// Index stores L2-normalised chunk embeddings in insertion order.
// Built once per snapshot; reads are lock-free.
type Index struct {
	dim     int
	vectors [][]float32
}

// New creates an index for vectors of the given dimension.
// The dimension is discovered once at build time and fixed thereafter.
func New(dim int) (*Index, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: dimension must be > 0, got %d", domain.ErrInvalidConfig, dim)
	}
	return &Index{dim: dim}, nil
}

// Add inserts a vector. A vector of a different dimension fails fast
// rather than corrupting the index.
func (ix *Index) Add(vec []float32) error {
	if len(vec) != ix.dim {
		return fmt.Errorf("%w: index dimension %d, vector dimension %d",
			domain.ErrDimensionMismatch, ix.dim, len(vec))
	}
	ix.vectors = append(ix.vectors, normalize(vec))
	return nil
}

// Search returns the k most similar chunks, ordered by decreasing
// cosine similarity. Ties break by insertion order. Returns all chunks
// when the corpus holds fewer than k.
func (ix *Index) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != ix.dim {
		return nil, fmt.Errorf("%w: index dimension %d, query dimension %d",
			domain.ErrDimensionMismatch, ix.dim, len(query))
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be > 0, got %d", domain.ErrInvalidConfig, k)
	}

	q := normalize(query)
	hits := make([]Hit, len(ix.vectors))
	for ord, v := range ix.vectors {
		hits[ord] = Hit{Ord: ord, Similarity: dot(q, v)}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].Ord < hits[j].Ord
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Len returns the number of indexed vectors.
func (ix *Index) Len() int {
	return len(ix.vectors)
}

// Dimensions returns the fixed vector dimension.
func (ix *Index) Dimensions() int {
	return ix.dim
}

// normalize returns a unit-length copy of the vector. Zero vectors are
// returned as-is; their similarity to everything is zero.
func normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(vec))
	if norm == 0 {
		return out
	}
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}

// dot computes the inner product of two equal-length vectors.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
