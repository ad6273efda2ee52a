package driven

import "context"

// Reranker scores (query, passage) pairs jointly. Unlike the embedder,
// which encodes query and passage independently, a cross-encoder sees
// both at once: strictly more expensive (cost scales with candidate
// count) and strictly more accurate for final ordering.
//
// This is an optional service. When nil or failing, the hybrid
// retrieval order stands - degraded but functional, never fatal.
type Reranker interface {
	// Score returns one relevance score per passage, positionally
	// aligned with the input. Higher is more relevant.
	Score(ctx context.Context, query string, passages []string) ([]float64, error)

	// ModelName returns the name of the re-ranking model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
