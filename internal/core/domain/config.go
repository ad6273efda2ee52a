package domain

import "fmt"

// Default chunking parameters, tuned for policy-style documents.
const (
	DefaultChunkSizeWords = 200
	DefaultOverlapWords   = 40
)

// Default retrieval parameters.
const (
	// DefaultTopK is the number of chunks forwarded to generation.
	DefaultTopK = 5

	// DefaultAlpha is the fusion weight for the vector signal.
	// 1-alpha weights the lexical signal. Leans semantic.
	DefaultAlpha = 0.6

	// MaxRerankCandidates bounds the re-ranking pass so its cost stays
	// proportional to top_k, not corpus size.
	MaxRerankCandidates = 20

	// DefaultMinConfidence is the gate threshold: a best post-rerank score
	// strictly below this abstains.
	DefaultMinConfidence = 0.20

	// DefaultAmbiguityGap is the minimum lead the best candidate must hold
	// over the runner-up when the best score is itself marginal.
	DefaultAmbiguityGap = 0.05

	// DefaultMaxTurns bounds the conversation context ring.
	DefaultMaxTurns = 10
)

// ChunkingConfig controls how document text is split into chunks.
type ChunkingConfig struct {
	// ChunkSizeWords is the window length in words.
	ChunkSizeWords int

	// OverlapWords is the number of words shared between adjacent windows.
	OverlapWords int
}

// DefaultChunkingConfig returns the standard chunking parameters.
func DefaultChunkingConfig() ChunkingConfig {
	return ChunkingConfig{
		ChunkSizeWords: DefaultChunkSizeWords,
		OverlapWords:   DefaultOverlapWords,
	}
}

// Validate rejects parameter combinations that cannot produce a valid
// chunking. The step (size - overlap) must be positive or the chunker
// would never advance.
func (c ChunkingConfig) Validate() error {
	if c.ChunkSizeWords <= 0 {
		return fmt.Errorf("%w: chunk size must be > 0, got %d", ErrInvalidConfig, c.ChunkSizeWords)
	}
	if c.OverlapWords < 0 {
		return fmt.Errorf("%w: overlap must be >= 0, got %d", ErrInvalidConfig, c.OverlapWords)
	}
	if c.OverlapWords >= c.ChunkSizeWords {
		return fmt.Errorf("%w: overlap (%d) must be smaller than chunk size (%d)",
			ErrInvalidConfig, c.OverlapWords, c.ChunkSizeWords)
	}
	return nil
}

// RetrievalOptions configures a single retrieval pass.
type RetrievalOptions struct {
	// TopK is the number of chunks to return.
	TopK int

	// Alpha weights the vector signal in score fusion; 1-Alpha weights
	// the lexical signal. Must be in [0, 1]. Zero is a valid setting
	// meaning pure lexical ranking, not a request for the default.
	Alpha float64

	// Rerank enables the cross-encoder re-ranking pass.
	Rerank bool
}

// DefaultRetrievalOptions returns the standard retrieval parameters.
func DefaultRetrievalOptions() RetrievalOptions {
	return RetrievalOptions{
		TopK:   DefaultTopK,
		Alpha:  DefaultAlpha,
		Rerank: true,
	}
}

// Validate rejects out-of-range retrieval parameters.
func (o RetrievalOptions) Validate() error {
	if o.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be > 0, got %d", ErrInvalidConfig, o.TopK)
	}
	if o.Alpha < 0 || o.Alpha > 1 {
		return fmt.Errorf("%w: alpha must be in [0,1], got %g", ErrInvalidConfig, o.Alpha)
	}
	return nil
}
