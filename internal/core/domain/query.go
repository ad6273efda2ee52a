package domain

// Turn is one prior (question, answer) exchange in a conversation.
type Turn struct {
	Question string
	Answer   string
}

// QueryRequest is the inbound query-time contract.
type QueryRequest struct {
	// Question is the user's question. Must be non-empty.
	Question string

	// Options are the retrieval parameters for this request. A zero
	// TopK falls back to the configured default; Alpha and Rerank are
	// taken as given (zero alpha is pure lexical weighting). Start from
	// DefaultRetrievalOptions for the standard parameters.
	Options RetrievalOptions

	// ModelParams is an opaque pass-through to the generation backend.
	ModelParams map[string]any

	// Context holds prior conversation turns, oldest first.
	Context []Turn
}

// RetrievedChunk pairs a chunk with its relevance scores for one query.
// Score is normalised to [0,1] and comparable across chunks within the
// same query, not across queries.
type RetrievedChunk struct {
	Chunk *Chunk

	// Score is the final relevance used for ordering: the fused score,
	// replaced by the re-ranker score when re-ranking ran.
	Score float64

	// LexicalScore and VectorScore are the per-signal normalised scores
	// before fusion, kept for explanation output.
	LexicalScore float64
	VectorScore  float64

	// Reranked is true when Score came from the re-ranking pass.
	Reranked bool
}

// RetrievalResult is the ordered outcome of one retrieval pass,
// best match first.
type RetrievalResult struct {
	Chunks []RetrievedChunk

	// Confidence is the absolute evidence strength the gate decides on:
	// the best re-rank score when re-ranking ran, otherwise the top
	// candidate's raw cosine similarity, clamped to [0,1]. A top
	// candidate found only by the lexical signal falls back to the best
	// similarity the query reached in the corpus. Fused scores are
	// relative (min-max puts the best at 1), so they cannot gate.
	Confidence float64
}
