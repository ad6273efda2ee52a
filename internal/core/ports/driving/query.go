package driving

import (
	"context"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
)

// QueryService answers questions against the published snapshot.
type QueryService interface {
	// Ask runs the full query pipeline: retrieval, re-ranking, the
	// confidence gate and generation. An abstention is a successful
	// response with Abstained set, not an error.
	Ask(ctx context.Context, req domain.QueryRequest) (*domain.Answer, error)

	// Retrieve runs retrieval and re-ranking only, without generation.
	// Used for inspection and by tests that need no LLM.
	Retrieve(ctx context.Context, question string, opts domain.RetrievalOptions) (*domain.RetrievalResult, error)
}
