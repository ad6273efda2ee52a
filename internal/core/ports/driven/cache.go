package driven

import (
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
)

// AnswerCache stores final answers keyed by normalised question text and
// retrieval parameters. Entries are invalidated wholesale when a new
// snapshot is published: stale answers are worse than cache misses.
type AnswerCache interface {
	// Get returns the cached answer for the key, or false.
	Get(key string) (*domain.Answer, bool)

	// Set stores an answer under the key.
	Set(key string, answer *domain.Answer)

	// InvalidateAll drops every entry.
	InvalidateAll()
}
