package driving

import "github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"

// StatusService exposes read-only snapshot metadata.
type StatusService interface {
	// Status reports document and chunk counts, the snapshot version
	// and timestamp, and index readiness.
	Status() domain.Status
}
