package driven

import (
	"context"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
)

// DocumentLoader reads source files from an ingestion directory.
type DocumentLoader interface {
	// Load returns the raw documents found under dir, plus per-file
	// failures for entries that could not be read. Files with
	// unsupported extensions are silently skipped. A bad file never
	// aborts the batch.
	Load(ctx context.Context, dir string) ([]domain.RawDocument, []domain.FileFailure, error)
}
