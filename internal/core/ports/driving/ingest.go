package driving

import (
	"context"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
)

// IngestService builds and publishes index snapshots from a directory
// of source files.
type IngestService interface {
	// Ingest processes every supported file under dir with the given
	// chunking configuration, builds a new snapshot and publishes it
	// atomically. Individual unreadable files are skipped and reported;
	// the run fails only when no document succeeds.
	Ingest(ctx context.Context, dir string, cfg domain.ChunkingConfig) (*domain.IngestReport, error)
}
