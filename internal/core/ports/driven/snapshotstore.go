package driven

import (
	"context"

	"github.com/numan-developer-2/RAGSystem-Company/internal/index/snapshot"
)

// SnapshotStore persists snapshot artifacts - chunk metadata, embedding
// vectors and document records - as one versioned unit, and loads the
// latest unit at startup.
//
// The lexical and vector index structures are rebuilt from the persisted
// chunks on load; they are deterministic functions of the corpus.
type SnapshotStore interface {
	// Save persists the snapshot, replacing any previous one.
	Save(ctx context.Context, snap *snapshot.Snapshot) error

	// LoadLatest restores the most recent snapshot, or
	// domain.ErrNoSnapshot when none has been persisted.
	LoadLatest(ctx context.Context) (*snapshot.Snapshot, error)

	// Close releases resources.
	Close() error
}
