// Package snapshot bundles the lexical and vector indices with the
// chunk corpus into one immutable, versioned unit.
//
// A snapshot is never mutated after Build returns. Publication is a
// pointer swap on Holder: queries already holding the old snapshot keep
// a consistent view until they finish, and the garbage collector
// reclaims it once unreferenced.
package snapshot

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
	"github.com/numan-developer-2/RAGSystem-Company/internal/index/lexical"
	"github.com/numan-developer-2/RAGSystem-Company/internal/index/vector"
)

// Snapshot is an immutable pairing of chunk metadata, the lexical
// posting lists and the vector index, built in one pass by ingestion.
type Snapshot struct {
	// Version uniquely identifies this build.
	Version string

	// BuiltAt is the build completion time.
	BuiltAt time.Time

	// Documents and Chunks are the indexed corpus. Chunk ordinals used
	// by both indices are positions in the Chunks slice.
	Documents []domain.Document
	Chunks    []domain.Chunk

	// Dimensions is the embedding dimension discovered at build time.
	Dimensions int

	// Lexical and Vector are the two retrieval indices.
	Lexical *lexical.Index
	Vector  *vector.Index
}

// Build constructs a snapshot from documents and embedded chunks.
// Every chunk must carry an embedding of the same dimension; a mismatch
// fails the build before anything is published.
func Build(docs []domain.Document, chunks []domain.Chunk) (*Snapshot, error) {
	if len(chunks) == 0 {
		return nil, domain.ErrEmptyCorpus
	}

	dim := len(chunks[0].Embedding)
	if dim == 0 {
		return nil, fmt.Errorf("%w: chunk %s has no embedding", domain.ErrDimensionMismatch, chunks[0].ID)
	}

	vix, err := vector.New(dim)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
		if err := vix.Add(ch.Embedding); err != nil {
			return nil, fmt.Errorf("chunk %s: %w", ch.ID, err)
		}
	}

	return &Snapshot{
		Version:    uuid.New().String(),
		BuiltAt:    time.Now(),
		Documents:  docs,
		Chunks:     chunks,
		Dimensions: dim,
		Lexical:    lexical.Build(texts),
		Vector:     vix,
	}, nil
}

// ChunkAt returns the chunk at the given ordinal, or nil when out of range.
func (s *Snapshot) ChunkAt(ord int) *domain.Chunk {
	if ord < 0 || ord >= len(s.Chunks) {
		return nil
	}
	return &s.Chunks[ord]
}

// Status reports the read-only metadata surface for this snapshot.
func (s *Snapshot) Status() domain.Status {
	return domain.Status{
		Ready:               true,
		SnapshotVersion:     s.Version,
		BuiltAt:             s.BuiltAt,
		DocumentCount:       len(s.Documents),
		ChunkCount:          len(s.Chunks),
		EmbeddingDimensions: s.Dimensions,
	}
}

// Holder publishes snapshots atomically. Readers Load a consistent
// snapshot with no locking; writers Publish a fully built replacement.
type Holder struct {
	p atomic.Pointer[Snapshot]
}

// NewHolder creates an empty holder. Load returns nil until the first
// Publish.
func NewHolder() *Holder {
	return &Holder{}
}

// Load returns the current snapshot, or nil when none is published.
func (h *Holder) Load() *Snapshot {
	return h.p.Load()
}

// Publish atomically replaces the current snapshot.
func (h *Holder) Publish(s *Snapshot) {
	h.p.Store(s)
}
