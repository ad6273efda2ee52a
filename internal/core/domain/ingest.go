package domain

import "time"

// FileFailure records one source file skipped during ingestion.
type FileFailure struct {
	// Path is the source file location.
	Path string

	// Reason describes why the file was skipped.
	Reason string
}

// IngestReport summarises one ingestion run.
// Partial failures do not abort the run; they are listed here.
type IngestReport struct {
	// SnapshotVersion identifies the published snapshot.
	SnapshotVersion string

	// DocumentsIndexed is the number of documents that succeeded.
	DocumentsIndexed int

	// ChunksIndexed is the total number of chunks across all documents.
	ChunksIndexed int

	// Failures lists source files that were skipped.
	Failures []FileFailure

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// Status is the read-only health/status surface over the current snapshot.
type Status struct {
	// Ready is true when a snapshot is published and queryable.
	Ready bool

	// SnapshotVersion identifies the current snapshot. Empty when not ready.
	SnapshotVersion string

	// BuiltAt is when the current snapshot was built.
	BuiltAt time.Time

	// DocumentCount and ChunkCount describe the indexed corpus.
	DocumentCount int
	ChunkCount    int

	// EmbeddingDimensions is the vector size recorded at build time.
	EmbeddingDimensions int
}
