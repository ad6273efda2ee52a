package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidConfig indicates bad chunking or retrieval parameters.
	// Rejected before any work begins.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedFormat indicates a source file format without a normaliser.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrUnreadableFile indicates a source file that could not be read or parsed.
	ErrUnreadableFile = errors.New("unreadable file")

	// ErrEmptyCorpus indicates an ingestion run in which no document succeeded.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrDimensionMismatch indicates the embedder produced vectors whose
	// dimension differs from the one recorded in the snapshot. Fatal for
	// the affected build; never corrupts a published snapshot.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrBackendUnavailable indicates an embedding, re-ranking or generation
	// service was unreachable or timed out.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrNoSnapshot indicates no index snapshot has been built or loaded yet.
	// Queries cannot be served until an ingestion run completes.
	ErrNoSnapshot = errors.New("no index snapshot available")
)
