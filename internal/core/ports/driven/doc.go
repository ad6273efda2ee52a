// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to function:
//
//   - EmbeddingService: Maps text to fixed-length dense vectors
//   - LLMService: Generation backend for answers
//   - Normaliser / NormaliserRegistry: Per-format text extraction
//   - DocumentLoader: Reads source files from a directory
//   - SnapshotStore: Persists snapshot artifacts as one versioned unit
//
// # Optional Interfaces
//
// These can be nil - the pipeline degrades gracefully:
//
//   - Reranker: Cross-encoder re-ranking. Without it (or on failure),
//     the hybrid retrieval order stands.
//   - AnswerCache: Response caching. Without it, every query runs the
//     full pipeline.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, loader, or normaliser package
package driven
