package domain

import "time"

// Format identifies the source file format of a document.
type Format string

// Supported document formats.
const (
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
	FormatText     Format = "txt"
	FormatMarkdown Format = "markdown"
)

// IsValid returns true if the format is recognised.
func (f Format) IsValid() bool {
	switch f {
	case FormatPDF, FormatDOCX, FormatText, FormatMarkdown:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f Format) String() string {
	return string(f)
}

// Document represents an ingested source document.
// It is immutable once ingested and replaced wholesale on re-ingestion.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Name is the stable source file name (e.g., "leave_policy.pdf").
	Name string

	// Format is the source file format.
	Format Format

	// Text is the full normalised text content before chunking.
	Text string

	// IngestedAt is when the document entered the current snapshot.
	IngestedAt time.Time
}

// Chunk represents a retrievable text window within a document.
// Every chunk's text is a contiguous substring of its parent
// document's normalised text.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// DocumentName is the parent document's name, carried for citations.
	DocumentName string

	// Seq is the ordinal position within the document, starting at 0.
	Seq int

	// StartWord and EndWord are the word offsets of this chunk's span
	// within the document's whitespace-tokenised text. EndWord is exclusive.
	StartWord int
	EndWord   int

	// Text is the chunk content.
	Text string

	// Embedding is the dense vector representation for semantic search.
	Embedding []float32
}

// RawDocument represents opaque bytes read from a source file
// before normalisation.
type RawDocument struct {
	// Path is the original file location.
	Path string

	// Name is the base file name.
	Name string

	// Format is the detected file format.
	Format Format

	// Content is the raw bytes.
	Content []byte
}
