// Package chunker splits normalised document text into overlapping
// word-bounded windows, the unit of retrieval.
package chunker

import (
	"strings"

	"github.com/google/uuid"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
)

// Chunker splits document text into fixed-size word windows.
// Windows advance by (size - overlap) words, so adjacent chunks share
// exactly overlap words. Splitting is deterministic: the same text and
// configuration always yield identical boundaries.
type Chunker struct {
	size    int
	overlap int
}

// New creates a chunker for the given configuration.
// Invalid configurations are rejected before any work begins.
func New(cfg domain.ChunkingConfig) (*Chunker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Chunker{
		size:    cfg.ChunkSizeWords,
		overlap: cfg.OverlapWords,
	}, nil
}

// Normalize collapses all whitespace runs to single spaces.
// Chunk text is always a contiguous substring of the normalised text.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Split divides the document's text into chunks.
// Documents shorter than the window produce exactly one chunk covering
// the whole document. Empty documents produce no chunks.
func (c *Chunker) Split(doc *domain.Document) []domain.Chunk {
	words := strings.Fields(doc.Text)
	if len(words) == 0 {
		return nil
	}

	step := c.size - c.overlap
	estimated := (len(words) / step) + 1
	chunks := make([]domain.Chunk, 0, estimated)

	for start := 0; ; start += step {
		end := start + c.size
		if end > len(words) {
			end = len(words)
		}

		chunks = append(chunks, domain.Chunk{
			ID:           uuid.New().String(),
			DocumentID:   doc.ID,
			DocumentName: doc.Name,
			Seq:          len(chunks),
			StartWord:    start,
			EndWord:      end,
			Text:         strings.Join(words[start:end], " "),
		})

		if end == len(words) {
			break
		}
	}

	return chunks
}
