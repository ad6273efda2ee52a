package driven

import (
	"context"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
)

// Normaliser extracts plain text from one source file format.
type Normaliser interface {
	// Format returns the file format this normaliser handles.
	Format() domain.Format

	// Normalise extracts the text content of a raw source file.
	// Files that cannot be parsed return domain.ErrUnreadableFile.
	Normalise(ctx context.Context, raw *domain.RawDocument) (string, error)
}

// NormaliserRegistry selects the normaliser for a format.
type NormaliserRegistry interface {
	// ForFormat returns the normaliser for the given format, or
	// domain.ErrUnsupportedFormat when none is registered.
	ForFormat(format domain.Format) (Normaliser, error)
}
