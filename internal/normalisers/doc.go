// Package normalisers provides per-format text extraction and the
// registry that maps document formats to their normaliser.
package normalisers

import (
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry maps formats to normalisers.
type Registry struct {
	byFormat map[domain.Format]driven.Normaliser
}

// NewRegistry creates a registry over the given normalisers.
func NewRegistry(ns ...driven.Normaliser) *Registry {
	r := &Registry{byFormat: make(map[domain.Format]driven.Normaliser, len(ns))}
	for _, n := range ns {
		r.byFormat[n.Format()] = n
	}
	return r
}

// ForFormat returns the normaliser for the format.
func (r *Registry) ForFormat(format domain.Format) (driven.Normaliser, error) {
	n, ok := r.byFormat[format]
	if !ok {
		return nil, domain.ErrUnsupportedFormat
	}
	return n, nil
}
