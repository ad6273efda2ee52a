// Package loader discovers and reads corpus documents from the local
// filesystem.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/ports/driven"
	"github.com/numan-developer-2/RAGSystem-Company/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// formatByExtension maps lowercase file extensions to document formats.
var formatByExtension = map[string]domain.Format{
	".pdf":      domain.FormatPDF,
	".docx":     domain.FormatDOCX,
	".txt":      domain.FormatText,
	".md":       domain.FormatMarkdown,
	".markdown": domain.FormatMarkdown,
}

// Loader reads supported documents from a directory tree.
type Loader struct{}

// New creates a filesystem document loader.
func New() *Loader {
	return &Loader{}
}

// Load walks dir recursively and reads every supported file. Files that
// cannot be read are reported as failures rather than aborting the walk.
func (l *Loader) Load(ctx context.Context, dir string) ([]domain.RawDocument, []domain.FileFailure, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrNotFound, dir)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	var docs []domain.RawDocument
	var failures []domain.FileFailure

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			failures = append(failures, domain.FileFailure{Path: path, Reason: walkErr.Error()})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories like .git.
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}

		format, ok := FormatForPath(path)
		if !ok {
			logger.Debug("loader: skipping unsupported file %s", path)
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("loader: cannot read %s: %v", path, err)
			failures = append(failures, domain.FileFailure{Path: path, Reason: err.Error()})
			return nil
		}

		docs = append(docs, domain.RawDocument{
			Path:    path,
			Name:    d.Name(),
			Format:  format,
			Content: content,
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("loader: found %d documents, %d failures in %s", len(docs), len(failures), dir)
	return docs, failures, nil
}

// FormatForPath maps a file path to its document format by extension.
func FormatForPath(path string) (domain.Format, bool) {
	format, ok := formatByExtension[strings.ToLower(filepath.Ext(path))]
	return format, ok
}

// SupportedExtensions lists the extensions the loader recognises.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(formatByExtension))
	for ext := range formatByExtension {
		exts = append(exts, ext)
	}
	return exts
}
