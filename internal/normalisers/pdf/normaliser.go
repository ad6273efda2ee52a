// Package pdf normalises PDF documents by shelling out to pdftotext
// (poppler-utils). The command is injected so tests run without the
// binary installed.
package pdf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Normaliser handles PDF documents via pdftotext.
type Normaliser struct {
	runner CommandRunner
}

// Option configures the normaliser.
type Option func(*Normaliser)

// WithRunner overrides the command runner. Used in tests.
func WithRunner(r CommandRunner) Option {
	return func(n *Normaliser) {
		n.runner = r
	}
}

// New creates a new PDF normaliser.
func New(opts ...Option) *Normaliser {
	n := &Normaliser{runner: execRunner{}}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Format returns the file format this normaliser handles.
func (n *Normaliser) Format() domain.Format {
	return domain.FormatPDF
}

// Normalise extracts text with `pdftotext <file> -`. The raw bytes are
// written to a temporary file because pdftotext needs a seekable input.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	tmp, err := os.CreateTemp("", "ragsystem-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(raw.Content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	out, err := n.runner.Run(ctx, "pdftotext", "-layout", filepath.Clean(tmpPath), "-")
	if err != nil {
		return "", fmt.Errorf("%w: pdftotext failed: %v", domain.ErrUnreadableFile, err)
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", fmt.Errorf("%w: no extractable text", domain.ErrUnreadableFile)
	}
	return text, nil
}
