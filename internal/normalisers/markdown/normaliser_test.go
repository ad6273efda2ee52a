package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, domain.FormatMarkdown, New().Format())
}

func TestNormalise_NilDocument(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_StripsFormatting(t *testing.T) {
	raw := &domain.RawDocument{
		Name:   "policy.md",
		Format: domain.FormatMarkdown,
		Content: []byte(`# Leave Policy

Employees receive **twenty** days of [paid leave](https://example.com/leave).

- Carry-over is limited
- Requests go through the portal

> Approved by HR

` + "```\ncode to drop\n```"),
	}

	text, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)

	assert.Contains(t, text, "Leave Policy")
	assert.Contains(t, text, "twenty days of paid leave")
	assert.Contains(t, text, "Carry-over is limited")
	assert.NotContains(t, text, "#")
	assert.NotContains(t, text, "**")
	assert.NotContains(t, text, "https://example.com")
	assert.NotContains(t, text, "code to drop")
	assert.NotContains(t, text, ">")
}

func TestNormalise_EmptyContent(t *testing.T) {
	text, err := New().Normalise(context.Background(), &domain.RawDocument{Content: nil})
	require.NoError(t, err)
	assert.Empty(t, text)
}
