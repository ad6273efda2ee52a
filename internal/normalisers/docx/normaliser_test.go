package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
)

// buildDocx assembles a minimal DOCX archive with the given document.xml body.
func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)

	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestFormat(t *testing.T) {
	assert.Equal(t, domain.FormatDOCX, New().Format())
}

func TestNormalise_NilDocument(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_ExtractsParagraphs(t *testing.T) {
	content := buildDocx(t, `<?xml version="1.0"?>
<document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <body>
    <p><r><t>First paragraph.</t></r></p>
    <p><r><t>Second </t></r><r><t>paragraph.</t></r></p>
  </body>
</document>`)

	text, err := New().Normalise(context.Background(), &domain.RawDocument{
		Name:    "handbook.docx",
		Format:  domain.FormatDOCX,
		Content: content,
	})
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", text)
}

func TestNormalise_NotAZip(t *testing.T) {
	_, err := New().Normalise(context.Background(), &domain.RawDocument{
		Name:    "broken.docx",
		Content: []byte("definitely not a zip"),
	})
	assert.ErrorIs(t, err, domain.ErrUnreadableFile)
}

func TestNormalise_MissingDocumentXML(t *testing.T) {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	f, err := w.Create("word/other.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = New().Normalise(context.Background(), &domain.RawDocument{
		Name:    "empty.docx",
		Content: buf.Bytes(),
	})
	assert.ErrorIs(t, err, domain.ErrUnreadableFile)
}
