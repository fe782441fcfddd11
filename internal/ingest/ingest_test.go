package ingest

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func buildDOCX(t *testing.T, bodyXML string) []byte {
	t.Helper()
	var b bytes.Buffer
	zw := zip.NewWriter(&b)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` + bodyXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return b.Bytes()
}

func TestFile_PlainTextKeepsParagraphs(t *testing.T) {
	path := writeFile(t, "essay.txt", []byte("First line.\r\nStill first.  \r\n\r\n\r\n\r\nSecond paragraph.\n"))

	doc, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, "essay", doc.Title)
	assert.Equal(t, "txt", doc.Format)
	assert.Equal(t, "First line.\nStill first.\n\nSecond paragraph.", doc.Text)
}

func TestFile_Markdown(t *testing.T) {
	path := writeFile(t, "notes.MD", []byte("\n\n# Heading\n\nBody text.\n"))

	doc, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, "md", doc.Format)
	assert.Equal(t, "# Heading\n\nBody text.", doc.Text)
}

func TestFile_DOCX(t *testing.T) {
	raw := buildDOCX(t, `<w:document><w:body>`+
		`<w:p><w:r><w:t>Chapter 1</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>Hello </w:t></w:r><w:r><w:t>world.</w:t></w:r></w:p>`+
		`</w:body></w:document>`)
	path := writeFile(t, "report.docx", raw)

	doc, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, "docx", doc.Format)
	assert.Equal(t, "Chapter 1\n\nHello world.", doc.Text)
}

func TestParseDOCX_MissingDocument(t *testing.T) {
	var b bytes.Buffer
	zw := zip.NewWriter(&b)
	_, err := zw.Create("other.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = parseDOCX(b.Bytes())
	assert.Error(t, err)
}

func TestFile_Unsupported(t *testing.T) {
	path := writeFile(t, "image.png", []byte("not text"))
	_, err := File(path)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestFile_Missing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "gone.txt"))
	assert.Error(t, err)
}

func TestFile_InvalidPDF(t *testing.T) {
	path := writeFile(t, "broken.pdf", []byte("this is not a pdf"))
	_, err := File(path)
	assert.Error(t, err)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a.DOCX"))
	assert.True(t, Supported("/tmp/x.md"))
	assert.False(t, Supported("x.rtf"))
	assert.False(t, Supported("noext"))
}
