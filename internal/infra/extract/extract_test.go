package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePlainText(t *testing.T) {
	s := New()
	parsed, err := s.Parse(context.Background(), []byte("  This Agreement is made...  \n"), "text/plain")
	require.NoError(t, err)
	require.Equal(t, "This Agreement is made...", parsed.Content)
	require.Equal(t, 1, parsed.Pages)
}

func TestParsePlainTextWithCharsetParameter(t *testing.T) {
	s := New()
	parsed, err := s.Parse(context.Background(), []byte("hello"), "text/plain; charset=utf-8")
	require.NoError(t, err)
	require.Equal(t, "hello", parsed.Content)
}

func TestParseWhitespaceOnlyTextFails(t *testing.T) {
	s := New()
	_, err := s.Parse(context.Background(), []byte("   \n\t  "), "text/plain")
	require.ErrorIs(t, err, ErrNoExtractableText)
}

func TestParseUnsupportedType(t *testing.T) {
	s := New()
	_, err := s.Parse(context.Background(), []byte("GIF89a"), "image/gif")
	require.ErrorContains(t, err, "unsupported file type")
}

func TestParseLegacyDocRejected(t *testing.T) {
	s := New()
	_, err := s.Parse(context.Background(), []byte{0xD0, 0xCF, 0x11, 0xE0}, "application/msword")
	require.ErrorContains(t, err, "convert the document")
}

func TestParseCorruptedPDF(t *testing.T) {
	s := New()
	_, err := s.Parse(context.Background(), []byte("not a pdf at all"), "application/pdf")
	require.Error(t, err)
}

func docxBytes(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestParseDocx(t *testing.T) {
	const doc = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>RENTAL AGREEMENT</w:t></w:r></w:p>
    <w:p><w:r><w:t>Monthly rent: Rs. 25,000</w:t></w:r></w:p>
  </w:body>
</w:document>`
	s := New()
	parsed, err := s.Parse(context.Background(),
		docxBytes(t, doc),
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	require.NoError(t, err)
	require.Contains(t, parsed.Content, "RENTAL AGREEMENT")
	require.Contains(t, parsed.Content, "Monthly rent: Rs. 25,000")
	require.Equal(t, 1, parsed.Pages)
}

func TestParseDocxWithoutBody(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/other.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	s := New()
	_, err = s.Parse(context.Background(), buf.Bytes(),
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	require.ErrorContains(t, err, "no document body")
}

func TestParseDocxCorrupted(t *testing.T) {
	s := New()
	_, err := s.Parse(context.Background(), []byte("PK garbage"),
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	require.ErrorContains(t, err, "corrupted")
}
