// Package extract turns uploaded file bytes into plain text. Supported
// declared MIME types: PDF, plain text and OOXML Word. Failures carry
// user-facing descriptions because extraction errors are the one class of
// error the analyze endpoint surfaces.
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"legalease/internal/domain/documents"
)

const (
	MimePDF   = "application/pdf"
	MimeText  = "text/plain"
	MimeDoc   = "application/msword"
	MimeDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrNoExtractableText indicates the file parsed fine but contained no
// text, e.g. a scanned image-only PDF.
var ErrNoExtractableText = errors.New("no readable text content found in the document")

// Service implements documents.Extractor.
type Service struct{}

func New() *Service { return &Service{} }

// Parse dispatches on the declared content type. The MIME type is taken at
// face value; format-level corruption shows up as a parse failure with a
// descriptive message.
func (s *Service) Parse(ctx context.Context, data []byte, contentType string) (*documents.Parsed, error) {
	// Strip parameters like "; charset=utf-8".
	mime := strings.TrimSpace(strings.ToLower(contentType))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}

	switch mime {
	case MimePDF:
		return parsePDF(data)
	case MimeText:
		return parseText(data)
	case MimeDocx:
		return parseDocx(data)
	case MimeDoc:
		return nil, fmt.Errorf("legacy .doc files are not supported; please convert the document to DOCX or PDF")
	default:
		return nil, fmt.Errorf("unsupported file type %q; please upload PDF, DOCX or text files", contentType)
	}
}

func parseText(data []byte) (*documents.Parsed, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("text file is not valid UTF-8")
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return nil, ErrNoExtractableText
	}
	return &documents.Parsed{Content: content, Pages: 1}, nil
}

func parsePDF(data []byte) (*documents.Parsed, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF; the file may be corrupted or password-protected: %w", err)
	}

	reader, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from PDF: %w", err)
	}
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, reader); err != nil {
		return nil, fmt.Errorf("read extracted PDF text: %w", err)
	}
	content := sanitize(buf.String())
	if content == "" {
		// Likely a scanned/image-based PDF.
		return nil, ErrNoExtractableText
	}

	title := ""
	if t := r.Trailer().Key("Info").Key("Title"); !t.IsNull() {
		title = t.Text()
	}
	return &documents.Parsed{Content: content, Pages: r.NumPage(), Title: title}, nil
}

// parseDocx reads word/document.xml out of the OOXML zip container and
// keeps character data, inserting line breaks at paragraph boundaries.
func parseDocx(data []byte) (*documents.Parsed, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read DOCX container; the file may be corrupted: %w", err)
	}
	var docXML io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return nil, fmt.Errorf("open DOCX document part: %w", err)
			}
			break
		}
	}
	if docXML == nil {
		return nil, fmt.Errorf("DOCX file has no document body; the file may be corrupted")
	}
	defer docXML.Close()

	dec := xml.NewDecoder(docXML)
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse DOCX document body: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" {
				sb.WriteByte('\n')
			}
		}
	}
	content := sanitize(sb.String())
	if content == "" {
		return nil, ErrNoExtractableText
	}
	return &documents.Parsed{Content: content, Pages: 1}, nil
}

// sanitize trims and collapses runs of blank lines left behind by layout
// markup.
func sanitize(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, ln := range lines {
		ln = strings.TrimRight(ln, " \t\r")
		if strings.TrimSpace(ln) == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, ln)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
