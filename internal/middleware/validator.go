package middleware

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Upload input validation and sanitization utilities

// MaxQuestionLength bounds questions well under any provider prompt budget.
const MaxQuestionLength = 2000

// allowedContentTypes is the upload MIME allow-list.
var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"text/plain":      true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ValidateContentType checks the declared MIME type against the allow-list.
// Parameters like "; charset=utf-8" are ignored.
func ValidateContentType(contentType string) error {
	mime := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if !allowedContentTypes[mime] {
		return fmt.Errorf("only PDF, DOC, DOCX, and text files are allowed")
	}
	return nil
}

// ValidateQuestion rejects empty and oversized questions.
func ValidateQuestion(question string) error {
	q := strings.TrimSpace(question)
	if q == "" {
		return fmt.Errorf("question is required")
	}
	if len(q) > MaxQuestionLength {
		return fmt.Errorf("question is too long (max %d characters)", MaxQuestionLength)
	}
	return nil
}

// SanitizeFilename strips directory components and control characters from
// a client-supplied filename.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		if r >= 32 && r != 127 {
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" || out == "." || out == ".." {
		return "document"
	}
	return out
}
