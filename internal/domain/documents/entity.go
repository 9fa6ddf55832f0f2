package documents

import "time"

// DocumentID identifier type
type DocumentID string

// Document is the raw uploaded file after text extraction. It is created
// once per upload and never mutated.
type Document struct {
	ID          DocumentID `json:"id"`
	Filename    string     `json:"filename"`
	ContentType string     `json:"content_type"`
	Content     string     `json:"content"`
	Pages       int        `json:"pages"`
	Title       string     `json:"title,omitempty"`
	UploadedAt  time.Time  `json:"uploaded_at"`
}

// Parsed is the output of text extraction: plain text plus the little
// metadata the binary formats carry.
type Parsed struct {
	Content string
	Pages   int
	Title   string
}
