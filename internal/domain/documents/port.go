package documents

import "context"

// Repository port for document persistence. Get returns (nil, nil) for an
// unknown id; absence is not an error.
type Repository interface {
	Create(ctx context.Context, d *Document) error
	Get(ctx context.Context, id DocumentID) (*Document, error)
}

// Extractor port: produces plain text from raw file bytes plus the declared
// MIME type. Fails with a descriptive error for unsupported types and for
// corrupted, encrypted or image-only files.
type Extractor interface {
	Parse(ctx context.Context, data []byte, contentType string) (*Parsed, error)
}

// Archive port for keeping the original upload bytes around (object
// storage). Optional collaborator; a nil Archive disables archiving.
type Archive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
