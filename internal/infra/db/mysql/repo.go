package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"legalease/internal/domain/analysis"
	"legalease/internal/domain/documents"
)

// Repository implements documents.Repository and analysis.Repository over
// MySQL. Same schema as the postgres variant with json columns for the
// structured collections.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, d *documents.Document) error {
	const q = `
INSERT INTO documents (id, filename, content_type, content, pages, title, uploaded_at)
VALUES (?,?,?,?,?,?,?);
`
	_, err := r.db.ExecContext(ctx, q, d.ID, d.Filename, d.ContentType, d.Content, d.Pages, d.Title, d.UploadedAt)
	return err
}

func (r *Repository) Get(ctx context.Context, id documents.DocumentID) (*documents.Document, error) {
	const q = `
SELECT id, filename, content_type, content, pages, title, uploaded_at
FROM documents WHERE id=?;
`
	var d documents.Document
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.Filename, &d.ContentType, &d.Content, &d.Pages, &d.Title, &d.UploadedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) CreateAnalysis(ctx context.Context, a *analysis.Analysis) error {
	risks, err := json.Marshal(a.Result.Risks)
	if err != nil {
		return fmt.Errorf("marshal risks: %w", err)
	}
	terms, err := json.Marshal(a.Result.LegalTerms)
	if err != nil {
		return fmt.Errorf("marshal legal terms: %w", err)
	}
	provisions, err := json.Marshal(a.Result.KeyProvisions)
	if err != nil {
		return fmt.Errorf("marshal key provisions: %w", err)
	}
	const q = `
INSERT INTO analyses
  (id, document_id, summary, document_type, source, risks, legal_terms, key_provisions, created_at)
VALUES (?,?,?,?,?,?,?,?,?);
`
	_, err = r.db.ExecContext(ctx, q,
		a.ID, a.DocumentID, a.Result.Summary, a.Result.DocumentType, a.Result.Source,
		risks, terms, provisions, a.CreatedAt,
	)
	return err
}

func (r *Repository) GetAnalysisByDocumentID(ctx context.Context, id documents.DocumentID) (*analysis.Analysis, error) {
	const q = `
SELECT id, document_id, summary, document_type, source, risks, legal_terms, key_provisions, created_at
FROM analyses WHERE document_id=?
ORDER BY created_at ASC LIMIT 1;
`
	var a analysis.Analysis
	var risks, terms, provisions []byte
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.DocumentID, &a.Result.Summary, &a.Result.DocumentType, &a.Result.Source,
		&risks, &terms, &provisions, &a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(risks, &a.Result.Risks); err != nil {
		return nil, fmt.Errorf("unmarshal risks: %w", err)
	}
	if err := json.Unmarshal(terms, &a.Result.LegalTerms); err != nil {
		return nil, fmt.Errorf("unmarshal legal terms: %w", err)
	}
	if err := json.Unmarshal(provisions, &a.Result.KeyProvisions); err != nil {
		return nil, fmt.Errorf("unmarshal key provisions: %w", err)
	}
	return &a, nil
}

func (r *Repository) CreateQaInteraction(ctx context.Context, qa *analysis.QaInteraction) error {
	const q = `
INSERT INTO qa_interactions (id, document_id, question, answer, created_at)
VALUES (?,?,?,?,?);
`
	_, err := r.db.ExecContext(ctx, q, qa.ID, qa.DocumentID, qa.Question, qa.Answer, qa.CreatedAt)
	return err
}

func (r *Repository) QaInteractionsByDocumentID(ctx context.Context, id documents.DocumentID) ([]*analysis.QaInteraction, error) {
	const q = `
SELECT id, document_id, question, answer, created_at
FROM qa_interactions WHERE document_id=?
ORDER BY created_at ASC, id ASC;
`
	rows, err := r.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*analysis.QaInteraction
	for rows.Next() {
		var qa analysis.QaInteraction
		if err := rows.Scan(&qa.ID, &qa.DocumentID, &qa.Question, &qa.Answer, &qa.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &qa)
	}
	return out, rows.Err()
}
