package documents

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	appanalysis "legalease/internal/application/analysis"
	domanalysis "legalease/internal/domain/analysis"
	domain "legalease/internal/domain/documents"
)

// ErrNotFound marks lookups against unknown document ids.
var ErrNotFound = errors.New("document not found")

// ErrEmptyQuestion rejects blank questions before any provider call.
var ErrEmptyQuestion = errors.New("question is required")

// Clock abstraction so timestamps are testable
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Service implements the document use-cases: upload-and-analyze, question
// answering, and retrieval. Safe for concurrent use; every request builds
// its own entities keyed by freshly generated ids and nothing is updated
// after creation.
type Service struct {
	Docs      domain.Repository
	Analyses  domanalysis.Repository
	Extractor domain.Extractor
	Analyzer  *appanalysis.Service
	Archive   domain.Archive // optional; nil disables raw-file archiving
	Clock     Clock
}

// UploadCommand carries one uploaded file.
type UploadCommand struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UploadResult is the upload use-case output: the stored document plus its
// freshly computed analysis.
type UploadResult struct {
	Document *domain.Document
	Analysis *domanalysis.Analysis
}

// UploadAndAnalyze extracts text, persists the document, runs the analysis
// cascade and persists the result. Extraction and input failures surface to
// the caller; once content is available the analysis step cannot fail.
func (s *Service) UploadAndAnalyze(ctx context.Context, cmd UploadCommand) (*UploadResult, error) {
	parsed, err := s.Extractor.Parse(ctx, cmd.Data, cmd.ContentType)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(parsed.Content) == "" {
		return nil, fmt.Errorf("no text content could be extracted from %s", cmd.Filename)
	}

	now := s.Clock.Now()
	doc := &domain.Document{
		ID:          domain.DocumentID(uuid.New().String()),
		Filename:    cmd.Filename,
		ContentType: cmd.ContentType,
		Content:     parsed.Content,
		Pages:       parsed.Pages,
		Title:       parsed.Title,
		UploadedAt:  now,
	}
	if err := s.Docs.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}

	if s.Archive != nil {
		key := fmt.Sprintf("documents/%s/%s", doc.ID, cmd.Filename)
		if _, aerr := s.Archive.Put(ctx, key, cmd.Data, cmd.ContentType); aerr != nil {
			// The request must not fail because archiving did.
			log.Printf("archive upload failed doc=%s err=%v", doc.ID, aerr)
		}
	}

	result, err := s.Analyzer.Analyze(ctx, parsed.Content, cmd.Filename)
	if err != nil {
		return nil, fmt.Errorf("analyze document: %w", err)
	}

	a := &domanalysis.Analysis{
		ID:         domanalysis.AnalysisID(uuid.New().String()),
		DocumentID: doc.ID,
		Result:     *result,
		CreatedAt:  now,
	}
	if err := s.Analyses.CreateAnalysis(ctx, a); err != nil {
		return nil, fmt.Errorf("store analysis: %w", err)
	}

	return &UploadResult{Document: doc, Analysis: a}, nil
}

// GetAnalysis returns the stored document and its analysis.
func (s *Service) GetAnalysis(ctx context.Context, id domain.DocumentID) (*domain.Document, *domanalysis.Analysis, error) {
	doc, err := s.Docs.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, ErrNotFound
	}
	a, err := s.Analyses.GetAnalysisByDocumentID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if a == nil {
		return nil, nil, fmt.Errorf("analysis not found for document %s", id)
	}
	return doc, a, nil
}

// AskQuestion answers a question against a stored document through the
// provider cascade and records the exchange. Questions are validated before
// any provider call; the answer path itself never fails.
func (s *Service) AskQuestion(ctx context.Context, id domain.DocumentID, question string) (*domanalysis.QaInteraction, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}
	doc, err := s.Docs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}

	existingSummary := ""
	if a, aerr := s.Analyses.GetAnalysisByDocumentID(ctx, id); aerr == nil && a != nil {
		existingSummary = a.Result.Summary
	}

	answer := s.Analyzer.Answer(ctx, doc.Content, question, existingSummary)

	qa := &domanalysis.QaInteraction{
		ID:         uuid.New().String(),
		DocumentID: doc.ID,
		Question:   question,
		Answer:     answer,
		CreatedAt:  s.Clock.Now(),
	}
	if err := s.Analyses.CreateQaInteraction(ctx, qa); err != nil {
		return nil, fmt.Errorf("store qa interaction: %w", err)
	}
	return qa, nil
}

// Questions returns the full Q&A history for a document.
func (s *Service) Questions(ctx context.Context, id domain.DocumentID) ([]*domanalysis.QaInteraction, error) {
	doc, err := s.Docs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	return s.Analyses.QaInteractionsByDocumentID(ctx, id)
}
