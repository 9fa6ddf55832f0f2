package analysis

import (
	"context"

	"legalease/internal/domain/documents"
)

// Provider port: one external LLM service. Adapters surface every failure
// mode (network, auth, quota, malformed output) as a plain error and do not
// retry; fallback ordering lives in the orchestrator, not here.
type Provider interface {
	Name() string
	Analyze(ctx context.Context, text, filename string) (*Result, error)
	Answer(ctx context.Context, text, question, existingSummary string) (string, error)
}

// Repository port for analysis and Q&A persistence. Lookups return
// (nil, nil) for unknown keys.
type Repository interface {
	CreateAnalysis(ctx context.Context, a *Analysis) error
	GetAnalysisByDocumentID(ctx context.Context, id documents.DocumentID) (*Analysis, error)
	CreateQaInteraction(ctx context.Context, qa *QaInteraction) error
	QaInteractionsByDocumentID(ctx context.Context, id documents.DocumentID) ([]*QaInteraction, error)
}
