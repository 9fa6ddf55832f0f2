package analysis

import (
	"time"

	"legalease/internal/domain/documents"
)

// AnalysisID identifier type
type AnalysisID string

// Severity enum
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// SourceHeuristic marks a Result produced by the local rule-based tier
// rather than an external provider.
const SourceHeuristic = "heuristic"

// Risk is one flagged issue inside a Result. ID is unique within a single
// Result only. Section is empty when the source location is unknown.
type Risk struct {
	ID             string   `json:"id"`
	Severity       Severity `json:"type"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Section        string   `json:"section,omitempty"`
	Recommendation string   `json:"recommendation"`
}

// LegalTerm is a plain-language glossary entry. Term is unique within a
// single Result.
type LegalTerm struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Context    string `json:"context"`
}

// Result is the canonical analysis output. Every tier of the fallback
// cascade produces this exact shape. Immutable once constructed.
//
// Risks and LegalTerms are ordered by detection order and must be
// deterministic given identical input and provider response. KeyProvisions
// is never nil and never empty. Source records which tier produced the
// result: a provider name or SourceHeuristic.
type Result struct {
	Summary       string      `json:"summary"`
	Risks         []Risk      `json:"risks"`
	LegalTerms    []LegalTerm `json:"legalTerms"`
	DocumentType  string      `json:"documentType"`
	KeyProvisions []string    `json:"keyProvisions"`
	Source        string      `json:"source,omitempty"`
}

// Analysis is a stored Result bound to its document. Exactly one per
// document; there is no re-analysis path.
type Analysis struct {
	ID         AnalysisID           `json:"id"`
	DocumentID documents.DocumentID `json:"document_id"`
	Result     Result               `json:"result"`
	CreatedAt  time.Time            `json:"created_at"`
}

// QaInteraction is one question/answer exchange against a document.
// Interactions accumulate append-only; there is no update or delete path.
type QaInteraction struct {
	ID         string               `json:"id"`
	DocumentID documents.DocumentID `json:"document_id"`
	Question   string               `json:"question"`
	Answer     string               `json:"answer"`
	CreatedAt  time.Time            `json:"createdAt"`
}
