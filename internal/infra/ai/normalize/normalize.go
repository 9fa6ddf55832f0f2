// Package normalize converts opaque free-text provider output into the
// canonical structured Result. Everything here is deterministic,
// case-insensitive substring matching; rules are independent
// (keyword set -> contribution) pairs that only interact through ordering.
package normalize

import (
	"strconv"
	"strings"

	"legalease/internal/domain/analysis"
)

// Summary truncation bounds. Responses longer than summaryTrigger are cut
// at summaryLimit with an ellipsis marker.
const (
	summaryLimit   = 1800
	summaryTrigger = 2000
)

// docTypeRule maps response-text keywords to a classification. First match
// wins, so order matters: the terms can co-occur in one response.
type docTypeRule struct {
	keywords []string
	docType  string
}

var docTypeRules = []docTypeRule{
	{[]string{"rental", "lease"}, "Rental Agreement"},
	{[]string{"employment", "job"}, "Employment Contract"},
	{[]string{"property", "sale"}, "Property Document"},
	{[]string{"loan", "mortgage"}, "Financial Agreement"},
}

// riskRule appends exactly one fixed risk when any keyword appears in the
// original document text.
type riskRule struct {
	keywords []string
	risk     analysis.Risk
}

var riskRules = []riskRule{
	{
		keywords: []string{"deposit", "security"},
		risk: analysis.Risk{
			Severity:       analysis.SeverityHigh,
			Title:          "Security Deposit Terms",
			Description:    "This document mentions security deposits or advance payments. Make sure the amount is fair and refund terms are clearly stated.",
			Section:        "Payment Terms",
			Recommendation: "Check that deposit amounts are reasonable for your area. Ensure the document clearly explains when and how you will get your money back. Ask for a receipt for any money paid.",
		},
	},
}

// termRule appends one fixed glossary entry when any keyword appears in the
// original document text.
type termRule struct {
	keywords []string
	term     analysis.LegalTerm
}

var termRules = []termRule{
	{
		keywords: []string{"deposit", "security"},
		term: analysis.LegalTerm{
			Term:       "Security Deposit",
			Definition: "Money you pay upfront as protection against damages or unpaid amounts. It should be returned when the agreement ends if terms are met.",
			Context:    "In India, security deposits should be reasonable. Make sure the document clearly states when and how you will get this money back.",
		},
	},
	{
		keywords: []string{"termination", "cancel"},
		term: analysis.LegalTerm{
			Term:       "Termination Clause",
			Definition: "Rules about how and when this agreement can be ended by either party. This includes notice periods and any penalties for early termination.",
			Context:    "Indian law protects against unfair termination terms. Make sure termination rules are reasonable and don't heavily favor one side.",
		},
	},
}

// provisionRule contributes one fixed descriptive string when any keyword
// appears in the original document text.
type provisionRule struct {
	keywords  []string
	provision string
}

var provisionRules = []provisionRule{
	{[]string{"amount", "price", "fee"}, "Payment terms and amounts"},
	{[]string{"duration", "period", "term"}, "Agreement duration and time periods"},
	{[]string{"responsibility", "obligation"}, "Rights and responsibilities of parties"},
	{[]string{"termination", "end", "cancel"}, "Termination and cancellation terms"},
}

var fallbackProvisions = []string{
	"Main terms and conditions",
	"Party obligations",
	"Important clauses",
}

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// Result builds the canonical Result from a raw free-text provider
// response and the original document text. The response drives the summary
// and the document type; the document text drives the rule tables.
func Result(responseText, documentText string) *analysis.Result {
	lowerResp := strings.ToLower(responseText)
	lowerDoc := strings.ToLower(documentText)

	summary := responseText
	if len(responseText) > summaryTrigger {
		summary = responseText[:summaryLimit] + "..."
	}

	docType := "Legal Document"
	for _, rule := range docTypeRules {
		if containsAny(lowerResp, rule.keywords) {
			docType = rule.docType
			break
		}
	}

	risks := []analysis.Risk{
		{
			ID:             "risk_1",
			Severity:       analysis.SeverityMedium,
			Title:          "Document Review Needed",
			Description:    "This document contains legal terms and clauses that should be carefully reviewed. Some parts may favor one party over another or have terms that are not clearly explained.",
			Section:        "General Terms",
			Recommendation: "Have a lawyer review this document before signing. Pay special attention to payment terms, penalties, and termination clauses. Make sure you understand all your rights and obligations.",
		},
	}
	for _, rule := range riskRules {
		if containsAny(lowerDoc, rule.keywords) {
			r := rule.risk
			r.ID = riskID(len(risks) + 1)
			risks = append(risks, r)
		}
	}

	terms := []analysis.LegalTerm{
		{
			Term:       "Legal Obligation",
			Definition: "Something you must do according to the law or this document. If you don't do it, there could be legal consequences or penalties.",
			Context:    "In Indian law, when you sign a document, you agree to follow its terms. Courts can enforce these obligations if there are disputes.",
		},
	}
	for _, rule := range termRules {
		if containsAny(lowerDoc, rule.keywords) {
			terms = append(terms, rule.term)
		}
	}

	provisions := make([]string, 0, len(provisionRules))
	for _, rule := range provisionRules {
		if containsAny(lowerDoc, rule.keywords) {
			provisions = append(provisions, rule.provision)
		}
	}
	if len(provisions) == 0 {
		provisions = append(provisions, fallbackProvisions...)
	}

	return &analysis.Result{
		Summary:       summary,
		Risks:         risks,
		LegalTerms:    terms,
		DocumentType:  docType,
		KeyProvisions: provisions,
	}
}

// riskID numbers rule risks after the seeded generic risk_1.
func riskID(n int) string {
	return "risk_" + strconv.Itoa(n)
}
