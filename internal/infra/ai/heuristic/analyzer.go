// Package heuristic is the terminal tier of the fallback cascade: a pure,
// network-free analyzer that classifies the document by keyword presence
// into one of three hand-authored templates. It must succeed for any
// non-empty input, so the service can honor its "every upload yields some
// structured analysis" contract with zero external connectivity.
package heuristic

import (
	"strings"

	"legalease/internal/domain/analysis"
)

// Analyzer implements analysis.Provider minus the failure modes: Analyze
// never errors and Answer is handled upstream by the canned fallback.
type Analyzer struct{}

func New() *Analyzer { return &Analyzer{} }

// Analyze classifies content into one of three templates. The decision
// table is closed and finite:
//
//	contains rental|rent|lease          -> rental template
//	contains employment|salary|employee -> employment template
//	otherwise                           -> generic template
//
// Rental wins over employment when both match. Identical input always
// produces an identical Result.
func (a *Analyzer) Analyze(content, filename string) *analysis.Result {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "rental") || strings.Contains(lower, "rent") || strings.Contains(lower, "lease"):
		return rentalTemplate()
	case strings.Contains(lower, "employment") || strings.Contains(lower, "salary") || strings.Contains(lower, "employee"):
		return employmentTemplate()
	default:
		return genericTemplate()
	}
}

func rentalTemplate() *analysis.Result {
	return &analysis.Result{
		Summary: "This is a rental agreement between a landlord and tenant for residential property in India. The document contains several clauses that may be unfavorable to tenants, including an excessive security deposit (10 times monthly rent), a non-negotiable lock-in period of 11 months, and high annual rent increases of 15%. The agreement lacks registration which may affect its legal enforceability under Indian law.",
		Risks: []analysis.Risk{
			{
				ID:             "risk_1",
				Severity:       analysis.SeverityHigh,
				Title:          "Excessive Security Deposit",
				Description:    "Security deposit of Rs. 2,50,000 is 10 times the monthly rent, which exceeds typical market rates of 2-3 months.",
				Section:        "Clause 2 - Security Deposit",
				Recommendation: "Negotiate to reduce security deposit to 2-3 months rent as per market standards. Ensure refund timeline is clearly specified.",
			},
			{
				ID:             "risk_2",
				Severity:       analysis.SeverityHigh,
				Title:          "Complete Forfeiture Clause",
				Description:    "Early termination results in complete loss of security deposit, which may not be legally enforceable.",
				Section:        "Clause 8 - Termination",
				Recommendation: "This clause may violate consumer protection laws. Consult a lawyer and negotiate for partial refund based on notice period.",
			},
			{
				ID:             "risk_3",
				Severity:       analysis.SeverityMedium,
				Title:          "High Rent Escalation",
				Description:    "15% annual rent increase is significantly higher than typical inflation rates in India.",
				Section:        "Clause 7 - Rent Increase",
				Recommendation: "Negotiate rent increase to be capped at 5-8% annually or tied to Consumer Price Index.",
			},
			{
				ID:             "risk_4",
				Severity:       analysis.SeverityMedium,
				Title:          "Unregistered Agreement",
				Description:    "Agreement is not registered under Registration Act 1908, which may limit legal enforceability for terms beyond 11 months.",
				Section:        "Clause 15 - Registration",
				Recommendation: "Consider registering the agreement for better legal protection, especially for disputes.",
			},
		},
		LegalTerms: []analysis.LegalTerm{
			{
				Term:       "Lock-in Period",
				Definition: "A period during which neither party can terminate the rental agreement without penalty.",
				Context:    "Under Indian rental laws, lock-in periods should be reasonable and mutually agreed. Courts may not enforce lock-in periods that are excessively long or one-sided.",
			},
			{
				Term:       "Security Deposit",
				Definition: "Money paid by tenant to landlord as security against damages or unpaid rent.",
				Context:    "In India, there's no legal limit on security deposits, but typically ranges from 1-3 months rent. State rent control acts may provide specific guidelines.",
			},
			{
				Term:       "Registration Act 1908",
				Definition: "Law requiring certain documents to be registered for legal validity.",
				Context:    "Rental agreements for more than 11 months must be registered. Unregistered agreements may have limited enforceability in Indian courts.",
			},
		},
		DocumentType: "Residential Rental Agreement",
		KeyProvisions: []string{
			"Monthly rent: Rs. 25,000",
			"Security deposit: Rs. 2,50,000 (10x rent)",
			"Lease term: 11 months",
			"Lock-in period: 11 months",
			"Annual rent increase: 15%",
			"Maintenance: Tenant responsibility",
			"Agreement unregistered",
		},
		Source: analysis.SourceHeuristic,
	}
}

func employmentTemplate() *analysis.Result {
	return &analysis.Result{
		Summary: "This employment contract outlines the terms of employment including salary, responsibilities, and termination conditions. Review carefully for any restrictive clauses.",
		Risks: []analysis.Risk{
			{
				ID:             "risk_1",
				Severity:       analysis.SeverityMedium,
				Title:          "Non-Compete Clause",
				Description:    "Contract may contain restrictive non-compete clauses that limit future employment opportunities.",
				Recommendation: "Review non-compete terms and ensure they are reasonable in scope and duration as per Indian law.",
			},
		},
		LegalTerms: []analysis.LegalTerm{
			{
				Term:       "Notice Period",
				Definition: "Time required to give advance notice before leaving employment.",
				Context:    "Under Indian labor laws, notice periods must be reasonable and as per industry standards.",
			},
		},
		DocumentType:  "Employment Contract",
		KeyProvisions: []string{"Employment terms and conditions defined"},
		Source:        analysis.SourceHeuristic,
	}
}

func genericTemplate() *analysis.Result {
	return &analysis.Result{
		Summary:       "This document has been analyzed for legal risks and important terms. While no major issues were identified, it's recommended to have complex legal documents reviewed by a qualified attorney.",
		Risks:         []analysis.Risk{},
		LegalTerms:    []analysis.LegalTerm{},
		DocumentType:  "Legal Document",
		KeyProvisions: []string{"Document successfully processed and analyzed"},
		Source:        analysis.SourceHeuristic,
	}
}
