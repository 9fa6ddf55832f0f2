package heuristic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"legalease/internal/domain/analysis"
)

func TestAnalyzeRentalTemplate(t *testing.T) {
	a := New()
	res := a.Analyze("This rental agreement requires a security deposit and has a lock-in period of 11 months.", "lease.pdf")

	require.Equal(t, "Residential Rental Agreement", res.DocumentType)
	require.Contains(t, strings.ToLower(res.Summary), "rental agreement")
	require.Equal(t, analysis.SourceHeuristic, res.Source)

	var highDeposit bool
	for _, r := range res.Risks {
		if r.Title == "Excessive Security Deposit" && r.Severity == analysis.SeverityHigh {
			highDeposit = true
		}
	}
	require.True(t, highDeposit, "rental template must flag the excessive security deposit as high severity")
	require.Len(t, res.Risks, 4)
	require.Len(t, res.LegalTerms, 3)
	require.Len(t, res.KeyProvisions, 7)
}

func TestAnalyzeEmploymentTemplate(t *testing.T) {
	a := New()
	res := a.Analyze("The employee shall receive a salary of Rs. 50,000 per month.", "offer.pdf")

	require.Equal(t, "Employment Contract", res.DocumentType)
	require.Len(t, res.Risks, 1)
	require.Equal(t, "Non-Compete Clause", res.Risks[0].Title)
	require.Empty(t, res.Risks[0].Section)
	require.Equal(t, analysis.SourceHeuristic, res.Source)
}

func TestAnalyzeGenericTemplate(t *testing.T) {
	a := New()
	res := a.Analyze("A memorandum of understanding between two parties.", "mou.txt")

	require.Equal(t, "Legal Document", res.DocumentType)
	require.NotEmpty(t, res.Summary)
	require.Empty(t, res.Risks)
	require.Empty(t, res.LegalTerms)
	require.NotEmpty(t, res.KeyProvisions)
}

func TestAnalyzeRentalWinsOverEmployment(t *testing.T) {
	a := New()
	res := a.Analyze("employment contract with a company car lease benefit", "mixed.pdf")
	require.Equal(t, "Residential Rental Agreement", res.DocumentType)
}

func TestAnalyzeIdempotent(t *testing.T) {
	a := New()
	in := "rental agreement with security deposit and lock-in period"
	first := a.Analyze(in, "doc.pdf")
	for i := 0; i < 5; i++ {
		require.Equal(t, first, a.Analyze(in, "doc.pdf"))
	}
}
