package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"legalease/internal/domain/analysis"
)

func TestResultSeedsGenericRiskAndTerm(t *testing.T) {
	res := Result("Some analysis text.", "plain content")

	require.Len(t, res.Risks, 1)
	require.Equal(t, "risk_1", res.Risks[0].ID)
	require.Equal(t, analysis.SeverityMedium, res.Risks[0].Severity)
	require.Equal(t, "Document Review Needed", res.Risks[0].Title)

	require.Len(t, res.LegalTerms, 1)
	require.Equal(t, "Legal Obligation", res.LegalTerms[0].Term)
}

func TestResultDocumentTypePriorityOrder(t *testing.T) {
	cases := map[string]string{
		"this covers a rental lease":              "Rental Agreement",
		"an employment offer for the job":         "Employment Contract",
		"the property sale deed":                  "Property Document",
		"a loan against mortgage":                 "Financial Agreement",
		"nothing recognizable here":               "Legal Document",
		"rental terms within an employment offer": "Rental Agreement", // first match wins
	}
	for resp, want := range cases {
		res := Result(resp, "content")
		require.Equal(t, want, res.DocumentType, "response %q", resp)
	}
}

func TestResultClassifiesFromResponseNotDocument(t *testing.T) {
	// Keywords in the document text must not drive the classification.
	res := Result("a generic reply", "this rental lease mentions employment")
	require.Equal(t, "Legal Document", res.DocumentType)
}

func TestResultDepositKeywordAddsRiskAndTerm(t *testing.T) {
	base := Result("reply", "simple contract text")
	withDeposit := Result("reply", "simple contract text with a security deposit")

	require.Len(t, base.Risks, 1)
	require.Len(t, withDeposit.Risks, 2)
	require.Equal(t, "risk_2", withDeposit.Risks[1].ID)
	require.Equal(t, analysis.SeverityHigh, withDeposit.Risks[1].Severity)
	require.Equal(t, "Security Deposit Terms", withDeposit.Risks[1].Title)

	// Monotonic: everything present without the keyword is still present.
	require.Equal(t, base.Risks[0], withDeposit.Risks[0])
	require.Equal(t, base.LegalTerms[0], withDeposit.LegalTerms[0])
	require.Equal(t, "Security Deposit", withDeposit.LegalTerms[1].Term)
}

func TestResultTerminationKeywordAddsTerm(t *testing.T) {
	res := Result("reply", "either party may cancel with notice")
	require.Len(t, res.LegalTerms, 2)
	require.Equal(t, "Termination Clause", res.LegalTerms[1].Term)
}

func TestResultKeyProvisions(t *testing.T) {
	res := Result("reply", "the fee is due monthly for the full period and each obligation survives termination")
	require.Equal(t, []string{
		"Payment terms and amounts",
		"Agreement duration and time periods",
		"Rights and responsibilities of parties",
		"Termination and cancellation terms",
	}, res.KeyProvisions)
}

func TestResultKeyProvisionsFallback(t *testing.T) {
	res := Result("reply", "nothing matches here")
	require.Equal(t, []string{
		"Main terms and conditions",
		"Party obligations",
		"Important clauses",
	}, res.KeyProvisions)
}

func TestResultSummaryTruncation(t *testing.T) {
	short := strings.Repeat("a", 2000)
	res := Result(short, "content")
	require.Equal(t, short, res.Summary)

	long := strings.Repeat("b", 2001)
	res = Result(long, "content")
	require.Len(t, res.Summary, 1803)
	require.True(t, strings.HasSuffix(res.Summary, "..."))
	require.Equal(t, long[:1800], res.Summary[:1800])
}

func TestResultDeterministic(t *testing.T) {
	a := Result("rental analysis", "security deposit and cancel terms with fee")
	b := Result("rental analysis", "security deposit and cancel terms with fee")
	require.Equal(t, a, b)
}
