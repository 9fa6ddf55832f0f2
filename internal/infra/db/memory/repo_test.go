package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"legalease/internal/domain/analysis"
	"legalease/internal/domain/documents"
)

func TestDocumentRoundTrip(t *testing.T) {
	repo := New()
	ctx := context.Background()

	doc := &documents.Document{
		ID:          "doc-1",
		Filename:    "lease.pdf",
		ContentType: "application/pdf",
		Content:     "rental agreement",
		Pages:       2,
		UploadedAt:  time.Now(),
	}
	require.NoError(t, repo.Create(ctx, doc))

	got, err := repo.Get(ctx, "doc-1")
	require.NoError(t, err)
	require.Equal(t, doc.Filename, got.Filename)

	// Mutating the returned copy must not touch the stored entity.
	got.Filename = "changed"
	again, err := repo.Get(ctx, "doc-1")
	require.NoError(t, err)
	require.Equal(t, "lease.pdf", again.Filename)
}

func TestGetUnknownReturnsNil(t *testing.T) {
	repo := New()
	ctx := context.Background()

	doc, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, doc)

	a, err := repo.GetAnalysisByDocumentID(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, a)

	qa, err := repo.QaInteractionsByDocumentID(ctx, "missing")
	require.NoError(t, err)
	require.Empty(t, qa)
}

func TestAnalysisByDocumentID(t *testing.T) {
	repo := New()
	ctx := context.Background()

	a := &analysis.Analysis{
		ID:         "a-1",
		DocumentID: "doc-1",
		Result: analysis.Result{
			Summary:       "summary",
			Risks:         []analysis.Risk{},
			LegalTerms:    []analysis.LegalTerm{},
			DocumentType:  "Legal Document",
			KeyProvisions: []string{"k"},
			Source:        "cohere",
		},
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.CreateAnalysis(ctx, a))

	got, err := repo.GetAnalysisByDocumentID(ctx, "doc-1")
	require.NoError(t, err)
	require.Equal(t, analysis.AnalysisID("a-1"), got.ID)
	require.Equal(t, "cohere", got.Result.Source)
}

func TestQaHistoryOrderedByCreation(t *testing.T) {
	repo := New()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"q-c", "q-a", "q-b"} {
		require.NoError(t, repo.CreateQaInteraction(ctx, &analysis.QaInteraction{
			ID:         id,
			DocumentID: "doc-1",
			Question:   "q?",
			Answer:     "a",
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := repo.QaInteractionsByDocumentID(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "q-c", got[0].ID)
	require.Equal(t, "q-a", got[1].ID)
	require.Equal(t, "q-b", got[2].ID)
}

func TestConcurrentAppends(t *testing.T) {
	repo := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = repo.CreateQaInteraction(ctx, &analysis.QaInteraction{
				ID:         string(rune('a'+n%26)) + "-" + time.Now().String(),
				DocumentID: "doc-1",
				Question:   "q",
				Answer:     "a",
				CreatedAt:  time.Now(),
			})
			_, _ = repo.QaInteractionsByDocumentID(ctx, "doc-1")
		}(i)
	}
	wg.Wait()
}
