// Package memory holds the process-lifetime repository used by default and
// in tests. Entities are append-only and keyed by generated ids, so a
// single RWMutex per store is all the coordination needed.
package memory

import (
	"context"
	"sort"
	"sync"

	"legalease/internal/domain/analysis"
	"legalease/internal/domain/documents"
)

// Repository implements documents.Repository and analysis.Repository over
// in-process maps.
type Repository struct {
	mu       sync.RWMutex
	docs     map[documents.DocumentID]*documents.Document
	analyses map[analysis.AnalysisID]*analysis.Analysis
	qa       map[string]*analysis.QaInteraction
}

func New() *Repository {
	return &Repository{
		docs:     make(map[documents.DocumentID]*documents.Document),
		analyses: make(map[analysis.AnalysisID]*analysis.Analysis),
		qa:       make(map[string]*analysis.QaInteraction),
	}
}

func (r *Repository) Create(ctx context.Context, d *documents.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.docs[d.ID] = &cp
	return nil
}

func (r *Repository) Get(ctx context.Context, id documents.DocumentID) (*documents.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *Repository) CreateAnalysis(ctx context.Context, a *analysis.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.analyses[a.ID] = &cp
	return nil
}

func (r *Repository) GetAnalysisByDocumentID(ctx context.Context, id documents.DocumentID) (*analysis.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.analyses {
		if a.DocumentID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *Repository) CreateQaInteraction(ctx context.Context, qa *analysis.QaInteraction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *qa
	r.qa[qa.ID] = &cp
	return nil
}

func (r *Repository) QaInteractionsByDocumentID(ctx context.Context, id documents.DocumentID) ([]*analysis.QaInteraction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*analysis.QaInteraction
	for _, qa := range r.qa {
		if qa.DocumentID == id {
			cp := *qa
			out = append(out, &cp)
		}
	}
	// Map iteration order is random; history reads chronologically.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
