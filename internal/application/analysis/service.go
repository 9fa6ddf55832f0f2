package analysis

import (
	"context"
	"fmt"
	"log"

	domain "legalease/internal/domain/analysis"
	"legalease/internal/infra/ai/heuristic"
	"legalease/internal/infra/ai/prompt"
)

// Service sequences providers by priority and guarantees a result is always
// produced. It is the availability boundary of the system: provider
// failures are logged and absorbed, never surfaced to callers.
//
// Providers are tried strictly in order; the first attempt that returns
// without error wins. Attempts are sequential on purpose: racing providers
// would double billed calls and make fallback ordering nondeterministic.
// There is no retry budget here; retry, if ever wanted, belongs in a
// wrapper around an adapter, not in the cascade.
type Service struct {
	providers []domain.Provider
	fallback  *heuristic.Analyzer
}

func NewService(providers []domain.Provider, fallback *heuristic.Analyzer) *Service {
	if fallback == nil {
		fallback = heuristic.New()
	}
	return &Service{providers: providers, fallback: fallback}
}

// Analyze runs the fallback cascade over the document text. It never fails
// for non-empty text: when every provider errors, the heuristic tier
// produces the result locally.
func (s *Service) Analyze(ctx context.Context, text, filename string) (*domain.Result, error) {
	if text == "" {
		return nil, fmt.Errorf("analyze called with empty document text")
	}
	for _, p := range s.providers {
		res, err := p.Analyze(ctx, text, filename)
		if err != nil {
			log.Printf("analysis provider failed provider=%s class=%s err=%v",
				p.Name(), domain.ClassifyError(err), err)
			continue
		}
		res.Source = p.Name()
		return res, nil
	}
	log.Printf("all analysis providers failed, using heuristic analyzer file=%s", filename)
	return s.fallback.Analyze(text, filename), nil
}

// Answer runs the same provider cascade for a question. The terminal
// fallback is a canned reply referencing the question; the heuristic
// analyzer is not re-run because answering needs generative capability the
// rule tier cannot offer.
func (s *Service) Answer(ctx context.Context, text, question, existingSummary string) string {
	for _, p := range s.providers {
		answer, err := p.Answer(ctx, text, question, existingSummary)
		if err != nil {
			log.Printf("answer provider failed provider=%s class=%s err=%v",
				p.Name(), domain.ClassifyError(err), err)
			continue
		}
		return answer
	}
	log.Printf("all answer providers failed, returning canned fallback")
	return prompt.AnswerFallback(question)
}
