package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appdocs "legalease/internal/application/documents"
	domanalysis "legalease/internal/domain/analysis"
	domain "legalease/internal/domain/documents"
	"legalease/internal/middleware"
)

// MaxUploadBytes is the upload size ceiling (10 MiB).
const MaxUploadBytes = 10 << 20

type Router struct {
	docs     *appdocs.Service
	checkers map[string]middleware.HealthChecker
}

func NewRouter(docs *appdocs.Service, checkers map[string]middleware.HealthChecker) http.Handler {
	r := &Router{docs: docs, checkers: checkers}
	mux := chi.NewRouter()

	mux.Use(middleware.Logging)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	mux.Get("/health", middleware.HealthHandler(r.checkers))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/api/documents", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/{id}/analysis", r.wrap(r.handleGetAnalysis))
		rt.Post("/{id}/questions", r.wrap(r.handleAskQuestion))
		rt.Get("/{id}/questions", r.wrap(r.handleListQuestions))
	})

	return mux
}

// badRequest marks errors caused by client input; wrap maps it to 400.
type badRequest struct{ err error }

func (b badRequest) Error() string { return b.err.Error() }
func (b badRequest) Unwrap() error { return b.err }

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var br badRequest
		switch {
		case errors.Is(err, appdocs.ErrNotFound):
			writeError(w, http.StatusNotFound, err)
		case errors.Is(err, appdocs.ErrEmptyQuestion), errors.As(err, &br):
			writeError(w, http.StatusBadRequest, err)
		default:
			log.Printf("request failed path=%s err=%v", req.URL.Path, err)
			writeError(w, http.StatusInternalServerError, err)
		}
	}
}

// writeError emits the error envelope {"message": ...}.
func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

type documentPayload struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Type     string `json:"type,omitempty"`
}

type analysisPayload struct {
	ID            string                 `json:"id"`
	Summary       string                 `json:"summary"`
	Risks         []domanalysis.Risk     `json:"risks"`
	LegalTerms    []domanalysis.LegalTerm `json:"legalTerms"`
	DocumentType  string                 `json:"documentType"`
	KeyProvisions []string               `json:"keyProvisions"`
	Source        string                 `json:"source,omitempty"`
}

// POST /api/documents/analyze
// Multipart upload, field "document". Extraction and validation failures
// are the only user-visible errors; once text is available the analysis
// cascade guarantees a result.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, MaxUploadBytes)
	file, header, err := req.FormFile("document")
	if err != nil {
		return badRequest{fmt.Errorf("no file uploaded")}
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if err := middleware.ValidateContentType(contentType); err != nil {
		return badRequest{err}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return badRequest{fmt.Errorf("failed to read uploaded file: %w", err)}
	}

	out, err := r.docs.UploadAndAnalyze(req.Context(), appdocs.UploadCommand{
		Filename:    middleware.SanitizeFilename(header.Filename),
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		// Everything that can fail here is an input or extraction problem.
		return badRequest{err}
	}

	middleware.IncrementAnalyses()
	if out.Analysis.Result.Source == domanalysis.SourceHeuristic {
		middleware.IncrementHeuristicAnalyses()
	}

	return writeJSON(w, http.StatusOK, map[string]any{
		"document": documentPayload{
			ID:       string(out.Document.ID),
			Filename: out.Document.Filename,
			Type:     out.Analysis.Result.DocumentType,
		},
		"analysis": analysisPayload{
			ID:            string(out.Analysis.ID),
			Summary:       out.Analysis.Result.Summary,
			Risks:         out.Analysis.Result.Risks,
			LegalTerms:    out.Analysis.Result.LegalTerms,
			DocumentType:  out.Analysis.Result.DocumentType,
			KeyProvisions: out.Analysis.Result.KeyProvisions,
			Source:        out.Analysis.Result.Source,
		},
	})
}

// GET /api/documents/{id}/analysis
func (r *Router) handleGetAnalysis(w http.ResponseWriter, req *http.Request) error {
	id := domain.DocumentID(chi.URLParam(req, "id"))
	doc, a, err := r.docs.GetAnalysis(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"document": documentPayload{
			ID:       string(doc.ID),
			Filename: doc.Filename,
		},
		"analysis": analysisPayload{
			ID:            string(a.ID),
			Summary:       a.Result.Summary,
			Risks:         a.Result.Risks,
			LegalTerms:    a.Result.LegalTerms,
			DocumentType:  a.Result.DocumentType,
			KeyProvisions: a.Result.KeyProvisions,
			Source:        a.Result.Source,
		},
	})
}

// POST /api/documents/{id}/questions
func (r *Router) handleAskQuestion(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest{fmt.Errorf("invalid request body")}
	}
	if err := middleware.ValidateQuestion(body.Question); err != nil {
		return badRequest{err}
	}

	id := domain.DocumentID(chi.URLParam(req, "id"))
	qa, err := r.docs.AskQuestion(req.Context(), id, body.Question)
	if err != nil {
		return err
	}

	middleware.IncrementQuestions()
	return writeJSON(w, http.StatusOK, map[string]any{
		"id":        qa.ID,
		"question":  qa.Question,
		"answer":    qa.Answer,
		"createdAt": qa.CreatedAt,
	})
}

// GET /api/documents/{id}/questions
func (r *Router) handleListQuestions(w http.ResponseWriter, req *http.Request) error {
	id := domain.DocumentID(chi.URLParam(req, "id"))
	list, err := r.docs.Questions(req.Context(), id)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domanalysis.QaInteraction{}
	}
	return writeJSON(w, http.StatusOK, list)
}
