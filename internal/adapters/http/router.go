package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/buildeval/assessment-rag/internal/core/domain"
	"github.com/buildeval/assessment-rag/internal/core/ports"
	"github.com/buildeval/assessment-rag/internal/observability/metrics"
)

// Options carries the traffic-control knobs for the API surface.
type Options struct {
	ServiceName    string
	RateLimitRPS   float64
	RateLimitBurst int
	MaxInFlight    int
}

type Router struct {
	questions ports.QuestionService
	search    ports.SearchService
	ingestor  ports.DocumentIngestor
	documents ports.DocumentReader
	metrics   *metrics.HTTPServerMetrics
	opts      Options
}

func NewRouter(
	questions ports.QuestionService,
	search ports.SearchService,
	ingestor ports.DocumentIngestor,
	documents ports.DocumentReader,
	m *metrics.HTTPServerMetrics,
	opts Options,
) *Router {
	if opts.ServiceName == "" {
		opts.ServiceName = "api"
	}
	return &Router{
		questions: questions,
		search:    search,
		ingestor:  ingestor,
		documents: documents,
		metrics:   m,
		opts:      opts,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/rag/question", rt.answerQuestion)
	mux.HandleFunc("/v1/rag/search", rt.semanticSearch)
	mux.HandleFunc("/v1/rag/metadata-search", rt.metadataSearch)
	mux.HandleFunc("/v1/categories", rt.categorySummary)
	mux.HandleFunc("/v1/collection-status", rt.collectionStatus)
	mux.HandleFunc("/v1/documents", rt.uploadDocument)
	mux.HandleFunc("/v1/documents/", rt.getDocumentByID)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = backpressureMiddleware(rt.opts.MaxInFlight, handler)
	handler = rateLimitMiddleware(rt.opts.RateLimitRPS, rt.opts.RateLimitBurst, handler)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.opts.ServiceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) answerQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req domain.QuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	start := time.Now()
	answer := rt.questions.AnswerQuestion(r.Context(), req)

	if rt.metrics != nil {
		queryType := "unknown"
		if answer.Metadata.QueryIntent != nil {
			queryType = answer.Metadata.QueryIntent.Domain
		}
		rt.metrics.RecordQuestion(
			rt.opts.ServiceName,
			queryType,
			string(answer.Confidence),
			answer.Metadata.SourcesCount,
			time.Since(start),
		)
	}

	writeJSON(w, http.StatusOK, answer)
}

func (rt *Router) semanticSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	sources := rt.search.Search(r.Context(), req.Query, req.Limit)
	if rt.metrics != nil {
		rt.metrics.RecordSearch(rt.opts.ServiceName, "search")
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": sources,
		"count":   len(sources),
	})
}

func (rt *Router) metadataSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Query         string   `json:"query"`
		Limit         int      `json:"limit"`
		AutoFilter    *bool    `json:"auto_filter"`
		Categories    []string `json:"categories"`
		DocumentTypes []string `json:"document_types"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	autoFilter := true
	if req.AutoFilter != nil {
		autoFilter = *req.AutoFilter
	}

	candidates := rt.search.SearchWithMetadata(
		r.Context(),
		req.Query,
		req.Limit,
		autoFilter,
		req.Categories,
		req.DocumentTypes,
	)
	if rt.metrics != nil {
		rt.metrics.RecordSearch(rt.opts.ServiceName, "metadata-search")
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": candidates,
		"count":   len(candidates),
	})
}

func (rt *Router) categorySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": rt.search.CategorySummary(r.Context()),
	})
}

func (rt *Router) collectionStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, rt.search.CollectionStatus(r.Context()))
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	doc, err := rt.ingestor.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "document id is required")
		return
	}

	doc, err := rt.documents.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
