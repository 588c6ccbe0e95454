// Package chi is the HTTP transport: routing, request decoding,
// auth and rate limiting middleware, and domain error mapping.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/instabrief/instabrief/internal/domain"
	"github.com/instabrief/instabrief/internal/domain/category"
	"github.com/instabrief/instabrief/internal/domain/search/facets"
	"github.com/instabrief/instabrief/internal/domain/search/sortkey"
	documentuc "github.com/instabrief/instabrief/internal/usecase/document"
	exploreuc "github.com/instabrief/instabrief/internal/usecase/explore"
	healthuc "github.com/instabrief/instabrief/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API server.
type Server struct {
	documents     *documentuc.Service
	explore       *exploreuc.Service
	summarizer    domain.Summarizer
	health        *healthuc.Service
	summaryLength int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. summarizer may be nil; the
// summarize endpoint then reports the provider as unavailable.
func NewServer(
	documents *documentuc.Service,
	explore *exploreuc.Service,
	summarizer domain.Summarizer,
	health *healthuc.Service,
	summaryLength int,
	logger *zap.Logger,
) *Server {
	s := &Server{
		documents:     documents,
		explore:       explore,
		summarizer:    summarizer,
		health:        health,
		summaryLength: summaryLength,
		logger:        logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, ErrorCodeDocumentNotFound),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, ErrorCodeRateLimited),
		sentinelHandler(domain.ErrSummaryProviderError, http.StatusBadGateway, ErrorCodeSummaryProviderError),
	}
	return s
}

// Routes registers all API handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/documents", s.IngestDocument)
	r.Get("/documents", s.ListDocuments)
	r.Get("/documents/{id}", s.GetDocument)
	r.Delete("/documents/{id}", s.DeleteDocument)
	r.Get("/search", s.SearchDocuments)
	r.Get("/search/overview", s.SearchOverview)
	r.Post("/summarize", s.Summarize)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// IngestDocument handles POST /documents.
func (s *Server) IngestDocument(w http.ResponseWriter, r *http.Request) {
	var req IngestDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Title == "" {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "title is required")
		return
	}

	doc, err := s.documents.Ingest(r.Context(), documentuc.IngestRequest{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/documents/"+doc.ID())
	writeJSON(w, http.StatusCreated, documentToDTO(doc, true))
}

// ListDocuments handles GET /documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("cursor")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	docs, nextCursor, err := s.documents.List(r.Context(), cursor, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		items[i] = documentToDTO(d, false)
	}

	resp := DocumentListResponse{
		Items:   items,
		HasMore: nextCursor != "",
	}
	if nextCursor != "" {
		resp.NextCursor = &nextCursor
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetDocument handles GET /documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.documents.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, documentToDTO(doc, true))
}

// DeleteDocument handles DELETE /documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.documents.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SearchDocuments handles GET /search.
func (s *Server) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	categories, err := parseCategories(q["category"])
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}
	fileTypes, err := parseCategories(q["file_type"])
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	key := sortkey.Relevance
	if raw := q.Get("sort"); raw != "" {
		key = sortkey.Key(raw)
		if !key.IsValid() {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed,
				fmt.Sprintf("unknown sort %q", raw))
			return
		}
	}

	sel := facets.New(categories, fileTypes, q["tag"], q.Get("date"))

	results, err := s.explore.Search(r.Context(), q.Get("q"), sel, key)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]SearchResultItem, len(results))
	for i, res := range results {
		items[i] = searchResultToDTO(res)
	}

	writeJSON(w, http.StatusOK, SearchListResponse{
		Items: items,
		Total: len(items),
	})
}

// SearchOverview handles GET /search/overview.
func (s *Server) SearchOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := s.explore.Overview(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, overviewToDTO(ov))
}

// Summarize handles POST /summarize.
func (s *Server) Summarize(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	typ := domain.SummaryExtractive
	if req.SummaryType != "" {
		typ = domain.SummaryType(req.SummaryType)
		if !typ.IsValid() {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed,
				fmt.Sprintf("unknown summary_type %q", req.SummaryType))
			return
		}
	}

	length := req.Length
	if length == 0 {
		length = s.summaryLength
	}
	if length < 1 || length > 100 {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "length must be between 1 and 100")
		return
	}

	if s.summarizer == nil {
		writeError(w, http.StatusBadGateway, ErrorCodeSummaryProviderError, "summarizer is not configured")
		return
	}

	summary, err := s.summarizer.Summarize(r.Context(), req.Text, typ, length)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SummarizeResponse{
		Summary:     summary,
		SummaryType: string(typ),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func parseCategories(raw []string) ([]category.Category, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]category.Category, 0, len(raw))
	for _, v := range raw {
		c := category.Category(v)
		if !c.IsValid() {
			return nil, fmt.Errorf("unknown category %q", v)
		}
		out = append(out, c)
	}
	return out, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrDocumentNotFound,
		domain.ErrAlreadyExists,
		domain.ErrInvalidRequest,
		domain.ErrRateLimited,
		domain.ErrSummaryProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
