package chi

import (
	"time"

	"github.com/instabrief/instabrief/internal/domain/category"
	domdoc "github.com/instabrief/instabrief/internal/domain/document"
	"github.com/instabrief/instabrief/internal/domain/search/result"
	exploreuc "github.com/instabrief/instabrief/internal/usecase/explore"
)

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Error codes returned by the API.
const (
	ErrorCodeBadRequest           ErrorResponseCode = "bad_request"
	ErrorCodeValidationFailed     ErrorResponseCode = "validation_failed"
	ErrorCodeDocumentNotFound     ErrorResponseCode = "document_not_found"
	ErrorCodeRateLimited          ErrorResponseCode = "rate_limited"
	ErrorCodeSummaryProviderError ErrorResponseCode = "summary_provider_error"
	ErrorCodeInternalError        ErrorResponseCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// IngestDocumentRequest is the POST /documents body.
type IngestDocumentRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

// DocumentResponse is the full document representation.
type DocumentResponse struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Content            string     `json:"content,omitempty"`
	Tags               []string   `json:"tags,omitempty"`
	Category           string     `json:"category"`
	SummaryExtractive  string     `json:"summary_extractive,omitempty"`
	SummaryAbstractive string     `json:"summary_abstractive,omitempty"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
}

// DocumentListResponse is a cursor page of documents.
type DocumentListResponse struct {
	Items      []DocumentResponse `json:"items"`
	HasMore    bool               `json:"has_more"`
	NextCursor *string            `json:"next_cursor,omitempty"`
}

// SearchResultItem is one search hit. Score is absent for unscored
// (empty query) results.
type SearchResultItem struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Tags      []string   `json:"tags,omitempty"`
	Category  string     `json:"category"`
	Score     *int       `json:"score,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// SearchListResponse is the GET /search body.
type SearchListResponse struct {
	Items []SearchResultItem `json:"items"`
	Total int                `json:"total"`
}

// CategoryCount is one category facet bucket.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// TagCount is one tag facet bucket.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// OverviewResponse is the GET /search/overview body.
type OverviewResponse struct {
	Total      int             `json:"total"`
	Categories []CategoryCount `json:"categories"`
	Tags       []TagCount      `json:"tags"`
}

// SummarizeRequest is the POST /summarize body.
type SummarizeRequest struct {
	Text        string `json:"text"`
	SummaryType string `json:"summary_type,omitempty"`
	Length      int    `json:"length,omitempty"`
}

// SummarizeResponse is the POST /summarize body.
type SummarizeResponse struct {
	Summary     string `json:"summary"`
	SummaryType string `json:"summary_type"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func documentToDTO(doc domdoc.Document, includeContent bool) DocumentResponse {
	resp := DocumentResponse{
		ID:                 doc.ID(),
		Title:              doc.Title(),
		Tags:               doc.Tags(),
		Category:           string(category.Classify(doc)),
		SummaryExtractive:  doc.SummaryExtractive(),
		SummaryAbstractive: doc.SummaryAbstractive(),
	}
	if includeContent {
		resp.Content = doc.Content()
	}
	if ts := doc.CreatedAt(); !ts.IsZero() {
		utc := ts.UTC()
		resp.CreatedAt = &utc
	}
	return resp
}

func searchResultToDTO(r result.ScoredDocument) SearchResultItem {
	doc := r.Document()
	item := SearchResultItem{
		ID:       doc.ID(),
		Title:    doc.Title(),
		Tags:     doc.Tags(),
		Category: string(category.Classify(doc)),
	}
	if r.HasScore() {
		score := r.Score()
		item.Score = &score
	}
	if ts := doc.CreatedAt(); !ts.IsZero() {
		utc := ts.UTC()
		item.CreatedAt = &utc
	}
	return item
}

func overviewToDTO(ov exploreuc.Overview) OverviewResponse {
	resp := OverviewResponse{
		Total:      ov.Total,
		Categories: make([]CategoryCount, len(ov.Categories)),
		Tags:       make([]TagCount, len(ov.Tags)),
	}
	for i, c := range ov.Categories {
		resp.Categories[i] = CategoryCount{Category: string(c.Category), Count: c.Count}
	}
	for i, tg := range ov.Tags {
		resp.Tags[i] = TagCount{Tag: tg.Tag, Count: tg.Count}
	}
	return resp
}
