// Package document implements the document lifecycle: ingest with
// automatic tagging and summarization, retrieval, listing and deletion.
package document

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/instabrief/instabrief/internal/domain"
	domdoc "github.com/instabrief/instabrief/internal/domain/document"
	"github.com/instabrief/instabrief/internal/usecase/tagging"
)

// IngestRequest carries a new document's fields.
type IngestRequest struct {
	Title   string
	Content string
	Tags    []string
}

// Service orchestrates document operations.
type Service struct {
	repo          Repository
	summarizer    domain.Summarizer
	summaryLength int
	defaultPage   int
	maxPage       int
	logger        *zap.Logger
	now           func() time.Time
}

// New creates a document service. summarizer may be nil; ingested
// documents are then stored without summaries.
func New(repo Repository, summarizer domain.Summarizer, summaryLength, defaultPage, maxPage int, logger *zap.Logger) *Service {
	return &Service{
		repo:          repo,
		summarizer:    summarizer,
		summaryLength: summaryLength,
		defaultPage:   defaultPage,
		maxPage:       maxPage,
		logger:        logger,
		now:           time.Now,
	}
}

// Ingest stores a new document, generating an ID, tags when none were
// provided, and both summaries. Summarization is best-effort: failures
// are logged and the document is stored without the failed summary.
func (s *Service) Ingest(ctx context.Context, req IngestRequest) (domdoc.Document, error) {
	tags := req.Tags
	if len(tags) == 0 {
		tags = tagging.Generate(req.Content, req.Title)
	}

	doc, err := domdoc.New(uuid.NewString(), req.Title, req.Content, tags, s.now().UTC())
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	extractive := s.summarize(ctx, req.Content, domain.SummaryExtractive)
	abstractive := s.summarize(ctx, req.Content, domain.SummaryAbstractive)
	doc = doc.WithSummaries(extractive, abstractive)

	if err := s.repo.Save(ctx, doc); err != nil {
		return domdoc.Document{}, fmt.Errorf("save document: %w", err)
	}

	s.logger.Info("document ingested",
		zap.String("id", doc.ID()),
		zap.String("title", doc.Title()),
		zap.Strings("tags", doc.Tags()))
	return doc, nil
}

func (s *Service) summarize(ctx context.Context, content string, typ domain.SummaryType) string {
	if s.summarizer == nil {
		return ""
	}
	out, err := s.summarizer.Summarize(ctx, content, typ, s.summaryLength)
	if err != nil {
		s.logger.Warn("summary generation failed",
			zap.String("type", string(typ)), zap.Error(err))
		return ""
	}
	return out
}

// Get returns a document by ID.
func (s *Service) Get(ctx context.Context, id string) (domdoc.Document, error) {
	return s.repo.Get(ctx, id)
}

// List returns a page of documents in stable ID order with an opaque
// cursor for the next page. An empty cursor starts from the beginning.
func (s *Service) List(ctx context.Context, cursor string, limit int) ([]domdoc.Document, string, error) {
	if limit <= 0 {
		limit = s.defaultPage
	}
	if limit > s.maxPage {
		limit = s.maxPage
	}

	offset := 0
	if cursor != "" {
		parsed, err := strconv.Atoi(cursor)
		if err != nil || parsed < 0 {
			return nil, "", fmt.Errorf("%w: invalid cursor %q", domain.ErrInvalidRequest, cursor)
		}
		offset = parsed
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list documents: %w", err)
	}

	if offset >= len(all) {
		return nil, "", nil
	}

	end := offset + limit
	var nextCursor string
	if end < len(all) {
		nextCursor = strconv.Itoa(end)
	} else {
		end = len(all)
	}

	return all[offset:end], nextCursor, nil
}

// Delete removes a document by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("document deleted", zap.String("id", id))
	return nil
}

// Count returns the number of stored documents.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
