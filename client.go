// Package instabrief is the embedded SDK: it wires the document,
// search and summary services directly over a Redis store, without
// running the HTTP server.
package instabrief

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/instabrief/instabrief/internal/db"
	dbRedis "github.com/instabrief/instabrief/internal/db/redis"
	"github.com/instabrief/instabrief/internal/domain"
	documentrepo "github.com/instabrief/instabrief/internal/repository/document"
	documentuc "github.com/instabrief/instabrief/internal/usecase/document"
	exploreuc "github.com/instabrief/instabrief/internal/usecase/explore"
	summaryuc "github.com/instabrief/instabrief/internal/usecase/summary"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the instabrief SDK entry point.
type Client struct {
	store         db.Store
	docSvc        *documentuc.Service
	exploreSvc    *exploreuc.Service
	summarizer    domain.Summarizer
	summaryLength int
}

// New creates an instabrief Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix:     "instabrief:",
		summaryLength: 30,
		pageSize:      20,
		maxPageSize:   100,
		logger:        zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("instabrief: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("instabrief: create redis store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("instabrief: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	summarizer := summaryuc.New(cfg.provider, cfg.logger)

	docRepo := documentrepo.New(store, cfg.keyPrefix)
	docSvc := documentuc.New(
		docRepo, summarizer, cfg.summaryLength,
		cfg.pageSize, cfg.maxPageSize, cfg.logger,
	)
	exploreSvc := exploreuc.New(docRepo)

	return &Client{
		store:         store,
		docSvc:        docSvc,
		exploreSvc:    exploreSvc,
		summarizer:    summarizer,
		summaryLength: cfg.summaryLength,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Ingest stores a new document. When no tags are given they are derived
// from the title and content; both summaries are generated on the spot.
func (c *Client) Ingest(ctx context.Context, title, content string, tags ...string) (Document, error) {
	doc, err := c.docSvc.Ingest(ctx, documentuc.IngestRequest{
		Title:   title,
		Content: content,
		Tags:    tags,
	})
	if err != nil {
		return Document{}, err
	}
	return documentFromDomain(doc), nil
}

// Document returns a stored document by ID.
func (c *Client) Document(ctx context.Context, id string) (Document, error) {
	doc, err := c.docSvc.Get(ctx, id)
	if err != nil {
		return Document{}, err
	}
	return documentFromDomain(doc), nil
}

// Documents returns a page of documents and the cursor for the next
// page. An empty cursor starts from the beginning; an empty returned
// cursor means the last page.
func (c *Client) Documents(ctx context.Context, cursor string, limit int) ([]Document, string, error) {
	docs, next, err := c.docSvc.List(ctx, cursor, limit)
	if err != nil {
		return nil, "", err
	}
	out := make([]Document, len(docs))
	for i, d := range docs {
		out[i] = documentFromDomain(d)
	}
	return out, next, nil
}

// DeleteDocument removes a document by ID.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.docSvc.Delete(ctx, id)
}

// Summarize generates a summary of arbitrary text. By default the
// summary is extractive at the client's configured length.
func (c *Client) Summarize(ctx context.Context, text string, opts ...SummarizeOption) (string, error) {
	cfg := summarizeConfig{typ: domain.SummaryExtractive, length: 0}
	for _, o := range opts {
		o(&cfg)
	}
	length := cfg.length
	if length == 0 {
		length = c.summaryLength
	}
	return c.summarizer.Summarize(ctx, text, cfg.typ, length)
}
