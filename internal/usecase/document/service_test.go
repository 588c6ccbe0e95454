package document

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/instabrief/instabrief/internal/domain"
	domdoc "github.com/instabrief/instabrief/internal/domain/document"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	saved   []domdoc.Document
	docs    []domdoc.Document
	saveErr error
	listErr error
	getFn   func(id string) (domdoc.Document, error)
	delFn   func(id string) error
}

func (m *mockRepo) Save(_ context.Context, doc domdoc.Document) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, doc)
	return nil
}

func (m *mockRepo) Get(_ context.Context, id string) (domdoc.Document, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return domdoc.Document{}, domain.ErrDocumentNotFound
}

func (m *mockRepo) List(_ context.Context) ([]domdoc.Document, error) {
	return m.docs, m.listErr
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	if m.delFn != nil {
		return m.delFn(id)
	}
	return nil
}

func (m *mockRepo) Count(_ context.Context) (int, error) {
	return len(m.docs), nil
}

type mockSummarizer struct {
	outs  map[domain.SummaryType]string
	err   error
	calls int
}

func (m *mockSummarizer) Summarize(_ context.Context, _ string, typ domain.SummaryType, _ int) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.outs[typ], nil
}

func newTestService(repo *mockRepo, sum *mockSummarizer) *Service {
	var s domain.Summarizer
	if sum != nil {
		s = sum
	}
	svc := New(repo, s, 30, 20, 100, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func listDocs(t *testing.T, n int) []domdoc.Document {
	t.Helper()
	docs := make([]domdoc.Document, n)
	for i := range docs {
		docs[i] = domdoc.Reconstruct(
			"doc-"+string(rune('a'+i)), "Title", "", nil, "", "", time.Time{})
	}
	return docs
}

func TestIngest_GeneratesIDAndTimestamp(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo, nil)

	doc, err := svc.Ingest(context.Background(), IngestRequest{
		Title:   "quarterly_report.pdf",
		Content: "Revenue grew steadily across all regions this quarter.",
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if doc.ID() == "" {
		t.Error("expected generated ID")
	}
	if !doc.CreatedAt().Equal(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("createdAt = %v", doc.CreatedAt())
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected 1 save, got %d", len(repo.saved))
	}
}

func TestIngest_AutoTagsWhenNoneProvided(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo, nil)

	doc, err := svc.Ingest(context.Background(), IngestRequest{
		Title:   "annual_budget_review.pdf",
		Content: "Numbers.",
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	want := []string{"Annual", "Budget", "Review"}
	if len(doc.Tags()) != len(want) {
		t.Fatalf("tags = %v, want %v", doc.Tags(), want)
	}
	for i := range want {
		if doc.Tags()[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, doc.Tags()[i], want[i])
		}
	}
}

func TestIngest_KeepsProvidedTags(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo, nil)

	doc, err := svc.Ingest(context.Background(), IngestRequest{
		Title:   "report.pdf",
		Content: "Body.",
		Tags:    []string{"Custom", "Tags"},
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(doc.Tags()) != 2 || doc.Tags()[0] != "Custom" {
		t.Errorf("tags = %v", doc.Tags())
	}
}

func TestIngest_AttachesSummaries(t *testing.T) {
	repo := &mockRepo{}
	sum := &mockSummarizer{outs: map[domain.SummaryType]string{
		domain.SummaryExtractive:  "extractive out",
		domain.SummaryAbstractive: "abstractive out",
	}}
	svc := newTestService(repo, sum)

	doc, err := svc.Ingest(context.Background(), IngestRequest{
		Title:   "report.pdf",
		Content: strings.Repeat("A sentence about business results. ", 20),
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if doc.SummaryExtractive() != "extractive out" {
		t.Errorf("extractive = %q", doc.SummaryExtractive())
	}
	if doc.SummaryAbstractive() != "abstractive out" {
		t.Errorf("abstractive = %q", doc.SummaryAbstractive())
	}
	if sum.calls != 2 {
		t.Errorf("summarizer called %d times, want 2", sum.calls)
	}
}

func TestIngest_SummaryFailureIsNotFatal(t *testing.T) {
	repo := &mockRepo{}
	sum := &mockSummarizer{err: errors.New("provider down")}
	svc := newTestService(repo, sum)

	doc, err := svc.Ingest(context.Background(), IngestRequest{
		Title:   "report.pdf",
		Content: "Body text for the report document here today.",
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if doc.SummaryExtractive() != "" || doc.SummaryAbstractive() != "" {
		t.Errorf("expected empty summaries, got %q / %q",
			doc.SummaryExtractive(), doc.SummaryAbstractive())
	}
	if len(repo.saved) != 1 {
		t.Errorf("expected document saved despite summary failure")
	}
}

func TestIngest_ValidationError(t *testing.T) {
	svc := newTestService(&mockRepo{}, nil)

	_, err := svc.Ingest(context.Background(), IngestRequest{Title: ""})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestIngest_SaveErrorPropagates(t *testing.T) {
	boom := errors.New("store down")
	svc := newTestService(&mockRepo{saveErr: boom}, nil)

	_, err := svc.Ingest(context.Background(), IngestRequest{Title: "t", Content: "c"})
	if !errors.Is(err, boom) {
		t.Errorf("expected store error, got %v", err)
	}
}

func TestList_Pagination(t *testing.T) {
	repo := &mockRepo{docs: listDocs(t, 5)}
	svc := newTestService(repo, nil)
	ctx := context.Background()

	page1, cursor, err := svc.List(ctx, "", 2)
	if err != nil {
		t.Fatalf("List page 1: %v", err)
	}
	if len(page1) != 2 || cursor != "2" {
		t.Fatalf("page1 len=%d cursor=%q", len(page1), cursor)
	}

	page2, cursor, err := svc.List(ctx, cursor, 2)
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(page2) != 2 || cursor != "4" {
		t.Fatalf("page2 len=%d cursor=%q", len(page2), cursor)
	}

	page3, cursor, err := svc.List(ctx, cursor, 2)
	if err != nil {
		t.Fatalf("List page 3: %v", err)
	}
	if len(page3) != 1 || cursor != "" {
		t.Fatalf("page3 len=%d cursor=%q", len(page3), cursor)
	}
}

func TestList_DefaultAndMaxLimit(t *testing.T) {
	repo := &mockRepo{docs: listDocs(t, 25)}
	svc := New(repo, nil, 30, 20, 22, zap.NewNop())
	ctx := context.Background()

	docs, _, err := svc.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 20 {
		t.Errorf("default page size: got %d, want 20", len(docs))
	}

	docs, _, err = svc.List(ctx, "", 1000)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 22 {
		t.Errorf("max page size: got %d, want 22", len(docs))
	}
}

func TestList_InvalidCursor(t *testing.T) {
	svc := newTestService(&mockRepo{}, nil)

	for _, cursor := range []string{"abc", "-1", "1.5"} {
		_, _, err := svc.List(context.Background(), cursor, 10)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("cursor %q: expected ErrInvalidRequest, got %v", cursor, err)
		}
	}
}

func TestList_CursorPastEnd(t *testing.T) {
	repo := &mockRepo{docs: listDocs(t, 3)}
	svc := newTestService(repo, nil)

	docs, cursor, err := svc.List(context.Background(), "10", 5)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 0 || cursor != "" {
		t.Errorf("expected empty page, got %d docs cursor=%q", len(docs), cursor)
	}
}

func TestDelete_PassesThroughNotFound(t *testing.T) {
	repo := &mockRepo{delFn: func(string) error { return domain.ErrDocumentNotFound }}
	svc := newTestService(repo, nil)

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}
