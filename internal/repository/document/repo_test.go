package document

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/instabrief/instabrief/internal/domain"
	domdoc "github.com/instabrief/instabrief/internal/domain/document"
)

const testPrefix = "instabrief:"

func mustDoc(t *testing.T, id, title string, tags []string) domdoc.Document {
	t.Helper()
	created := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	doc, err := domdoc.New(id, title, "Body of "+title+".", tags, created)
	if err != nil {
		t.Fatalf("New document: %v", err)
	}
	return doc
}

func TestRepo_SaveAndGet_RoundTrip(t *testing.T) {
	repo := New(newMemStore(), testPrefix)
	ctx := context.Background()

	doc := mustDoc(t, "doc-1", "Quarterly Report", []string{"Finance", "Q2"})
	doc = doc.WithSummaries("short extract", "model summary")

	if err := repo.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx, "doc-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID() != "doc-1" || got.Title() != "Quarterly Report" {
		t.Errorf("got id=%q title=%q", got.ID(), got.Title())
	}
	if !reflect.DeepEqual(got.Tags(), []string{"Finance", "Q2"}) {
		t.Errorf("tags = %v", got.Tags())
	}
	if got.SummaryExtractive() != "short extract" || got.SummaryAbstractive() != "model summary" {
		t.Errorf("summaries = %q / %q", got.SummaryExtractive(), got.SummaryAbstractive())
	}
	if !got.CreatedAt().Equal(doc.CreatedAt()) {
		t.Errorf("createdAt = %v, want %v", got.CreatedAt(), doc.CreatedAt())
	}
}

func TestRepo_Get_NotFound(t *testing.T) {
	repo := New(newMemStore(), testPrefix)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestRepo_List_SortedByID(t *testing.T) {
	repo := New(newMemStore(), testPrefix)
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		if err := repo.Save(ctx, mustDoc(t, id, "Title "+id, nil)); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}

	docs, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	for i, want := range []string{"a", "b", "c"} {
		if docs[i].ID() != want {
			t.Errorf("docs[%d].ID = %q, want %q", i, docs[i].ID(), want)
		}
	}
}

func TestRepo_List_Empty(t *testing.T) {
	repo := New(newMemStore(), testPrefix)

	docs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected no documents, got %d", len(docs))
	}
}

func TestRepo_List_SkipsVanishedKeys(t *testing.T) {
	mock := &mockStore{
		scanFn: func(_ context.Context, _ string) ([]string, error) {
			return []string{testPrefix + "doc:gone", testPrefix + "doc:here"}, nil
		},
		hgetAllMultiFn: func(_ context.Context, _ []string) ([]map[string]string, error) {
			return []map[string]string{
				{},
				{fieldID: "here", fieldTitle: "Here"},
			}, nil
		},
	}
	repo := New(mock, testPrefix)

	docs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 1 || docs[0].ID() != "here" {
		t.Errorf("docs = %v", docs)
	}
}

func TestRepo_Delete(t *testing.T) {
	repo := New(newMemStore(), testPrefix)
	ctx := context.Background()

	if err := repo.Save(ctx, mustDoc(t, "doc-1", "Title", nil)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Delete(ctx, "doc-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "doc-1"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound after delete, got %v", err)
	}
}

func TestRepo_Delete_NotFound(t *testing.T) {
	repo := New(newMemStore(), testPrefix)

	err := repo.Delete(context.Background(), "missing")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestRepo_Count(t *testing.T) {
	repo := New(newMemStore(), testPrefix)
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		if err := repo.Save(ctx, mustDoc(t, id, "Title "+id, nil)); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestRepo_StoreErrorsWrapped(t *testing.T) {
	boom := errors.New("connection reset")
	mock := &mockStore{
		scanFn: func(_ context.Context, _ string) ([]string, error) {
			return nil, boom
		},
	}
	repo := New(mock, testPrefix)

	if _, err := repo.List(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
	if _, err := repo.Count(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestParseHashFields_MalformedData(t *testing.T) {
	doc := parseHashFields("doc-1", map[string]string{
		fieldTitle:     "Title",
		fieldTags:      "{not json",
		fieldCreatedAt: "yesterday",
	})

	if doc.Title() != "Title" {
		t.Errorf("title = %q", doc.Title())
	}
	if len(doc.Tags()) != 0 {
		t.Errorf("expected no tags, got %v", doc.Tags())
	}
	if !doc.CreatedAt().IsZero() {
		t.Errorf("expected zero createdAt, got %v", doc.CreatedAt())
	}
}
