package document

import (
	"context"

	domdoc "github.com/instabrief/instabrief/internal/domain/document"
)

// Repository is the storage consumer interface for documents (ISP).
type Repository interface {
	Save(ctx context.Context, doc domdoc.Document) error
	Get(ctx context.Context, id string) (domdoc.Document, error)
	List(ctx context.Context) ([]domdoc.Document, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
