package explore

import (
	"context"

	domdoc "github.com/instabrief/instabrief/internal/domain/document"
)

// Repository is the storage consumer interface for search (ISP).
type Repository interface {
	List(ctx context.Context) ([]domdoc.Document, error)
}
