// Package explore implements search over the document corpus: scored,
// filtered and sorted result lists plus corpus-wide facet overviews.
package explore

import (
	"context"
	"fmt"
	"sort"

	"github.com/instabrief/instabrief/internal/domain/category"
	"github.com/instabrief/instabrief/internal/domain/search/facets"
	"github.com/instabrief/instabrief/internal/domain/search/rank"
	"github.com/instabrief/instabrief/internal/domain/search/result"
	"github.com/instabrief/instabrief/internal/domain/search/sortkey"
)

// Service runs searches against the stored corpus.
type Service struct {
	repo Repository
}

// New creates an explore service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search loads the corpus and returns scored, filtered, sorted results.
func (s *Service) Search(ctx context.Context, query string, sel facets.Selection, key sortkey.Key) ([]result.ScoredDocument, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return rank.FilterAndSort(docs, query, sel, key), nil
}

// CategoryCount is one category facet bucket.
type CategoryCount struct {
	Category category.Category
	Count    int
}

// TagCount is one tag facet bucket.
type TagCount struct {
	Tag   string
	Count int
}

// Overview summarizes the corpus for facet pickers.
type Overview struct {
	Total      int
	Categories []CategoryCount
	Tags       []TagCount
}

// Overview classifies every document and aggregates category and tag
// counts. Categories are listed in their fixed precedence order; tags
// by descending count, then alphabetically.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("load corpus: %w", err)
	}

	catCounts := make(map[category.Category]int)
	tagCounts := make(map[string]int)
	for _, doc := range docs {
		catCounts[category.Classify(doc)]++
		for _, tag := range doc.Tags() {
			tagCounts[tag]++
		}
	}

	ov := Overview{Total: len(docs)}
	for _, c := range category.All() {
		if n := catCounts[c]; n > 0 {
			ov.Categories = append(ov.Categories, CategoryCount{Category: c, Count: n})
		}
	}

	for tag, n := range tagCounts {
		ov.Tags = append(ov.Tags, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(ov.Tags, func(i, j int) bool {
		if ov.Tags[i].Count != ov.Tags[j].Count {
			return ov.Tags[i].Count > ov.Tags[j].Count
		}
		return ov.Tags[i].Tag < ov.Tags[j].Tag
	})

	return ov, nil
}
