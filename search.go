package instabrief

import (
	"context"
	"fmt"
	"time"

	"github.com/instabrief/instabrief/internal/domain"
	"github.com/instabrief/instabrief/internal/domain/category"
	domdoc "github.com/instabrief/instabrief/internal/domain/document"
	"github.com/instabrief/instabrief/internal/domain/search/facets"
	"github.com/instabrief/instabrief/internal/domain/search/sortkey"
)

// Document is the public document representation.
type Document struct {
	ID                 string
	Title              string
	Content            string
	Tags               []string
	Category           string
	SummaryExtractive  string
	SummaryAbstractive string
	CreatedAt          time.Time
}

// Result is one search hit. Score is meaningful only when Scored is
// true; listings without a query return unscored results.
type Result struct {
	Document Document
	Score    int
	Scored   bool
}

// CategoryCount is one category facet bucket.
type CategoryCount struct {
	Category string
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

// Categories returns the fixed category names in precedence order.
func Categories() []string {
	all := category.All()
	out := make([]string, len(all))
	for i, c := range all {
		out[i] = string(c)
	}
	return out
}

// SearchOption configures a search call.
type SearchOption func(*searchConfig)

type searchConfig struct {
	categories []string
	fileTypes  []string
	tags       []string
	day        string
	sort       string
}

// InCategories restricts results to the given categories.
func InCategories(names ...string) SearchOption {
	return func(c *searchConfig) {
		c.categories = append(c.categories, names...)
	}
}

// InFileTypes restricts results by the file-type facet. File types use
// the same classification as categories but filter independently.
func InFileTypes(names ...string) SearchOption {
	return func(c *searchConfig) {
		c.fileTypes = append(c.fileTypes, names...)
	}
}

// WithTags keeps documents whose tags contain any of the given
// substrings (case-insensitive).
func WithTags(tags ...string) SearchOption {
	return func(c *searchConfig) {
		c.tags = append(c.tags, tags...)
	}
}

// OnDay keeps documents created on the given calendar day
// (ISO-8601 date or timestamp; only the date part is significant).
func OnDay(day string) SearchOption {
	return func(c *searchConfig) {
		c.day = day
	}
}

// SortBy sets the result ordering: "relevance" (default), "date" or
// "title".
func SortBy(key string) SearchOption {
	return func(c *searchConfig) {
		c.sort = key
	}
}

// Search runs a query over the stored corpus. An empty query returns
// the full (filtered) corpus without relevance scores.
func (c *Client) Search(ctx context.Context, query string, opts ...SearchOption) ([]Result, error) {
	var cfg searchConfig
	for _, o := range opts {
		o(&cfg)
	}

	categories, err := toCategories(cfg.categories)
	if err != nil {
		return nil, err
	}
	fileTypes, err := toCategories(cfg.fileTypes)
	if err != nil {
		return nil, err
	}

	key := sortkey.Relevance
	if cfg.sort != "" {
		key = sortkey.Key(cfg.sort)
		if !key.IsValid() {
			return nil, fmt.Errorf("instabrief: unknown sort %q: %w", cfg.sort, domain.ErrInvalidRequest)
		}
	}

	sel := facets.New(categories, fileTypes, cfg.tags, cfg.day)

	results, err := c.exploreSvc.Search(ctx, query, sel, key)
	if err != nil {
		return nil, err
	}

	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = Result{
			Document: documentFromDomain(r.Document()),
			Score:    r.Score(),
			Scored:   r.HasScore(),
		}
	}
	return out, nil
}

// Overview classifies the whole corpus and aggregates category and tag
// counts.
func (c *Client) Overview(ctx context.Context) (Overview, error) {
	ov, err := c.exploreSvc.Overview(ctx)
	if err != nil {
		return Overview{}, err
	}

	out := Overview{
		Total:      ov.Total,
		Categories: make([]CategoryCount, len(ov.Categories)),
		Tags:       make([]TagCount, len(ov.Tags)),
	}
	for i, cc := range ov.Categories {
		out.Categories[i] = CategoryCount{Category: string(cc.Category), Count: cc.Count}
	}
	for i, tc := range ov.Tags {
		out.Tags[i] = TagCount{Tag: tc.Tag, Count: tc.Count}
	}
	return out, nil
}

// SummarizeOption configures a Summarize call.
type SummarizeOption func(*summarizeConfig)

type summarizeConfig struct {
	typ    domain.SummaryType
	length int
}

// Abstractive requests a model-written summary; without a configured
// provider it falls back to extractive output.
func Abstractive() SummarizeOption {
	return func(c *summarizeConfig) {
		c.typ = domain.SummaryAbstractive
	}
}

// Length sets the summary length percentage (1-100).
func Length(pct int) SummarizeOption {
	return func(c *summarizeConfig) {
		c.length = pct
	}
}

func toCategories(names []string) ([]category.Category, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]category.Category, len(names))
	for i, name := range names {
		cat := category.Category(name)
		if !cat.IsValid() {
			return nil, fmt.Errorf("instabrief: unknown category %q: %w", name, domain.ErrInvalidRequest)
		}
		out[i] = cat
	}
	return out, nil
}

func documentFromDomain(d domdoc.Document) Document {
	return Document{
		ID:                 d.ID(),
		Title:              d.Title(),
		Content:            d.Content(),
		Tags:               d.Tags(),
		Category:           string(category.Classify(d)),
		SummaryExtractive:  d.SummaryExtractive(),
		SummaryAbstractive: d.SummaryAbstractive(),
		CreatedAt:          d.CreatedAt(),
	}
}
