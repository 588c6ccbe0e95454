package facets

import "github.com/instabrief/instabrief/internal/domain/category"

// Selection is an immutable set of filter dimensions applied
// independently before sorting. The zero value filters nothing.
//
// Categories and FileTypes are separate facets that share one
// classifier. The upstream UI exposes both; they are kept independent
// here rather than merged.
type Selection struct {
	categories []category.Category
	fileTypes  []category.Category
	tags       []string
	day        string
}

// New creates a facet selection. day is an ISO-8601 date or timestamp;
// only the calendar-day prefix is significant.
func New(categories, fileTypes []category.Category, tags []string, day string) Selection {
	return Selection{
		categories: cloneCategories(categories),
		fileTypes:  cloneCategories(fileTypes),
		tags:       cloneStrings(tags),
		day:        day,
	}
}

// Categories returns the selected category facet values.
func (s Selection) Categories() []category.Category { return s.categories }

// FileTypes returns the selected file-type facet values.
func (s Selection) FileTypes() []category.Category { return s.fileTypes }

// Tags returns the selected tag facet values.
func (s Selection) Tags() []string { return s.tags }

// Day returns the selected calendar day, empty when inactive.
func (s Selection) Day() string { return s.day }

// IsEmpty reports whether no facet is active.
func (s Selection) IsEmpty() bool {
	return len(s.categories) == 0 && len(s.fileTypes) == 0 && len(s.tags) == 0 && s.day == ""
}

func cloneCategories(cc []category.Category) []category.Category {
	if cc == nil {
		return nil
	}
	c := make([]category.Category, len(cc))
	copy(c, cc)
	return c
}

func cloneStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	c := make([]string, len(ss))
	copy(c, ss)
	return c
}
