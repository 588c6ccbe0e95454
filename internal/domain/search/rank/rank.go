package rank

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/instabrief/instabrief/internal/domain/category"
	"github.com/instabrief/instabrief/internal/domain/document"
	"github.com/instabrief/instabrief/internal/domain/search/facets"
	"github.com/instabrief/instabrief/internal/domain/search/result"
	"github.com/instabrief/instabrief/internal/domain/search/score"
	"github.com/instabrief/instabrief/internal/domain/search/sortkey"
)

// FilterAndSort runs the explore pipeline over an in-memory collection:
// relevance scoring, facet filtering, and stable ordering. Pure function;
// the input slice and its documents are never mutated.
//
// With a query, documents scoring 0 are dropped. With an empty query
// every document passes through unscored. The asymmetry is deliberate:
// zero-relevance documents hide only while actively searching.
func FilterAndSort(
	docs []document.Document, query string, sel facets.Selection, key sortkey.Key,
) []result.ScoredDocument {
	hasQuery := strings.TrimSpace(query) != ""

	out := make([]result.ScoredDocument, 0, len(docs))
	for _, doc := range docs {
		if !matchesFacets(doc, sel) {
			continue
		}
		if hasQuery {
			s, ok := score.Score(doc, query)
			if !ok || s == 0 {
				continue
			}
			out = append(out, result.New(doc, s))
		} else {
			out = append(out, result.Unscored(doc))
		}
	}

	sortResults(out, key, hasQuery)
	return out
}

// matchesFacets applies the facet conjunction; each facet is any-of inside.
func matchesFacets(doc document.Document, sel facets.Selection) bool {
	if sel.IsEmpty() {
		return true
	}

	if len(sel.Categories()) > 0 || len(sel.FileTypes()) > 0 {
		cat := category.Classify(doc)
		if len(sel.Categories()) > 0 && !containsCategory(sel.Categories(), cat) {
			return false
		}
		// The file-type facet shares the classifier with the category
		// facet; preserved as an independent dimension.
		if len(sel.FileTypes()) > 0 && !containsCategory(sel.FileTypes(), cat) {
			return false
		}
	}

	if len(sel.Tags()) > 0 && !matchesTagFacet(doc.Tags(), sel.Tags()) {
		return false
	}

	if day := normalizeDay(sel.Day()); day != "" {
		created := doc.CreatedAt()
		// Missing or unparseable dates are excluded from date-filtered
		// results rather than failing the whole operation.
		if created.IsZero() {
			return false
		}
		if created.UTC().Format("2006-01-02") != day {
			return false
		}
	}

	return true
}

// matchesTagFacet reports whether any selected tag is a substring of any
// document tag (case-insensitive).
func matchesTagFacet(docTags, selected []string) bool {
	for _, want := range selected {
		w := strings.ToLower(want)
		for _, have := range docTags {
			if strings.Contains(strings.ToLower(have), w) {
				return true
			}
		}
	}
	return false
}

func containsCategory(cc []category.Category, c category.Category) bool {
	for _, v := range cc {
		if v == c {
			return true
		}
	}
	return false
}

// normalizeDay trims an ISO-8601 timestamp down to its calendar day.
func normalizeDay(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// sortResults orders results in place. All sorts are stable: ties retain
// prior relative order.
func sortResults(rs []result.ScoredDocument, key sortkey.Key, hasQuery bool) {
	switch key {
	case sortkey.Title:
		cl := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(rs, func(i, j int) bool {
			return cl.CompareString(rs[i].Document().Title(), rs[j].Document().Title()) < 0
		})
	case sortkey.Date:
		sortByDateDesc(rs)
	case sortkey.Relevance:
		fallthrough
	default:
		if hasQuery {
			sort.SliceStable(rs, func(i, j int) bool {
				return rs[i].Score() > rs[j].Score()
			})
		} else {
			sortByDateDesc(rs)
		}
	}
}

func sortByDateDesc(rs []result.ScoredDocument) {
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].Document().CreatedAt().After(rs[j].Document().CreatedAt())
	})
}
