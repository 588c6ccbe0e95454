package score

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/instabrief/instabrief/internal/domain/document"
)

// Scoring constants for the accumulation path.
const (
	titleMatchMax   = 50.0 // title substring match, scaled by query/title length ratio
	titleCoverBonus = 20.0 // query covers more than half the title
	tagMatchMax     = 25.0 // per-tag substring match, scaled likewise
	contentHitPts   = 3.0  // per content occurrence
	contentHitCap   = 20.0

	nearExactThreshold = 0.90
)

// Score computes the 0-100 lexical relevance of doc against query.
// The second return is false when the query is empty or blank: no score
// applies and the document is unconditionally included in unfiltered views.
// Pure function of (document, query); never mutates the document.
func Score(doc document.Document, query string) (int, bool) {
	q := normalize(query)
	if q == "" {
		return 0, false
	}

	title := normalize(doc.Title())

	// Exact match shortcut: title or any tag equals the query.
	if title == q {
		return 100, true
	}
	for _, tag := range doc.Tags() {
		if normalize(tag) == q {
			return 100, true
		}
	}

	// Near-exact shortcut: similarity above 0.90 maps into [90,100].
	if sim := Similarity(title, q); sim > nearExactThreshold {
		return int(math.Round(90 + (sim-nearExactThreshold)*100)), true
	}

	var pts float64

	// Length ratios count runes, matching the edit-distance math, so
	// multibyte titles are not over-weighted.
	qLen := float64(utf8.RuneCountInString(q))

	if title != "" && strings.Contains(title, q) {
		titleLen := float64(utf8.RuneCountInString(title))
		pts += titleMatchMax * qLen / titleLen
		if qLen > titleLen*0.5 {
			pts += titleCoverBonus
		}
	}

	for _, tag := range doc.Tags() {
		t := normalize(tag)
		if t != "" && strings.Contains(t, q) {
			pts += tagMatchMax * qLen / float64(utf8.RuneCountInString(t))
		}
	}

	content := strings.ToLower(doc.Content())
	if content != "" {
		if hits := strings.Count(content, q); hits > 0 {
			pts += math.Min(float64(hits)*contentHitPts, contentHitCap)
		}
	}

	s := int(math.Round(pts))
	if s > 100 {
		s = 100
	}
	return s, true
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
