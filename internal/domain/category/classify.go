package category

import (
	"strings"

	"github.com/instabrief/instabrief/internal/domain/document"
)

// minScore is the weighted-score floor below which classification falls
// back to OtherDocuments.
const minScore = 5

// Classify assigns one category to a document based on weighted keyword
// matches in title, tags, and content. Pure and total: empty or
// unmatched input yields OtherDocuments.
func Classify(doc document.Document) Category {
	title := strings.ToLower(doc.Title())

	for _, fp := range titleFastPath {
		if strings.Contains(title, fp.keyword) {
			return fp.category
		}
	}

	content := strings.ToLower(doc.Content())
	tags := make([]string, len(doc.Tags()))
	for i, t := range doc.Tags() {
		tags[i] = strings.ToLower(t)
	}

	best := OtherDocuments
	bestScore := 0
	for _, c := range all {
		ks, ok := keywordTiers[c]
		if !ok {
			continue
		}
		s := tierScore(ks.high, highWeights, title, tags, content) +
			tierScore(ks.medium, mediumWeights, title, tags, content) +
			tierScore(ks.low, lowWeights, title, tags, content)
		if s > bestScore {
			best = c
			bestScore = s
		}
	}

	if bestScore < minScore {
		return OtherDocuments
	}
	return best
}

// tierScore sums the weighted hits of one keyword tier. A keyword may hit
// title, tag, and content independently; each location scores once.
func tierScore(keywords []string, w tierWeights, title string, tags []string, content string) int {
	score := 0
	for _, kw := range keywords {
		if strings.Contains(title, kw) {
			score += w.title
		}
		for _, t := range tags {
			if strings.Contains(t, kw) {
				score += w.tag
				break
			}
		}
		if strings.Contains(content, kw) {
			score += w.content
		}
	}
	return score
}
