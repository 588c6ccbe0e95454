// Package tagging derives descriptive tags for documents from their
// filename and content.
package tagging

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxTags bounds the number of generated tags per document.
const maxTags = 5

// businessKeywords are added as tags when present in the content.
var businessKeywords = []string{
	"business", "report", "analysis", "strategy",
	"performance", "financial", "quarterly", "annual",
}

var titleCaser = cases.Title(language.English)

// Generate derives up to five tags from the filename and content.
// Filename parts longer than two characters become title-cased tags,
// then business keywords found in the content are appended. Documents
// yielding no tags get the defaults [Document, Analysis].
func Generate(content, filename string) []string {
	var tags []string
	seen := make(map[string]bool)

	add := func(tag string) {
		if len(tags) >= maxTags {
			return
		}
		key := strings.ToLower(tag)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		tags = append(tags, tag)
	}

	for _, part := range splitFilename(filename) {
		if len(part) > 2 {
			add(titleCaser.String(part))
		}
	}

	lower := strings.ToLower(content)
	for _, kw := range businessKeywords {
		if strings.Contains(lower, kw) {
			add(titleCaser.String(kw))
		}
	}

	if len(tags) == 0 {
		return []string{"Document", "Analysis"}
	}
	return tags
}

// splitFilename breaks a filename into words, dropping the extension
// and splitting on separators and spaces.
func splitFilename(filename string) []string {
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		filename = filename[:idx]
	}
	return strings.FieldsFunc(filename, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	})
}
