package document

import (
	"encoding/json"
	"time"

	domdoc "github.com/instabrief/instabrief/internal/domain/document"
)

// Hash field names for the document record.
const (
	fieldID                = "id"
	fieldTitle             = "title"
	fieldContent           = "content"
	fieldTags              = "tags"
	fieldSummaryExtractive = "summary_extractive"
	fieldSummaryAbstract   = "summary_abstractive"
	fieldCreatedAt         = "created_at"
)

// buildHashFields converts a domain Document into a flat map[string]string for HSET.
func buildHashFields(doc domdoc.Document) map[string]string {
	m := map[string]string{
		fieldID:      doc.ID(),
		fieldTitle:   doc.Title(),
		fieldContent: doc.Content(),
	}
	if tags := doc.Tags(); len(tags) > 0 {
		if data, err := json.Marshal(tags); err == nil {
			m[fieldTags] = string(data)
		}
	}
	if s := doc.SummaryExtractive(); s != "" {
		m[fieldSummaryExtractive] = s
	}
	if s := doc.SummaryAbstractive(); s != "" {
		m[fieldSummaryAbstract] = s
	}
	if ts := doc.CreatedAt(); !ts.IsZero() {
		m[fieldCreatedAt] = ts.UTC().Format(time.RFC3339)
	}
	return m
}

// parseHashFields converts a flat hash map back into a domain Document.
// Malformed tags or timestamps degrade to empty values rather than errors.
func parseHashFields(id string, m map[string]string) domdoc.Document {
	var tags []string
	if raw := m[fieldTags]; raw != "" {
		_ = json.Unmarshal([]byte(raw), &tags)
	}

	var createdAt time.Time
	if raw := m[fieldCreatedAt]; raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			createdAt = ts
		}
	}

	return domdoc.Reconstruct(
		id,
		m[fieldTitle],
		m[fieldContent],
		tags,
		m[fieldSummaryExtractive],
		m[fieldSummaryAbstract],
		createdAt,
	)
}
