package document

import (
	"fmt"
	"time"
)

// MaxContentSize is the maximum document content size in bytes.
const MaxContentSize = 163840 // 160KB

// Document is the document aggregate (immutable value object).
// Title, content, tags and timestamps are read-only to the ranking
// subsystem; only ingest constructs new values.
type Document struct {
	id                 string
	title              string
	content            string
	tags               []string
	summaryExtractive  string
	summaryAbstractive string
	createdAt          time.Time
}

// New validates and creates a Document.
// ID and title are required; content is optional but capped at 160KB.
func New(id, title, content string, tags []string, createdAt time.Time) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if len(id) > 256 {
		return Document{}, fmt.Errorf("document ID too long (max 256)")
	}
	if title == "" {
		return Document{}, fmt.Errorf("title is required")
	}
	if len(content) > MaxContentSize {
		return Document{}, fmt.Errorf("content too large (max %d bytes)", MaxContentSize)
	}

	return Document{
		id:        id,
		title:     title,
		content:   content,
		tags:      cloneTags(tags),
		createdAt: createdAt,
	}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
// A zero createdAt marks a missing or unparseable stored date.
func Reconstruct(
	id, title, content string, tags []string,
	summaryExtractive, summaryAbstractive string, createdAt time.Time,
) Document {
	return Document{
		id:                 id,
		title:              title,
		content:            content,
		tags:               tags,
		summaryExtractive:  summaryExtractive,
		summaryAbstractive: summaryAbstractive,
		createdAt:          createdAt,
	}
}

// ID returns the document identifier.
func (d Document) ID() string { return d.id }

// Title returns the document title (typically the uploaded filename).
func (d Document) Title() string { return d.title }

// Content returns the extracted text content.
func (d Document) Content() string { return d.content }

// Tags returns the ordered tag sequence.
func (d Document) Tags() []string { return d.tags }

// SummaryExtractive returns the stored extractive summary.
func (d Document) SummaryExtractive() string { return d.summaryExtractive }

// SummaryAbstractive returns the stored abstractive summary.
func (d Document) SummaryAbstractive() string { return d.summaryAbstractive }

// CreatedAt returns the creation timestamp. Zero means unknown.
func (d Document) CreatedAt() time.Time { return d.createdAt }

// WithSummaries returns a copy with both summaries set.
func (d Document) WithSummaries(extractive, abstractive string) Document {
	c := d
	c.summaryExtractive = extractive
	c.summaryAbstractive = abstractive
	return c
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	c := make([]string, len(tags))
	copy(c, tags)
	return c
}
