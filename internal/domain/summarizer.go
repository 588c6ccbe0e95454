package domain

import "context"

// SummaryType selects the summarization strategy.
type SummaryType string

// Summary type constants.
const (
	SummaryExtractive  SummaryType = "extractive"
	SummaryAbstractive SummaryType = "abstractive"
)

// IsValid checks if the type is one of the supported values.
func (t SummaryType) IsValid() bool {
	return t == SummaryExtractive || t == SummaryAbstractive
}

// Summarizer produces a summary of text. lengthPct (1-100) scales the
// target summary size.
type Summarizer interface {
	Summarize(ctx context.Context, text string, typ SummaryType, lengthPct int) (string, error)
}
