package summary

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/instabrief/instabrief/internal/domain"
	"github.com/instabrief/instabrief/internal/metrics"
)

// Length targets: percentage maps linearly onto word/sentence budgets.
const (
	minTargetWords     = 50
	maxTargetWords     = 750
	minTargetSentences = 2
	maxTargetSentences = 30

	// Documents under this word count get the brief-document summary.
	briefWordFloor = 10
)

// Service generates document summaries. The extractive path is pure and
// deterministic; the abstractive path calls the configured provider and
// falls back to extractive output when the provider is missing or fails.
type Service struct {
	provider Provider
	logger   *zap.Logger
}

// New creates a summary service. provider may be nil (extractive-only).
func New(provider Provider, logger *zap.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Summarize produces a summary of text. lengthPct (1-100) scales the
// target size linearly; values outside the range are clamped. Empty or
// tiny input yields a placeholder summary, never an error.
func (s *Service) Summarize(ctx context.Context, text string, typ domain.SummaryType, lengthPct int) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "No content available for summarization.", nil
	}

	if lengthPct < 1 {
		lengthPct = 1
	}
	if lengthPct > 100 {
		lengthPct = 100
	}

	words := strings.Fields(text)
	if len(words) < briefWordFloor {
		return briefSummary(text), nil
	}

	if typ == domain.SummaryAbstractive {
		return s.abstractive(ctx, text, lengthPct), nil
	}
	return extractiveSummary(text, targetWords(lengthPct, len(words))), nil
}

// targetWords interpolates the word budget: 10% ≈ 120 words, 100% = 750,
// never more than 80% of the original.
func targetWords(pct, totalWords int) int {
	t := minTargetWords + pct*(maxTargetWords-minTargetWords)/100
	if limit := totalWords * 8 / 10; t > limit {
		t = limit
	}
	if t < 1 {
		t = 1
	}
	return t
}

// targetSentences interpolates the sentence budget for abstractive
// summaries, capped at 80% of the original sentence count.
func targetSentences(pct, totalSentences int) int {
	t := minTargetSentences + pct*(maxTargetSentences-minTargetSentences)/100
	if limit := totalSentences * 8 / 10; t > limit {
		t = limit
	}
	if t < 1 {
		t = 1
	}
	return t
}

func (s *Service) abstractive(ctx context.Context, text string, pct int) string {
	sentences := splitSentences(text)
	target := targetSentences(pct, len(sentences))

	if s.provider != nil {
		out, err := s.provider.Summarize(ctx, text, target)
		if err == nil && strings.TrimSpace(out) != "" {
			return strings.TrimSpace(out)
		}
		if err != nil {
			s.logger.Warn("abstractive provider failed, falling back to extractive",
				zap.Error(err))
		}
	}

	metrics.SummaryFallbacksTotal.Inc()
	return extractiveSummary(text, targetWords(pct, len(strings.Fields(text))))
}

func briefSummary(text string) string {
	const maxPreview = 200
	if len(text) > maxPreview {
		return "This is a brief document containing: " + text[:maxPreview] + "..."
	}
	return "This is a brief document containing: " + text
}
