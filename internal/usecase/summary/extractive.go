package summary

import (
	"sort"
	"strings"
)

// stopwords excluded from frequency scoring.
var stopwords = map[string]bool{
	"this": true, "that": true, "with": true, "from": true, "have": true,
	"were": true, "been": true, "their": true, "they": true, "about": true,
	"which": true, "would": true, "there": true, "these": true, "those": true,
}

// extractiveSummary selects the highest-signal sentences until the word
// budget is met, preserving original sentence order. Deterministic.
func extractiveSummary(text string, targetWords int) string {
	sentences := splitSentences(text)
	if len(sentences) <= 1 {
		return text
	}

	freq := wordFrequencies(text)

	type ranked struct {
		idx   int
		score float64
	}
	rs := make([]ranked, len(sentences))
	for i, sent := range sentences {
		words := strings.Fields(strings.ToLower(sent))
		var sum float64
		for _, w := range words {
			sum += freq[trimWord(w)]
		}
		score := sum / float64(len(words)+1)
		if i == 0 {
			// Lead sentence bias: openings carry the thesis.
			score *= 1.25
		}
		rs[i] = ranked{idx: i, score: score}
	}

	sort.SliceStable(rs, func(i, j int) bool { return rs[i].score > rs[j].score })

	var selected []int
	count := 0
	for _, r := range rs {
		if count >= targetWords {
			break
		}
		selected = append(selected, r.idx)
		count += len(strings.Fields(sentences[r.idx]))
	}

	sort.Ints(selected)

	parts := make([]string, len(selected))
	for i, idx := range selected {
		parts[i] = sentences[idx]
	}
	return strings.Join(parts, " ")
}

// splitSentences splits text on sentence-terminating punctuation,
// keeping the terminator attached and dropping blank fragments.
func splitSentences(text string) []string {
	var out []string
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if sent := strings.TrimSpace(b.String()); hasLetters(sent) {
				out = append(out, sent)
			}
			b.Reset()
		}
	}
	if sent := strings.TrimSpace(b.String()); hasLetters(sent) {
		out = append(out, sent)
	}
	return out
}

func hasLetters(s string) bool {
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r > 127 {
			return true
		}
	}
	return false
}

func wordFrequencies(text string) map[string]float64 {
	freq := make(map[string]float64)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = trimWord(w)
		if len(w) > 3 && !stopwords[w] {
			freq[w]++
		}
	}
	return freq
}

func trimWord(w string) string {
	return strings.Trim(w, ".,;:!?()[]{}\"'")
}
