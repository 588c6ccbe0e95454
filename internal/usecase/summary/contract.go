package summary

import "context"

// Provider generates an abstractive summary of text via an external
// model, targeting roughly the given number of sentences.
type Provider interface {
	Summarize(ctx context.Context, text string, sentences int) (string, error)
}
