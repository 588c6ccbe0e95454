package instabrief

import (
	"context"

	"go.uber.org/zap"
)

// SummaryProvider generates abstractive summaries via an external
// model. Optional; without one all summaries are extractive.
type SummaryProvider interface {
	Summarize(ctx context.Context, text string, sentences int) (string, error)
}

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs         []string
	password      string
	keyPrefix     string
	provider      SummaryProvider
	summaryLength int
	pageSize      int
	maxPageSize   int
	logger        *zap.Logger
}

// WithRedis sets the Redis server addresses.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
	}
}

// WithPassword sets the database password.
func WithPassword(password string) Option {
	return func(c *clientConfig) {
		c.password = password
	}
}

// WithKeyPrefix namespaces all stored keys (default "instabrief:").
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithSummaryProvider enables abstractive summaries.
func WithSummaryProvider(p SummaryProvider) Option {
	return func(c *clientConfig) {
		c.provider = p
	}
}

// WithSummaryLength sets the default summary length percentage (1-100).
func WithSummaryLength(pct int) Option {
	return func(c *clientConfig) {
		if pct >= 1 && pct <= 100 {
			c.summaryLength = pct
		}
	}
}

// WithPageSize sets the default and maximum page sizes for listings.
func WithPageSize(defaultSize, maxSize int) Option {
	return func(c *clientConfig) {
		if defaultSize > 0 {
			c.pageSize = defaultSize
		}
		if maxSize > 0 {
			c.maxPageSize = maxSize
		}
	}
}

// WithLogger sets the logger (default no-op).
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}
