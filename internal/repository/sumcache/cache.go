// Package sumcache caches generated summaries in a key-value store so
// repeated requests for the same content skip the provider entirely.
package sumcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/instabrief/instabrief/internal/db"
	"github.com/instabrief/instabrief/internal/domain"
)

// store is the consumer interface for the summary cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedSummarizer caches summaries keyed by content and parameters.
type CachedSummarizer struct {
	inner      domain.Summarizer
	store      store
	keyPrefix  string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner domain.Summarizer,
	s store,
	keyPrefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedSummarizer {
	return &CachedSummarizer{
		inner:      inner,
		store:      s,
		keyPrefix:  keyPrefix,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Summarize returns a cached summary or calls the inner summarizer and
// stores the result. Cache failures degrade to a direct call.
func (c *CachedSummarizer) Summarize(ctx context.Context, text string, typ domain.SummaryType, lengthPct int) (string, error) {
	key := c.cacheKey(text, typ, lengthPct)

	if cached, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return cached, nil
	}

	c.incCache("miss")

	out, err := c.inner.Summarize(ctx, text, typ, lengthPct)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}

	c.putToCache(ctx, key, out)
	return out, nil
}

func (c *CachedSummarizer) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedSummarizer) cacheKey(text string, typ domain.SummaryType, lengthPct int) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s", typ, lengthPct, text)))
	return c.keyPrefix + "sum_cache:" + hex.EncodeToString(h[:])
}

func (c *CachedSummarizer) getFromCache(ctx context.Context, key string) (string, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached summary", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	if len(data) == 0 {
		return "", false
	}
	return string(data), true
}

func (c *CachedSummarizer) putToCache(ctx context.Context, key, summary string) {
	if err := c.store.SetWithTTL(ctx, key, []byte(summary), c.ttl); err != nil {
		c.logger.Warn("Failed to cache summary", zap.String("key", key), zap.Error(err))
	}
}
