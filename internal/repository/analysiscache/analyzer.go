// Package analysiscache remembers CV analyses by file content so that
// re-uploading the same CV does not hit the analyzer again.
package analysiscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/jobmatch/internal/db"
	"github.com/kailas-cloud/jobmatch/internal/domain"
)

// DefaultTTL bounds how long a cached analysis is reused.
const DefaultTTL = 7 * 24 * time.Hour

var cacheKeyPrefix = domain.KeyPrefix + "cv_cache:"

// store is the consumer interface for the analysis cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type cachedAnalysis struct {
	CVID     string   `json:"cv_id,omitempty"`
	Keywords []string `json:"keywords"`
}

// CachedAnalyzer caches analyses in a key-value store.
type CachedAnalyzer struct {
	inner      domain.Analyzer
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator. ttl <= 0 selects DefaultTTL.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner domain.Analyzer,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedAnalyzer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedAnalyzer{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Analyze returns a cached analysis of identical CV bytes or calls the inner analyzer.
// Failed analyses are never cached.
func (c *CachedAnalyzer) Analyze(ctx context.Context, cv domain.CV) (domain.Analysis, error) {
	key := cacheKey(cv.Data)

	if a, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return a, nil
	}

	c.incCache("miss")

	a, err := c.inner.Analyze(ctx, cv)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("analyze cv: %w", err)
	}

	c.putToCache(ctx, key, a)
	return a, nil
}

// HealthCheck delegates to the inner analyzer when it supports health checks.
func (c *CachedAnalyzer) HealthCheck(ctx context.Context) error {
	if hc, ok := c.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}

func (c *CachedAnalyzer) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(data []byte) string {
	h := sha256.Sum256(data)
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedAnalyzer) getFromCache(ctx context.Context, key string) (domain.Analysis, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached analysis", zap.String("key", key), zap.Error(err))
		}
		return domain.Analysis{}, false
	}
	if len(data) == 0 {
		return domain.Analysis{}, false
	}

	var rec cachedAnalysis
	if err := json.Unmarshal(data, &rec); err != nil {
		c.logger.Warn("Failed to parse cached analysis", zap.String("key", key), zap.Error(err))
		return domain.Analysis{}, false
	}
	return domain.Analysis{CVID: rec.CVID, Keywords: rec.Keywords}, true
}

func (c *CachedAnalyzer) putToCache(ctx context.Context, key string, a domain.Analysis) {
	data, err := json.Marshal(cachedAnalysis{CVID: a.CVID, Keywords: a.Keywords})
	if err != nil {
		c.logger.Warn("Failed to encode analysis", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache analysis", zap.String("key", key), zap.Error(err))
	}
}
