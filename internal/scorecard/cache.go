package scorecard

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/common/metrics"
	"admission-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

const pageKeyPrefix = "scorecard:page:"

// Searcher is the collaborator contract shared by every backend in this package.
type Searcher interface {
	Search(ctx context.Context, q models.SearchQuery) (*models.SearchPage, error)
}

// CachedSearcher memoizes pages in Redis. Redis failures are logged and the
// call falls through to the wrapped searcher; errors are never cached.
type CachedSearcher struct {
	next   Searcher
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedSearcher(next Searcher, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedSearcher {
	return &CachedSearcher{
		next:   next,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "scorecard-cache"}),
	}
}

func (c *CachedSearcher) Search(ctx context.Context, q models.SearchQuery) (*models.SearchPage, error) {
	key, err := PageKey(q)
	if err != nil {
		return c.next.Search(ctx, q)
	}

	val, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var page models.SearchPage
		if jsonErr := json.Unmarshal(val, &page); jsonErr == nil {
			metrics.ScorecardCacheLookups.WithLabelValues("hit").Inc()
			return &page, nil
		}
		metrics.ScorecardCacheLookups.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.ScorecardCacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.ScorecardCacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("page cache read failed", map[string]interface{}{"error": err.Error()})
	}

	page, err := c.next.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(page); err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("page cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return page, nil
}

// PageKey derives a stable cache key from the full query, page included.
func PageKey(q models.SearchQuery) (string, error) {
	data, err := json.Marshal(q)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return pageKeyPrefix + hex.EncodeToString(sum[:]), nil
}
