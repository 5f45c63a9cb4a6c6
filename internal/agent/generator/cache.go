package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/redspider/medqa/internal/core/error"
	"github.com/redspider/medqa/internal/metrics"
	logx "github.com/redspider/medqa/pkg/logger"
)

// BackendCache names completions served from the answer cache.
const BackendCache = "cache"

// Cached keeps successful fallback answers in Redis so a repeated question gets
// the same text. Apologies are never stored. Redis failures only cost a cache
// miss.
type Cached struct {
	next    Completer
	rdb     redis.Cmdable
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewCached(next Completer, rdb redis.Cmdable, ttl time.Duration, m *metrics.Metrics) *Cached {
	return &Cached{next: next, rdb: rdb, ttl: ttl, metrics: m}
}

func (c *Cached) key(question string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(question)))
	return "medqa:fallback:" + hex.EncodeToString(sum[:])
}

func (c *Cached) Complete(ctx context.Context, question string, entities ...string) Completion {
	if strings.TrimSpace(question) == "" {
		return c.next.Complete(ctx, question, entities...)
	}
	key := c.key(question)

	text, err := c.rdb.Get(ctx, key).Result()
	if err := errx.WrapRedis(err); err != nil {
		logx.Warn().Err(err).Str("key", key).Msg("failed to read fallback answer from redis")
	}
	if err == nil && text != "" {
		c.metrics.CacheLookup(true)
		return Completion{Text: text, Backend: BackendCache, Cached: true}
	}
	c.metrics.CacheLookup(false)

	out := c.next.Complete(ctx, question, entities...)
	if out.Degraded || out.Text == "" {
		return out
	}
	if err := c.rdb.Set(ctx, key, out.Text, c.ttl).Err(); err != nil {
		logx.Warn().Err(errx.WrapRedis(err)).Str("key", key).Dur("ttl", c.ttl).Msg("failed to store fallback answer in redis")
	}
	return out
}
