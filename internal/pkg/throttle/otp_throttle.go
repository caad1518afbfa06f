// Package throttle limits how often an address can be sent an OTP.
package throttle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parish-portal-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

type Limiter interface {
	// Allow counts one attempt for key and reports whether it is within the limit.
	Allow(ctx context.Context, key string) bool
}

type redisLimiter struct {
	rdb    *redis.Client
	prefix string
	limit  int64
	window time.Duration
	log    logger.ILogger
}

// NewRedisLimiter allows limit attempts per window. A nil client or a Redis
// error lets the attempt through.
func NewRedisLimiter(rdb *redis.Client, prefix string, limit int64, window time.Duration, log logger.ILogger) Limiter {
	return &redisLimiter{
		rdb:    rdb,
		prefix: prefix,
		limit:  limit,
		window: window,
		log:    log,
	}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) bool {
	if l.rdb == nil {
		return true
	}

	redisKey := fmt.Sprintf("%s:%s", l.prefix, strings.ToLower(strings.TrimSpace(key)))

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.log.Warn("THROTTLE", "Redis unavailable, allowing request", map[string]interface{}{
			"key":   redisKey,
			"error": err.Error(),
		})
		return true
	}

	return incr.Val() <= l.limit
}

// Unlimited never throttles.
type Unlimited struct{}

func (Unlimited) Allow(ctx context.Context, key string) bool { return true }
