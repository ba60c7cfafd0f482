// Package ratelimit implements the sliding-window limiter guarding mutation
// endpoints. The production implementation keeps its window state in redis so
// the quota holds across replicas; an in-memory variant covers development
// and tests.
package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"joylist/config"
	"joylist/internal/domain/lifecycle"
	"joylist/internal/domain/service"
	"joylist/internal/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const keyPrefix = "joylist:ratelimit:"

// slideScript atomically expires old entries, checks the count and records
// the new event in one round trip, so concurrent calls for the same identity
// can never admit more than the limit inside a single window.
//
// KEYS[1]: window zset. ARGV: now (ms), window (ms), limit, member.
// Returns {allowed, remaining, retry_after_ms}.
var slideScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
local count = redis.call('ZCARD', key)

if count < limit then
  redis.call('ZADD', key, now, ARGV[4])
  redis.call('PEXPIRE', key, window)
  return {1, limit - count - 1, 0}
end

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local retry = 0
if oldest[2] then
  retry = tonumber(oldest[2]) + window - now
end
return {0, 0, retry}
`)

// ClientParams defines the required parameters for the redis client.
type ClientParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

// NewRedisClient creates the redis client for rate-limit state, pinging it on
// startup and closing it on shutdown.
func NewRedisClient(params ClientParams) (*redis.Client, error) {
	cfg := params.Config.Redis
	if cfg == nil {
		return nil, errors.New("redis configuration is missing")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping redis")
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}

// redisLimiter implements service.RateLimiter on a redis ZSET window.
type redisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *slog.Logger
}

// NewRedisLimiter is the constructor for redisLimiter.
func NewRedisLimiter(client *redis.Client, cfg *config.Config, logger *slog.Logger) service.RateLimiter {
	return &redisLimiter{
		client: client,
		limit:  cfg.RateLimit.Limit,
		window: cfg.RateLimit.Window,
		logger: logger,
	}
}

// Allow consults and updates the window for one identity. A redis failure is
// returned as an error: the caller fails closed rather than letting an
// outage lift the quota.
func (l *redisLimiter) Allow(ctx context.Context, identity string) (service.Decision, error) {
	now := time.Now()

	result, err := slideScript.Run(ctx, l.client,
		[]string{keyPrefix + identity},
		now.UnixMilli(),
		l.window.Milliseconds(),
		l.limit,
		uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return service.Decision{}, errors.Wrap(err, "rate limit store unavailable")
	}
	if len(result) != 3 {
		return service.Decision{}, errors.Errorf("unexpected rate limit script reply: %v", result)
	}

	decision := service.Decision{
		Allowed:    result[0] == 1,
		Remaining:  int(result[1]),
		RetryAfter: time.Duration(result[2]) * time.Millisecond,
	}

	if !decision.Allowed {
		l.logger.Debug("rate limit exceeded",
			slog.String("identity", identity),
			slog.Duration("retryAfter", decision.RetryAfter),
		)
	}

	return decision, nil
}
