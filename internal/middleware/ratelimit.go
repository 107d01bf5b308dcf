package middleware

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Varun5711/recipebook/internal/logger"
	"github.com/Varun5711/recipebook/internal/metrics"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter decides whether the client identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, remaining int, resetTime time.Time)
}

type RateLimiter struct {
	limiter    Limiter
	limit      int
	trustProxy bool
	log        *logger.Logger
}

// NewRateLimiter keys clients by their TCP peer address. With trustProxy
// set, X-Forwarded-For and X-Real-IP take precedence; only enable it when a
// proxy in front of the API overwrites those headers.
func NewRateLimiter(limiter Limiter, limit int, trustProxy bool) *RateLimiter {
	return &RateLimiter{
		limiter:    limiter,
		limit:      limit,
		trustProxy: trustProxy,
		log:        logger.New("ratelimit"),
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := getClientIP(r, rl.trustProxy)

		allowed, remaining, resetTime := rl.limiter.Allow(r.Context(), clientIP)

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetTime.Unix()))

		if !allowed {
			retryAfter := int(math.Ceil(time.Until(resetTime).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			metrics.RecordRateLimited()
			rl.log.Debug("rate limit exceeded for %s", clientIP)
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RedisLimiter is a sliding-window limiter shared by every API instance.
// Redis failures let the request through.
type RedisLimiter struct {
	redis     *redis.Client
	limit     int
	window    time.Duration
	keyPrefix string
	log       *logger.Logger
}

func NewRedisLimiter(redisClient *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		redis:     redisClient,
		limit:     limit,
		window:    window,
		keyPrefix: "recipebook:ratelimit:",
		log:       logger.New("ratelimit"),
	}
}

func (rl *RedisLimiter) Allow(ctx context.Context, clientKey string) (bool, int, time.Time) {
	key := rl.keyPrefix + clientKey
	now := time.Now()
	windowStart := now.Add(-rl.window)

	pipe := rl.redis.Pipeline()

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))

	zcard := pipe.ZCard(ctx, key)

	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString()),
	})

	pipe.Expire(ctx, key, rl.window)

	if _, err := pipe.Exec(ctx); err != nil {
		rl.log.Warn("rate limiter unavailable, allowing request: %v", err)
		return true, rl.limit, now.Add(rl.window)
	}

	count := int(zcard.Val())

	if count >= rl.limit {
		resetTime := now.Add(rl.window)
		oldest, err := rl.redis.ZRangeWithScores(ctx, key, 0, 0).Result()
		if err == nil && len(oldest) > 0 {
			resetTime = time.Unix(0, int64(oldest[0].Score)).Add(rl.window)
		}
		return false, 0, resetTime
	}

	remaining := rl.limit - count - 1
	if remaining < 0 {
		remaining = 0
	}

	return true, remaining, now.Add(rl.window)
}

// MemoryLimiter keeps one token bucket per client in process. It is used
// when Redis is not configured.
type MemoryLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	maxKeys  int
	now      func() time.Time
}

// NewMemoryLimiter allows limit requests per window per client, refilled
// evenly across the window.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	if limit < 1 {
		limit = 1
	}
	return &MemoryLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Every(window / time.Duration(limit)),
		burst:    limit,
		maxKeys:  10000,
		now:      time.Now,
	}
}

func (ml *MemoryLimiter) getLimiter(key string) *rate.Limiter {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	limiter, exists := ml.limiters[key]
	if !exists {
		if len(ml.limiters) >= ml.maxKeys {
			ml.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(ml.rate, ml.burst)
		ml.limiters[key] = limiter
	}

	return limiter
}

func (ml *MemoryLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time) {
	limiter := ml.getLimiter(key)
	now := ml.now()

	allowed := limiter.AllowN(now, 1)

	tokens := limiter.TokensAt(now)
	remaining := int(math.Max(0, math.Floor(tokens)))

	missing := float64(ml.burst) - tokens
	resetTime := now
	if missing > 0 && ml.rate > 0 {
		resetTime = now.Add(time.Duration(missing / float64(ml.rate) * float64(time.Second)))
	}

	return allowed, remaining, resetTime
}

func getClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}

		if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
			return realIP
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if host == "::1" {
		return "127.0.0.1"
	}

	return host
}
