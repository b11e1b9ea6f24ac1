package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"athletics-backend/apperr"
	"athletics-backend/respond"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local capacity = tonumber(ARGV[1])
	local rate = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])
	local requested = tonumber(ARGV[4])

	local info = redis.call("HMGET", key, "tokens", "last_refill")
	local tokens = tonumber(info[1])
	local last_refill = tonumber(info[2])

	if tokens == nil then
		tokens = capacity
		last_refill = now
	end

	local delta = math.max(0, now - last_refill)
	local filled_tokens = math.min(capacity, tokens + (delta / 1000 * rate))

	local allowed = 0
	if filled_tokens >= requested then
		filled_tokens = filled_tokens - requested
		allowed = 1
		redis.call("HMSET", key, "tokens", filled_tokens, "last_refill", now)
		redis.call("EXPIRE", key, math.ceil(capacity / rate) * 2)
	end

	return allowed
`)

type allowFunc func(ctx context.Context, key string, capacity int, rate float64) (bool, error)

// RateLimiter is a Redis token bucket behind a circuit breaker. Any Redis
// failure, including an open breaker, lets the request through.
type RateLimiter struct {
	allow   allowFunc
	cb      *gobreaker.CircuitBreaker
	log     logrus.FieldLogger
	timeout time.Duration
}

// NewRateLimiter connects to addr. It returns nil when Redis is unreachable,
// and a nil limiter passes every request.
func NewRateLimiter(addr string, log logrus.FieldLogger) *RateLimiter {
	if addr == "" {
		log.Info("REDIS_ADDR is not set, rate limiter disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warnf("failed to connect to redis at %s: %v, rate limiter disabled", addr, err)
		rdb.Close()
		return nil
	}
	log.Infof("✅ Connected to redis at %s", addr)

	return newRateLimiter(func(ctx context.Context, key string, capacity int, rate float64) (bool, error) {
		keys := []string{fmt.Sprintf("rate_limit:%s", key)}
		args := []interface{}{capacity, rate, time.Now().UnixMilli(), 1}

		result, err := tokenBucketScript.Run(ctx, rdb, keys, args...).Int64()
		if err != nil {
			return false, err
		}
		return result == 1, nil
	}, log)
}

func newRateLimiter(allow allowFunc, log logrus.FieldLogger) *RateLimiter {
	st := gobreaker.Settings{
		Name:        "redis-limiter",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnf("CircuitBreaker[%s] state changed from %s to %s", name, from, to)
		},
	}
	return &RateLimiter{
		allow:   allow,
		cb:      gobreaker.NewCircuitBreaker(st),
		log:     log,
		timeout: 200 * time.Millisecond,
	}
}

func (l *RateLimiter) Allow(ctx context.Context, key string, capacity int, rate float64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	res, err := l.cb.Execute(func() (interface{}, error) {
		return l.allow(ctx, key, capacity, rate)
	})
	if err != nil {
		return false, err
	}
	return res.(bool), nil
}

// Limit throttles requests per client IP under the bucket name.
func (l *RateLimiter) Limit(name string, burst int, rps float64) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := l.Allow(r.Context(), name+":"+clientIP(r), burst, rps)
			if err != nil {
				l.log.Warnf("%s limiter redis error: %v", name, err)
			} else if !allowed {
				respond.Error(w, r, apperr.New(apperr.KindRateLimited, "Too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		ip, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(ip)
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
