package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RateLimitType string

const (
	RateLimitTypePublic RateLimitType = "public"
	RateLimitTypeAuth   RateLimitType = "auth"
	RateLimitTypeWrite  RateLimitType = "write"
	RateLimitTypeAdmin  RateLimitType = "admin"
	RateLimitTypeHealth RateLimitType = "health"
)

// Config holds per-class request budgets over a shared window
type Config struct {
	Enabled        bool          `json:"enabled"`
	WindowDuration time.Duration `json:"window_duration"`
	PublicRequests int           `json:"public_requests"`
	AuthRequests   int           `json:"auth_requests"`
	WriteRequests  int           `json:"write_requests"`
	AdminRequests  int           `json:"admin_requests"`
	HealthRequests int           `json:"health_requests"`
	WhitelistedIPs []string      `json:"whitelisted_ips"`
}

// Result represents rate limit check result
type Result struct {
	Allowed   bool  `json:"allowed"`
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"reset_time"`
}

// RateLimiter handles rate limiting using Redis
type RateLimiter struct {
	client *redis.Client
	config *Config
}

func NewRateLimiter(client *redis.Client, config *Config) *RateLimiter {
	return &RateLimiter{
		client: client,
		config: config,
	}
}

// IsAllowed checks if request is allowed
func (r *RateLimiter) IsAllowed(ctx context.Context, clientIP string, limitType RateLimitType) (*Result, error) {
	limit := r.getLimit(limitType)

	if !r.config.Enabled || r.isWhitelisted(clientIP) {
		return &Result{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit,
			ResetTime: time.Now().Add(r.config.WindowDuration).Unix(),
		}, nil
	}

	key := fmt.Sprintf("inkwell:ratelimit:%s:%s", clientIP, limitType)
	return r.checkLimit(ctx, key, limit)
}

// checkLimit performs the actual rate limit check using a sliding window
func (r *RateLimiter) checkLimit(ctx context.Context, key string, limit int) (*Result, error) {
	now := time.Now()
	windowStart := now.Add(-r.config.WindowDuration)

	// Lua script for atomic sliding window rate limiting
	luaScript := `
		local key = KEYS[1]
		local window_start = tonumber(ARGV[1])
		local now = tonumber(ARGV[2])
		local limit = tonumber(ARGV[3])
		local window_seconds = tonumber(ARGV[4])

		-- Remove old entries
		redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

		-- Count current requests
		local current_count = redis.call('ZCARD', key)

		-- Check if limit exceeded. Report one past the budget so the caller's
		-- count <= limit comparison fails; the rejected request is not recorded.
		if current_count >= limit then
			redis.call('EXPIRE', key, window_seconds)
			return {current_count + 1, 0}
		end

		-- Add current request
		redis.call('ZADD', key, now, now)
		redis.call('EXPIRE', key, window_seconds)
		return {current_count + 1, limit - current_count - 1}
	`

	result, err := r.client.Eval(ctx, luaScript, []string{key},
		windowStart.UnixNano(),
		now.UnixNano(),
		limit,
		int(r.config.WindowDuration.Seconds()),
	).Result()
	if err != nil {
		return nil, fmt.Errorf("rate limit script failed: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 2 {
		return nil, fmt.Errorf("unexpected rate limit script result: %v", result)
	}

	count := values[0].(int64)
	remaining := values[1].(int64)

	return &Result{
		Allowed:   count <= int64(limit),
		Limit:     limit,
		Remaining: int(remaining),
		ResetTime: now.Add(r.config.WindowDuration).Unix(),
	}, nil
}

func (r *RateLimiter) getLimit(limitType RateLimitType) int {
	switch limitType {
	case RateLimitTypeAuth:
		return r.config.AuthRequests
	case RateLimitTypeWrite:
		return r.config.WriteRequests
	case RateLimitTypeAdmin:
		return r.config.AdminRequests
	case RateLimitTypeHealth:
		return r.config.HealthRequests
	default:
		return r.config.PublicRequests
	}
}

func (r *RateLimiter) isWhitelisted(clientIP string) bool {
	for _, ip := range r.config.WhitelistedIPs {
		if ip == clientIP {
			return true
		}
	}
	return false
}
