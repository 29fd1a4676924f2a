// Package ratelimit throttles login-code requests with a fixed-window counter in Redis.
package ratelimit

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"reservationportal/internal/domain"
)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
}

// NewRedisClient connects and pings Redis. It returns nil when addr is empty or the server does not
// answer, which callers treat as "throttling disabled".
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	if opts.Addr == "" {
		return nil, nil
	}
	var tlsConf *tls.Config
	if opts.TLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      opts.Addr,
		Password:  opts.Password,
		DB:        opts.DB,
		TLSConfig: tlsConf,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return client, nil
}

// counter is the part of the Redis client the throttle uses.
type counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	ExpireNX(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

type fixedWindow struct {
	rdb    counter
	prefix string
	limit  int
	window time.Duration
}

// NewLoginThrottle allows at most limit requests per key in each window. A nil client allows
// everything.
func NewLoginThrottle(rdb *redis.Client, limit int, window time.Duration) domain.LoginThrottle {
	if rdb == nil || limit <= 0 {
		return allowAll{}
	}
	return newFixedWindow(rdb, limit, window)
}

func newFixedWindow(rdb counter, limit int, window time.Duration) *fixedWindow {
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &fixedWindow{rdb: rdb, prefix: "ratelimit:login_code", limit: limit, window: window}
}

func (f *fixedWindow) Allow(ctx context.Context, key string) (bool, error) {
	k := fmt.Sprintf("%s:%s:%d", f.prefix, key, time.Now().UnixNano()/int64(f.window))
	n, err := f.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	// NX on every hit: a key whose first EXPIRE was lost still gets a TTL.
	if err := f.rdb.ExpireNX(ctx, k, f.window).Err(); err != nil {
		return false, err
	}
	return n <= int64(f.limit), nil
}

type allowAll struct{}

func (allowAll) Allow(context.Context, string) (bool, error) { return true, nil }
