package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	counts  map[string]int64
	ttls    map[string]time.Duration
	incrErr error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCounter) Incr(ctx context.Context, key string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.incrErr != nil {
		cmd.SetErr(f.incrErr)
		return cmd
	}
	f.counts[key]++
	cmd.SetVal(f.counts[key])
	return cmd
}

func (f *fakeCounter) ExpireNX(ctx context.Context, key string, exp time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx)
	if _, ok := f.ttls[key]; !ok {
		f.ttls[key] = exp
		cmd.SetVal(true)
	}
	return cmd
}

func TestFixedWindow_Allow(t *testing.T) {
	ctx := context.Background()
	fc := newFakeCounter()
	th := newFixedWindow(fc, 2, time.Hour)

	for i := 0; i < 2; i++ {
		ok, err := th.Allow(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := th.Allow(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = th.Allow(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, ok, "keys are throttled independently")

	for _, ttl := range fc.ttls {
		assert.Equal(t, time.Hour, ttl)
	}
}

func TestFixedWindow_RedisError(t *testing.T) {
	fc := newFakeCounter()
	fc.incrErr = errors.New("connection refused")
	_, err := newFixedWindow(fc, 2, time.Hour).Allow(context.Background(), "k")
	require.Error(t, err)
}

func TestNewLoginThrottle_Disabled(t *testing.T) {
	th := NewLoginThrottle(nil, 5, time.Minute)
	for i := 0; i < 100; i++ {
		ok, err := th.Allow(context.Background(), "k")
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestNewRedisClient_EmptyAddr(t *testing.T) {
	c, err := NewRedisClient(context.Background(), RedisOptions{})
	require.NoError(t, err)
	require.Nil(t, c)
}
