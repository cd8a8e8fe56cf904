package httpmiddleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erp/internal/logger"
)

func TestTokenBucketRefills(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	l := NewTokenBucket(2, 60)
	l.now = func() time.Time { return clock }

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "10.0.0.2")
	assert.True(t, ok, "keys have separate buckets")

	clock = clock.Add(time.Second)
	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.True(t, ok)
}

func TestTokenBucketForgetsIdleKeys(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	l := NewTokenBucket(2, 60)
	l.now = func() time.Time { return clock }

	for i := 0; i < 100; i++ {
		_, err := l.Allow(ctx, fmt.Sprintf("10.0.1.%d", i))
		require.NoError(t, err)
	}
	assert.Len(t, l.state, 100)

	clock = clock.Add(30 * time.Second)
	_, _ = l.Allow(ctx, "10.0.0.1")
	_, _ = l.Allow(ctx, "10.0.0.1")
	ok, _ := l.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	clock = clock.Add(sweepInterval)
	ok, _ = l.Allow(ctx, "10.0.0.2")
	assert.True(t, ok)
	assert.Len(t, l.state, 1, "idle buckets were not dropped")

	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.True(t, ok, "a forgotten key starts with a full bucket")
}

type stubLimiter struct {
	allow bool
	err   error
}

func (s stubLimiter) Allow(context.Context, string) (bool, error) { return s.allow, s.err }

func serve(l Limiter) *httptest.ResponseRecorder {
	r := gin.New()
	r.Use(Metrics(), RateLimit(l, logger.Discard()))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	assert.Equal(t, http.StatusOK, serve(stubLimiter{allow: true}).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(stubLimiter{allow: false}).Code)
	assert.Equal(t, http.StatusOK, serve(stubLimiter{err: errors.New("down")}).Code)
}

func TestRedisWindowUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	l := NewRedisWindow(client, 10)

	_, err := l.Allow(context.Background(), "10.0.0.1")
	assert.Error(t, err)
	assert.Equal(t, http.StatusOK, serve(l).Code)
}
