package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func limitedRouter(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.POST("/", rl.RateLimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func post(r http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterLocalFallback(t *testing.T) {
	rl := NewRateLimiter(nil, RateLimitConfig{Window: time.Hour, Limit: 2, KeyPrefix: "test"}, zap.NewNop())
	r := limitedRouter(rl)

	assert.Equal(t, http.StatusOK, post(r, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, post(r, "10.0.0.1:1234").Code)

	w := post(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many requests. Please try again in a moment."}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, post(r, "10.0.0.2:1234").Code, "other clients have their own budget")
}

func TestRateLimiterLocalEvictsIdleClients(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(nil, RateLimitConfig{Window: time.Minute, Limit: 2, KeyPrefix: "test"}, zap.NewNop())
	rl.now = func() time.Time { return now }
	r := limitedRouter(rl)

	for i := 1; i <= 50; i++ {
		assert.Equal(t, http.StatusOK, post(r, fmt.Sprintf("10.0.1.%d:1234", i)).Code)
	}
	assert.Equal(t, http.StatusOK, post(r, "10.0.0.9:1234").Code)
	assert.Equal(t, http.StatusOK, post(r, "10.0.0.9:1234").Code)
	assert.Equal(t, 51, rl.localSize())

	// 10.0.0.9 stays active while the others go idle
	now = now.Add(40 * time.Second)
	assert.Equal(t, http.StatusOK, post(r, "10.0.0.9:1234").Code)

	now = now.Add(30 * time.Second)
	assert.Equal(t, http.StatusOK, post(r, "10.0.0.10:1234").Code)
	assert.Equal(t, 2, rl.localSize(), "idle clients are dropped")

	// the surviving bucket keeps its state: one token refilled over 30s and is spent now
	assert.Equal(t, http.StatusOK, post(r, "10.0.0.9:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, post(r, "10.0.0.9:1234").Code)
}

func TestRateLimiterFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	rl := NewRateLimiter(client, RateLimitConfig{Window: time.Minute, Limit: 1, KeyPrefix: "test"}, zap.NewNop())
	r := limitedRouter(rl)

	for i := 0; i < 3; i++ {
		w := post(r, "10.0.0.1:1234")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
	}
}

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRateLimiterRedisWindow(t *testing.T) {
	client := setupRedis(t)
	rl := NewRateLimiter(client, RateLimitConfig{Window: time.Hour, Limit: 2, KeyPrefix: "rate_limit:test"}, zap.NewNop())
	r := limitedRouter(rl)

	w := post(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, post(r, "10.0.0.1:1234").Code)

	w = post(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}
