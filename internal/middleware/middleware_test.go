package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(NewUserMiddleware())
	for _, h := range handlers {
		app.Use(h)
	}
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(UserID(c))
	})
	return app
}

func get(t *testing.T, app *fiber.App, userID string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	if userID != "" {
		req.Header.Set(UserIDHeader, userID)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestUserMiddleware(t *testing.T) {
	app := newTestApp()
	status, body := get(t, app, " alice ")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "alice", body)

	status, body = get(t, app, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "", body)

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	status, _ = get(t, app, string(long))
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestRequireUser(t *testing.T) {
	app := newTestApp(RequireUser())
	status, body := get(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, int64(401), gjson.Get(body, "code").Int())

	status, _ = get(t, app, "bob")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRateLimit(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	now := time.Now()
	limiter.now = func() time.Time { return now }
	app := newTestApp(limiter.Handler())

	for i := 0; i < 2; i++ {
		status, _ := get(t, app, "u1")
		assert.Equal(t, fiber.StatusOK, status)
	}
	status, body := get(t, app, "u1")
	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.Equal(t, int64(429), gjson.Get(body, "code").Int())

	// 其他用户不受影响
	status, _ = get(t, app, "u2")
	assert.Equal(t, fiber.StatusOK, status)

	now = now.Add(time.Minute)
	status, _ = get(t, app, "u1")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRateLimiterCleanup(t *testing.T) {
	limiter := NewRateLimiter(1, time.Second)
	now := time.Now()
	limiter.now = func() time.Time { return now }
	assert.True(t, limiter.allow("a"))
	assert.False(t, limiter.allow("a"))

	now = now.Add(3 * time.Second)
	limiter.cleanup()
	assert.Empty(t, limiter.tokens)
}
