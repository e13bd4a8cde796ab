package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/internal/service"
	"github.com/yockii/wx_publisher/pkg/logger"
)

type rateLimiter struct {
	maxRequests int
	duration    time.Duration
	now         func() time.Time
	mu          sync.Mutex
	tokens      map[string]*tokenBucket
}

type tokenBucket struct {
	tokens    int
	lastReset time.Time
}

// NewRateLimiter 创建限流器
func NewRateLimiter(maxRequests int, duration time.Duration) *rateLimiter {
	return &rateLimiter{
		maxRequests: maxRequests,
		duration:    duration,
		now:         time.Now,
		tokens:      make(map[string]*tokenBucket),
	}
}

// Handler 限流中间件，按用户标识限流，没有用户标识时按 IP
func (rl *rateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID := "ip_" + c.IP()
		if userID := UserID(c); userID != "" {
			clientID = "user_" + userID
		}

		if !rl.allow(clientID) {
			logger.Warn("请求过于频繁",
				logger.F("clientId", clientID),
				logger.F("path", c.Path()),
			)
			return c.Status(fiber.StatusTooManyRequests).JSON(service.Error(constant.ErrTooManyRequests))
		}

		return c.Next()
	}
}

// allow 检查是否允许请求
func (rl *rateLimiter) allow(clientID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	bucket, exists := rl.tokens[clientID]

	if !exists {
		// 减1是因为当前请求
		rl.tokens[clientID] = &tokenBucket{
			tokens:    rl.maxRequests - 1,
			lastReset: now,
		}
		return true
	}

	// 检查是否需要重置令牌
	if now.Sub(bucket.lastReset) >= rl.duration {
		bucket.tokens = rl.maxRequests - 1
		bucket.lastReset = now
		return true
	}

	if bucket.tokens > 0 {
		bucket.tokens--
		return true
	}

	return false
}

// cleanup 清理过期的令牌桶
func (rl *rateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for clientID, bucket := range rl.tokens {
		if now.Sub(bucket.lastReset) >= rl.duration*2 {
			delete(rl.tokens, clientID)
		}
	}
}

// StartCleanup 启动清理任务，stop 关闭后退出
func (rl *rateLimiter) StartCleanup(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.cleanup()
			case <-stop:
				return
			}
		}
	}()
}
