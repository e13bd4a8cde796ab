package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/internal/service"
)

const (
	UserIDHeader = "X-User-Id"
	userIDKey    = "userId"
)

// maxUserIDLength 与 t_user_config.user_id 的列宽一致
const maxUserIDLength = 255

// NewUserMiddleware 从请求头读取用户标识存入上下文，可以为空
func NewUserMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get(UserIDHeader))
		if len(userID) > maxUserIDLength {
			return c.Status(fiber.StatusBadRequest).JSON(service.Error(constant.ErrInvalidParams))
		}
		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// RequireUser 要求请求带有用户标识
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(service.Error(constant.ErrUnauthorized))
		}
		return c.Next()
	}
}

// UserID 当前请求的用户标识
func UserID(c *fiber.Ctx) string {
	if userID, ok := c.Locals(userIDKey).(string); ok {
		return userID
	}
	return ""
}
