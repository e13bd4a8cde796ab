package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yockii/wx_publisher/internal/middleware"
	"github.com/yockii/wx_publisher/internal/service"
)

type PublishHandler struct {
	publishService service.PublishService
}

func RegisterPublishHandler(publishService service.PublishService) {
	handler := &PublishHandler{
		publishService: publishService,
	}
	Handlers = append(Handlers, handler)
}

func (h *PublishHandler) RegisterRoutes(router fiber.Router, rateLimit fiber.Handler) {
	router.Post("/publish", rateLimit, h.Publish)
	router.Get("/server-ip", h.ServerIP)
}

func (h *PublishHandler) Publish(c *fiber.Ctx) error {
	req := new(service.PublishRequest)
	if err := c.BodyParser(req); err != nil {
		return invalidParams(c)
	}
	mediaID, err := h.publishService.Publish(c.Context(), middleware.UserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(service.OK(fiber.Map{"media_id": mediaID}))
}

func (h *PublishHandler) ServerIP(c *fiber.Ctx) error {
	ip, err := h.publishService.ServerIP(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(service.OK(fiber.Map{
		"ip":   ip,
		"note": "请将此 IP 添加到微信公众号后台的 IP 白名单中",
	}))
}
