package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yockii/wx_publisher/internal/middleware"
	"github.com/yockii/wx_publisher/internal/service"
	"github.com/yockii/wx_publisher/pkg/logger"
)

type ConfigHandler struct {
	configService service.ConfigService
	aiService     service.AIService
}

func RegisterConfigHandler(
	configService service.ConfigService,
	aiService service.AIService,
) {
	handler := &ConfigHandler{
		configService: configService,
		aiService:     aiService,
	}
	Handlers = append(Handlers, handler)
}

func (h *ConfigHandler) RegisterRoutes(router fiber.Router, _ fiber.Handler) {
	r := router.Group("/config")
	{
		r.Get("/", h.Get)
		r.Post("/", h.Save)
		r.Get("/keys", middleware.RequireUser(), h.Keys)
		r.Get("/prompts", h.Prompts)
	}
}

func (h *ConfigHandler) Get(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	keys, err := h.configService.Load(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(service.OK(keys.Masked(userID)))
}

func (h *ConfigHandler) Save(c *fiber.Ctx) error {
	patch := new(service.UserKeys)
	if err := c.BodyParser(patch); err != nil {
		return invalidParams(c)
	}
	userID := middleware.UserID(c)
	if _, err := h.configService.Update(c.Context(), userID, patch); err != nil {
		logger.Error("保存配置失败", logger.F("userId", userID), logger.F("err", err))
		return fail(c, err)
	}
	resp := service.OK(fiber.Map{"user_id": userID})
	resp.Message = "配置已保存"
	return c.JSON(resp)
}

func (h *ConfigHandler) Keys(c *fiber.Ctx) error {
	keys, err := h.configService.Load(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(service.OK(keys.AIKeys()))
}

func (h *ConfigHandler) Prompts(c *fiber.Ctx) error {
	return c.JSON(service.OK(h.aiService.Prompts()))
}
