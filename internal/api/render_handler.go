package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/yockii/wx_publisher/internal/middleware"
	"github.com/yockii/wx_publisher/internal/service"
)

type RenderHandler struct {
	renderService service.RenderService
}

func RegisterRenderHandler(renderService service.RenderService) {
	handler := &RenderHandler{
		renderService: renderService,
	}
	Handlers = append(Handlers, handler)
}

func (h *RenderHandler) RegisterRoutes(router fiber.Router, rateLimit fiber.Handler) {
	router.Get("/themes", h.Themes)
	router.Post("/convert", h.Convert)
	router.Post("/convert-custom", rateLimit, h.ConvertCustom)
	router.Post("/parse", h.Parse)
}

func (h *RenderHandler) Themes(c *fiber.Ctx) error {
	return c.JSON(service.OK(h.renderService.Themes()))
}

type convertRequest struct {
	Content string          `json:"content"`
	Theme   json.RawMessage `json:"theme"`
}

func (h *RenderHandler) Convert(c *fiber.Ctx) error {
	req := new(convertRequest)
	if err := c.BodyParser(req); err != nil {
		return invalidParams(c)
	}
	result, err := h.renderService.Convert(c.Context(), req.Content, req.Theme)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(service.OK(result))
}

type convertCustomRequest struct {
	Content          string `json:"content"`
	StyleDescription string `json:"style_description"`
}

func (h *RenderHandler) ConvertCustom(c *fiber.Ctx) error {
	req := new(convertCustomRequest)
	if err := c.BodyParser(req); err != nil {
		return invalidParams(c)
	}
	result, err := h.renderService.ConvertCustom(c.Context(), middleware.UserID(c), req.Content, req.StyleDescription)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(service.OK(result))
}

func (h *RenderHandler) Parse(c *fiber.Ctx) error {
	req := new(convertRequest)
	if err := c.BodyParser(req); err != nil {
		return invalidParams(c)
	}
	result, err := h.renderService.Parse(req.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(service.OK(result))
}
