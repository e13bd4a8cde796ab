package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yockii/wx_publisher/internal/middleware"
	"github.com/yockii/wx_publisher/internal/service"
)

type CoverHandler struct {
	coverService service.CoverService
}

func RegisterCoverHandler(coverService service.CoverService) {
	handler := &CoverHandler{
		coverService: coverService,
	}
	Handlers = append(Handlers, handler)
}

func (h *CoverHandler) RegisterRoutes(router fiber.Router, rateLimit fiber.Handler) {
	router.Post("/generate-cover", rateLimit, h.Generate)
	router.Get("/cover/:filename", h.Get)
}

func (h *CoverHandler) Generate(c *fiber.Ctx) error {
	req := new(service.CoverRequest)
	if err := c.BodyParser(req); err != nil {
		return invalidParams(c)
	}
	result, err := h.coverService.Generate(c.Context(), middleware.UserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(service.OK(result))
}

func (h *CoverHandler) Get(c *fiber.Ctx) error {
	path, err := h.coverService.Path(c.Params("filename"))
	if err != nil {
		return fail(c, err)
	}
	return c.SendFile(path)
}
