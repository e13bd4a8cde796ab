package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yockii/wx_publisher/internal/middleware"
	"github.com/yockii/wx_publisher/internal/service"
)

type UploadHandler struct {
	uploadService service.UploadService
}

func RegisterUploadHandler(uploadService service.UploadService) {
	handler := &UploadHandler{
		uploadService: uploadService,
	}
	Handlers = append(Handlers, handler)
}

func (h *UploadHandler) RegisterRoutes(router fiber.Router, rateLimit fiber.Handler) {
	router.Post("/upload", h.Upload)
	router.Post("/upload-image", rateLimit, h.UploadImage)
}

func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	filename, data, err := readFormFile(c, "file")
	if err != nil {
		return fail(c, err)
	}
	content, err := h.uploadService.ExtractDocument(filename, data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(service.OK(fiber.Map{
		"content":  content,
		"filename": filename,
	}))
}

func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	_, data, err := readFormFile(c, "image")
	if err != nil {
		return fail(c, err)
	}
	result, err := h.uploadService.UploadImage(c.Context(), middleware.UserID(c), data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(service.OK(result))
}
