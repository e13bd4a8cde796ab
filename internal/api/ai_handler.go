package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yockii/wx_publisher/internal/ai"
	"github.com/yockii/wx_publisher/internal/middleware"
	"github.com/yockii/wx_publisher/internal/service"
)

type AIHandler struct {
	aiService service.AIService
}

func RegisterAIHandler(aiService service.AIService) {
	handler := &AIHandler{
		aiService: aiService,
	}
	Handlers = append(Handlers, handler)
}

func (h *AIHandler) RegisterRoutes(router fiber.Router, rateLimit fiber.Handler) {
	router.Post("/rewrite", rateLimit, h.Rewrite)
	router.Post("/chat", rateLimit, h.Chat)
	router.Post("/speech-to-text", rateLimit, h.SpeechToText)
}

type rewriteRequest struct {
	Content string `json:"content"`
}

func (h *AIHandler) Rewrite(c *fiber.Ctx) error {
	req := new(rewriteRequest)
	if err := c.BodyParser(req); err != nil {
		return invalidParams(c)
	}
	result, err := h.aiService.Rewrite(c.Context(), middleware.UserID(c), req.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(service.OK(result))
}

type chatRequest struct {
	Messages []ai.Message `json:"messages"`
}

func (h *AIHandler) Chat(c *fiber.Ctx) error {
	req := new(chatRequest)
	if err := c.BodyParser(req); err != nil {
		return invalidParams(c)
	}
	reply, err := h.aiService.Chat(c.Context(), middleware.UserID(c), req.Messages)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(service.OK(fiber.Map{"reply": reply}))
}

func (h *AIHandler) SpeechToText(c *fiber.Ctx) error {
	filename, data, err := readFormFile(c, "audio")
	if err != nil {
		return fail(c, err)
	}
	text, err := h.aiService.Transcribe(c.Context(), middleware.UserID(c), filename, data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(service.OK(fiber.Map{"text": text}))
}
