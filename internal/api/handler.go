package api

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/internal/service"
)

var Handlers []Handler

// Handler rateLimit 用于需要调用第三方服务的路由
type Handler interface {
	RegisterRoutes(router fiber.Router, rateLimit fiber.Handler)
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(constant.GetErrorCode(err)).JSON(service.Error(err))
}

func invalidParams(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(service.Error(constant.ErrInvalidParams))
}

// readFormFile 读取上传文件的全部内容
func readFormFile(c *fiber.Ctx, field string) (string, []byte, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return "", nil, constant.ErrFileEmpty
	}
	if header.Filename == "" {
		return "", nil, constant.ErrFileEmpty
	}
	f, err := header.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return header.Filename, data, nil
}
