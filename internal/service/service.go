package service

import (
	"context"
	"net/http"

	"github.com/yockii/wx_publisher/internal/ai"
	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/internal/imghost"
	"github.com/yockii/wx_publisher/pkg/theme"
)

type ConfigService interface {
	// Load 读取用户配置，userID 为空时读取全局配置
	Load(ctx context.Context, userID string) (*UserKeys, error)
	// Save 保存用户配置
	Save(ctx context.Context, userID string, keys *UserKeys) error
	// Update 只覆盖 patch 中非空的字段
	Update(ctx context.Context, userID string, patch *UserKeys) (*UserKeys, error)
}

type RenderService interface {
	Themes() []theme.Theme
	Convert(ctx context.Context, content string, themeRaw []byte) (*ConvertResult, error)
	ConvertCustom(ctx context.Context, userID, content, styleDescription string) (*ConvertResult, error)
	Parse(content string) (*ParseResult, error)
}

type AIService interface {
	Prompts() *Prompts
	Rewrite(ctx context.Context, userID, content string) (*RewriteResult, error)
	Chat(ctx context.Context, userID string, messages []ai.Message) (string, error)
	Transcribe(ctx context.Context, userID, filename string, audio []byte) (string, error)
}

type CoverService interface {
	Generate(ctx context.Context, userID string, req *CoverRequest) (*CoverResult, error)
	// Path 返回已生成封面的本地路径
	Path(filename string) (string, error)
}

type PublishService interface {
	Publish(ctx context.Context, userID string, req *PublishRequest) (string, error)
	// ServerIP 出站 IP，用于配置公众号 IP 白名单
	ServerIP(ctx context.Context) (string, error)
}

type UploadService interface {
	ExtractDocument(filename string, data []byte) (string, error)
	UploadImage(ctx context.Context, userID string, data []byte) (*imghost.Result, error)
}

// /////////////////////////////
// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func OK(data interface{}) *Response {
	return NewResponse(data, nil)
}

func Error(err error) *Response {
	return NewResponse(nil, err)
}

// NewResponse 创建响应
func NewResponse(data interface{}, err error) *Response {
	if err == nil {
		return &Response{
			Code:    http.StatusOK,
			Message: "success",
			Data:    data,
		}
	}

	code := constant.GetErrorCode(err)
	return &Response{
		Code:    code,
		Message: err.Error(),
		Data:    data,
	}
}
