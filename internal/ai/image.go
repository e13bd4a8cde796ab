package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/yockii/wx_publisher/internal/constant"
)

var (
	urlPattern     = regexp.MustCompile("https?://[^\\s<>\"{}|\\\\^`\\[\\]()]+")
	dataURLPattern = regexp.MustCompile(`data:image/[^;]+;base64,([A-Za-z0-9+/=]+)`)
	imageHints     = []string{".png", ".jpg", ".jpeg", ".webp", "image"}
)

// ImageClient 通过对话接口生成图片，回复中携带图片地址或 base64 数据
type ImageClient struct {
	chat       *ChatClient
	httpClient *http.Client
}

func NewImageClient(opts Options) *ImageClient {
	return &ImageClient{
		chat:       NewChatClient(opts),
		httpClient: opts.httpClient(),
	}
}

// Generate 按提示词生成图片并返回图片内容
func (c *ImageClient) Generate(ctx context.Context, prompt string) ([]byte, error) {
	reply, err := c.chat.Complete(ctx, ChatRequest{
		Messages: []Message{{Role: "user", Content: prompt}},
		Extra:    map[string]interface{}{"image_only": true},
	})
	if err != nil {
		return nil, err
	}
	ref, ok := ExtractImageRef(reply)
	if !ok {
		return nil, fmt.Errorf("回复中未找到图片: %w", constant.ErrUpstream)
	}
	return c.Fetch(ctx, ref)
}

// ExtractImageRef 取回复中第一个图片链接，没有时取 base64 图片
func ExtractImageRef(reply string) (string, bool) {
	for _, u := range urlPattern.FindAllString(reply, -1) {
		lower := strings.ToLower(u)
		for _, hint := range imageHints {
			if strings.Contains(lower, hint) {
				return u, true
			}
		}
	}
	if m := dataURLPattern.FindString(reply); m != "" {
		return m, true
	}
	return "", false
}

// Fetch 读取图片内容，支持 data URL 与 http 地址
func (c *ImageClient) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if m := dataURLPattern.FindStringSubmatch(ref); m != nil {
		data, err := base64.StdEncoding.DecodeString(m[1])
		if err != nil {
			return nil, fmt.Errorf("解码图片失败: %v: %w", err, constant.ErrUpstream)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("下载图片失败: %v: %w", err, constant.ErrUpstream)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("下载图片失败: %d: %w", resp.StatusCode, constant.ErrUpstream)
	}
	return io.ReadAll(resp.Body)
}
