package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/yockii/wx_publisher/internal/ai"
	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/internal/cover"
	"github.com/yockii/wx_publisher/pkg/logger"
	"github.com/yockii/wx_publisher/pkg/theme"
	"github.com/yockii/wx_publisher/pkg/util"
)

const coverRoute = "/api/cover/"

type CoverRequest struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Theme   string `json:"theme"`
	Style   string `json:"style"`
}

type CoverResult struct {
	ImageURL string `json:"image_url"`
	Prompt   string `json:"prompt"`
	Fallback bool   `json:"fallback,omitempty"`
}

type CoverOptions struct {
	DeepSeek ai.Options
	Poe      ai.Options
	Prompts  *Prompts
	Dir      string
}

type coverService struct {
	opts      CoverOptions
	configSrv ConfigService
}

func NewCoverService(configSrv ConfigService, opts CoverOptions) CoverService {
	if opts.Prompts == nil {
		opts.Prompts = DefaultPrompts()
	}
	return &coverService{
		opts:      opts,
		configSrv: configSrv,
	}
}

func (s *coverService) Generate(ctx context.Context, userID string, req *CoverRequest) (*CoverResult, error) {
	keys, err := s.configSrv.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	themeID := req.Theme
	if themeID == "" {
		themeID = theme.DefaultID
	}

	prompt := s.coverPrompt(ctx, keys, req)

	if keys.PoeAPIKey != "" {
		filename, err := s.draw(ctx, keys.PoeAPIKey, prompt, themeID)
		if err == nil {
			return &CoverResult{ImageURL: coverRoute + filename, Prompt: prompt}, nil
		}
		logger.Error("AI生成封面失败，使用备用封面", logger.F("err", err))
	}

	data, err := cover.Fallback(theme.Resolve(themeID))
	if err != nil {
		return nil, err
	}
	filename, err := s.save(data)
	if err != nil {
		return nil, err
	}
	return &CoverResult{ImageURL: coverRoute + filename, Prompt: prompt, Fallback: true}, nil
}

// coverPrompt 用 DeepSeek 生成封面描述，未配置时直接使用标题
func (s *coverService) coverPrompt(ctx context.Context, keys *UserKeys, req *CoverRequest) string {
	if keys.DeepSeekAPIKey == "" || (req.Summary == "" && req.Title == "") {
		return req.Title
	}
	style := req.Style
	if style == "" {
		style = "专业简约"
	}
	client := ai.NewChatClient(s.opts.DeepSeek.WithKey(keys.DeepSeekAPIKey))
	reply, err := client.Complete(ctx, ai.ChatRequest{
		Messages: []ai.Message{{
			Role: "user",
			Content: fillPrompt(s.opts.Prompts.Cover, map[string]string{
				"title":   req.Title,
				"summary": req.Summary,
				"style":   style,
			}),
		}},
		MaxTokens: 100,
	})
	if err != nil {
		logger.Error("AI 生成提示词失败", logger.F("err", err))
		fallbackStyle := req.Style
		if fallbackStyle == "" {
			fallbackStyle = "专业简约风格"
		}
		return fmt.Sprintf("%s，%s", req.Title, fallbackStyle)
	}
	return strings.TrimSpace(reply)
}

func (s *coverService) draw(ctx context.Context, apiKey, prompt, themeID string) (string, error) {
	full := fmt.Sprintf("%s，%s，无文字，适合作为文章封面", prompt, coverStylePrompt(themeID))
	raw, err := ai.NewImageClient(s.opts.Poe.WithKey(apiKey)).Generate(ctx, full)
	if err != nil {
		return "", err
	}
	data, err := cover.Normalize(raw)
	if err != nil {
		return "", err
	}
	return s.save(data)
}

func (s *coverService) save(data []byte) (string, error) {
	filename := util.NewFileName("cover", "png")
	path, _ := util.SafeJoin(s.opts.Dir, filename)
	if err := util.SaveFile(path, data); err != nil {
		logger.Error("保存封面失败", logger.F("err", err))
		return "", err
	}
	return filename, nil
}

func (s *coverService) Path(filename string) (string, error) {
	path, ok := util.SafeJoin(s.opts.Dir, filename)
	if !ok {
		return "", constant.ErrInvalidParams
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", constant.ErrFileNotFound
		}
		return "", err
	}
	return path, nil
}
