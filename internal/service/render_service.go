package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tidwall/gjson"

	"github.com/yockii/wx_publisher/internal/ai"
	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/internal/metrics"
	"github.com/yockii/wx_publisher/pkg/logger"
	"github.com/yockii/wx_publisher/pkg/mdmeta"
	"github.com/yockii/wx_publisher/pkg/theme"
	"github.com/yockii/wx_publisher/pkg/wxstyle"
)

const customThemeTTL = time.Hour

type ConvertResult struct {
	HTML    string       `json:"html"`
	Title   string       `json:"title"`
	Summary string       `json:"summary"`
	Theme   *theme.Theme `json:"theme,omitempty"`
}

type ParseResult struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Images    []string `json:"images"`
	WordCount int      `json:"word_count"`
}

type RenderOptions struct {
	DeepSeek       ai.Options
	Prompts        *Prompts
	ThemeCacheSize int
	Metrics        *metrics.Metrics
}

type cachedTheme struct {
	theme    theme.Theme
	storedAt time.Time
}

type renderService struct {
	opts      RenderOptions
	configSrv ConfigService
	themes    *lru.Cache[string, cachedTheme]
}

func NewRenderService(configSrv ConfigService, opts RenderOptions) RenderService {
	size := opts.ThemeCacheSize
	if size <= 0 {
		size = 128
	}
	if opts.Prompts == nil {
		opts.Prompts = DefaultPrompts()
	}
	cache, _ := lru.New[string, cachedTheme](size)
	return &renderService{
		opts:      opts,
		configSrv: configSrv,
		themes:    cache,
	}
}

func (s *renderService) Themes() []theme.Theme {
	return theme.List()
}

// selectTheme 主题可以是内置主题 ID，也可以是内联的主题对象
func selectTheme(raw []byte) (theme.Theme, string) {
	r := gjson.ParseBytes(raw)
	switch {
	case r.IsObject():
		return theme.FromJSON(r.Raw), constant.ThemeSourceInline
	case r.Type == gjson.String:
		return theme.Resolve(r.String()), constant.ThemeSourceCatalog
	default:
		return theme.Default(), constant.ThemeSourceCatalog
	}
}

func (s *renderService) Convert(ctx context.Context, content string, themeRaw []byte) (*ConvertResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, constant.ErrContentEmpty
	}
	th, source := selectTheme(themeRaw)
	return s.render(content, th, source)
}

func (s *renderService) ConvertCustom(ctx context.Context, userID, content, styleDescription string) (*ConvertResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, constant.ErrContentEmpty
	}
	if strings.TrimSpace(styleDescription) == "" {
		return nil, constant.ErrStyleDescriptionEmpty
	}

	th, source := s.customTheme(ctx, userID, styleDescription)
	result, err := s.render(content, th, source)
	if err != nil {
		return nil, err
	}
	result.Theme = &th
	return result, nil
}

// customTheme 由 AI 根据风格描述生成主题，失败时使用默认主题
func (s *renderService) customTheme(ctx context.Context, userID, styleDescription string) (theme.Theme, string) {
	key := strings.TrimSpace(styleDescription)
	if cached, ok := s.themes.Get(key); ok && time.Since(cached.storedAt) < customThemeTTL {
		return cached.theme, constant.ThemeSourceAI
	}

	keys, err := s.configSrv.Load(ctx, userID)
	if err != nil || keys.DeepSeekAPIKey == "" {
		return theme.Default(), constant.ThemeSourceCatalog
	}

	client := ai.NewChatClient(s.opts.DeepSeek.WithKey(keys.DeepSeekAPIKey))
	reply, err := client.Complete(ctx, ai.ChatRequest{
		Messages: []ai.Message{{
			Role:    "user",
			Content: fillPrompt(s.opts.Prompts.Layout, map[string]string{"style_description": styleDescription}),
		}},
		MaxTokens: 500,
	})
	if err != nil {
		logger.Error("自定义风格生成失败", logger.F("err", err))
		return theme.Default(), constant.ThemeSourceCatalog
	}

	partial := theme.ParsePartial(reply)
	if partial.Empty() {
		logger.Warn("自定义风格解析失败，使用默认主题", logger.F("reply", reply))
		return theme.Default(), constant.ThemeSourceCatalog
	}
	th := theme.Merge(theme.Default(), partial)
	th.ID = theme.CustomID
	s.themes.Add(key, cachedTheme{theme: th, storedAt: time.Now()})
	return th, constant.ThemeSourceAI
}

func (s *renderService) render(content string, th theme.Theme, source string) (*ConvertResult, error) {
	start := time.Now()
	html, err := wxstyle.RenderMarkdown(content, th)
	if err != nil {
		return nil, err
	}
	s.opts.Metrics.ObserveRender(source, time.Since(start))

	meta := mdmeta.Extract(content, mdmeta.DefaultSummaryLength)
	return &ConvertResult{
		HTML:    html,
		Title:   meta.Title,
		Summary: meta.Summary,
	}, nil
}

func (s *renderService) Parse(content string) (*ParseResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, constant.ErrContentEmpty
	}
	meta := mdmeta.Extract(content, mdmeta.DefaultSummaryLength)
	return &ParseResult{
		Title:     meta.Title,
		Summary:   meta.Summary,
		Images:    meta.Images,
		WordCount: utf8.RuneCountInString(content),
	}, nil
}
