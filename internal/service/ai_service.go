package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/yockii/wx_publisher/internal/ai"
	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/pkg/logger"
)

// 改写结果未以这些字符结尾时可能被截断
var articleEndings = []string{"。", "！", "？", "\"", "）", "…", "\n"}

type RewriteResult struct {
	Article   string `json:"article"`
	WordCount int    `json:"word_count"`
}

type AIOptions struct {
	DeepSeek ai.Options
	Groq     ai.Options
	Prompts  *Prompts
}

type aiService struct {
	opts      AIOptions
	configSrv ConfigService
}

func NewAIService(configSrv ConfigService, opts AIOptions) AIService {
	if opts.Prompts == nil {
		opts.Prompts = DefaultPrompts()
	}
	return &aiService{
		opts:      opts,
		configSrv: configSrv,
	}
}

func (s *aiService) Prompts() *Prompts {
	p := *s.opts.Prompts
	return &p
}

func (s *aiService) deepSeek(ctx context.Context, userID string) (*ai.ChatClient, error) {
	keys, err := s.configSrv.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if keys.DeepSeekAPIKey == "" {
		return nil, constant.ErrDeepSeekNotConfigured
	}
	return ai.NewChatClient(s.opts.DeepSeek.WithKey(keys.DeepSeekAPIKey)), nil
}

func (s *aiService) Rewrite(ctx context.Context, userID, content string) (*RewriteResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, constant.ErrContentEmpty
	}
	client, err := s.deepSeek(ctx, userID)
	if err != nil {
		return nil, err
	}

	system := fillPrompt(rewriteSystemPrompt, map[string]string{
		"length_hint": rewriteLengthHint(utf8.RuneCountInString(content)),
	})
	reply, err := client.Complete(ctx, ai.ChatRequest{
		Messages: []ai.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: "请将以下内容改写成一篇完整的公众号文章：\n\n---\n" + content + "\n---\n\n请直接输出完整文章："},
		},
		MaxTokens:   4000,
		Temperature: 0.75,
	})
	if err != nil {
		logger.Error("AI改写失败", logger.F("userId", userID), logger.F("err", err))
		return nil, err
	}

	article := strings.TrimSpace(reply)
	if !hasArticleEnding(article) {
		logger.Warn("改写结果可能被截断", logger.F("length", utf8.RuneCountInString(article)))
	}
	return &RewriteResult{
		Article:   article,
		WordCount: countWords(article),
	}, nil
}

func hasArticleEnding(article string) bool {
	for _, e := range articleEndings {
		if strings.HasSuffix(article, e) {
			return true
		}
	}
	return false
}

// countWords 去掉空格与换行后的字符数
func countWords(s string) int {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\n", "")
	return utf8.RuneCountInString(s)
}

func (s *aiService) Chat(ctx context.Context, userID string, messages []ai.Message) (string, error) {
	client, err := s.deepSeek(ctx, userID)
	if err != nil {
		return "", err
	}
	all := make([]ai.Message, 0, len(messages)+1)
	all = append(all, ai.Message{Role: "system", Content: chatSystemPrompt})
	all = append(all, messages...)
	return client.Complete(ctx, ai.ChatRequest{
		Messages:  all,
		MaxTokens: 500,
	})
}

func (s *aiService) Transcribe(ctx context.Context, userID, filename string, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", constant.ErrFileEmpty
	}
	keys, err := s.configSrv.Load(ctx, userID)
	if err != nil {
		return "", err
	}
	if keys.GroqAPIKey == "" {
		return "", constant.ErrGroqNotConfigured
	}
	text, err := ai.NewTranscriber(s.opts.Groq.WithKey(keys.GroqAPIKey), "zh").Transcribe(ctx, filename, audio)
	if err != nil {
		logger.Error("语音识别失败", logger.F("userId", userID), logger.F("err", err))
		return "", err
	}
	return text, nil
}
