package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/pkg/logger"
	"github.com/yockii/wx_publisher/pkg/util"
)

// 语音识别支持的音频格式
var supportedAudio = map[string]bool{
	"mp3":  true,
	"mp4":  true,
	"mpeg": true,
	"mpga": true,
	"m4a":  true,
	"wav":  true,
	"webm": true,
}

// AudioExt 返回文件扩展名，不支持的格式按 webm 处理
func AudioExt(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !supportedAudio[ext] {
		return "webm"
	}
	return ext
}

// Transcriber Whisper 语音转文字
type Transcriber struct {
	opts       Options
	language   string
	httpClient *http.Client
}

func NewTranscriber(opts Options, language string) *Transcriber {
	if language == "" {
		language = "zh"
	}
	return &Transcriber{
		opts:       opts,
		language:   language,
		httpClient: opts.httpClient(),
	}
}

// Transcribe 上传音频并返回识别出的文本
func (t *Transcriber) Transcribe(ctx context.Context, filename string, audio []byte) (string, error) {
	start := time.Now()
	text, err := t.transcribe(ctx, filename, audio)
	t.opts.Metrics.ObserveUpstream(t.opts.Name, time.Since(start), err)
	return text, err
}

func (t *Transcriber) transcribe(ctx context.Context, filename string, audio []byte) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", util.NewFileName("audio", AudioExt(filename)))
	if err != nil {
		return "", err
	}
	if _, err = part.Write(audio); err != nil {
		return "", err
	}
	fields := map[string]string{
		"model":           t.opts.Model,
		"language":        t.language,
		"response_format": "text",
	}
	for k, v := range fields {
		if err = writer.WriteField(k, v); err != nil {
			return "", err
		}
	}
	if err = writer.Close(); err != nil {
		return "", err
	}

	url := strings.TrimRight(t.opts.BaseURL, "/") + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+t.opts.APIKey)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		logger.Error("语音识别请求失败", logger.F("err", err))
		return "", fmt.Errorf("语音识别请求失败: %v: %w", err, constant.ErrUpstream)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取语音识别响应失败: %v: %w", err, constant.ErrUpstream)
	}
	if resp.StatusCode != http.StatusOK {
		logger.Error("语音识别API返回错误", logger.F("statusCode", resp.StatusCode), logger.F("response", string(respBody)))
		return "", fmt.Errorf("Groq API 错误: %s: %w", errorMessage(respBody), constant.ErrUpstream)
	}
	return strings.TrimSpace(string(respBody)), nil
}
