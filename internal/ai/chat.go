package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/tidwall/gjson"

	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/internal/metrics"
	"github.com/yockii/wx_publisher/pkg/logger"
)

// Options OpenAI 兼容接口的连接参数
type Options struct {
	Name       string // 指标与日志中的服务名
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
	HTTPClient *http.Client
	Metrics    *metrics.Metrics
}

func (o Options) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// WithKey 返回使用指定密钥的副本
func (o Options) WithKey(apiKey string) Options {
	o.APIKey = apiKey
	return o
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
	Extra       map[string]interface{}
}

func (r ChatRequest) body(defaultModel string) ([]byte, error) {
	payload := make(map[string]interface{}, len(r.Extra)+4)
	for k, v := range r.Extra {
		payload[k] = v
	}
	model := r.Model
	if model == "" {
		model = defaultModel
	}
	payload["model"] = model
	payload["messages"] = r.Messages
	if r.MaxTokens > 0 {
		payload["max_tokens"] = r.MaxTokens
	}
	if r.Temperature > 0 {
		payload["temperature"] = r.Temperature
	}
	return json.Marshal(payload)
}

// ChatClient 调用 /chat/completions
type ChatClient struct {
	opts       Options
	httpClient *http.Client
}

func NewChatClient(opts Options) *ChatClient {
	if opts.Backoff <= 0 {
		opts.Backoff = time.Second
	}
	return &ChatClient{
		opts:       opts,
		httpClient: opts.httpClient(),
	}
}

// Complete 发送对话请求并返回第一条回复内容，网络错误与 5xx 会退避重试
func (c *ChatClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	reqBody, err := req.body(c.opts.Model)
	if err != nil {
		logger.Error("序列化请求体失败", logger.F("err", err))
		return "", err
	}

	start := time.Now()
	content, err := c.completeWithRetry(ctx, reqBody)
	c.opts.Metrics.ObserveUpstream(c.opts.Name, time.Since(start), err)
	return content, err
}

func (c *ChatClient) completeWithRetry(ctx context.Context, reqBody []byte) (string, error) {
	var content string
	op := func() error {
		reply, retry, err := c.do(ctx, reqBody)
		if err != nil {
			if !retry {
				return backoff.Permanent(err)
			}
			return err
		}
		content = reply
		return nil
	}
	notify := func(err error, wait time.Duration) {
		logger.Warn("重试对话请求", logger.F("service", c.opts.Name), logger.F("wait", wait), logger.F("err", err))
	}
	if err := backoff.RetryNotify(op, c.newBackOff(ctx), notify); err != nil {
		return "", err
	}
	return content, nil
}

// newBackOff 以 Backoff 为初始间隔指数退避，最多重试 MaxRetries 次
func (c *ChatClient) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.opts.Backoff
	b.MaxInterval = 30 * c.opts.Backoff
	b.MaxElapsedTime = 0
	retries := c.opts.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

func (c *ChatClient) do(ctx context.Context, reqBody []byte) (string, bool, error) {
	url := strings.TrimRight(c.opts.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return "", false, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.opts.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		logger.Error("发送请求失败", logger.F("service", c.opts.Name), logger.F("err", err))
		return "", true, fmt.Errorf("%s 请求失败: %v: %w", c.opts.Name, err, constant.ErrUpstream)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("%s 读取响应失败: %v: %w", c.opts.Name, err, constant.ErrUpstream)
	}
	if resp.StatusCode != http.StatusOK {
		logger.Error("API返回错误", logger.F("service", c.opts.Name), logger.F("statusCode", resp.StatusCode), logger.F("response", string(body)))
		return "", resp.StatusCode >= 500, fmt.Errorf("%s API错误: %d, %s: %w", c.opts.Name, resp.StatusCode, errorMessage(body), constant.ErrUpstream)
	}

	content := gjson.GetBytes(body, "choices.0.message.content")
	if !content.Exists() {
		return "", false, fmt.Errorf("%s 响应缺少内容: %w", c.opts.Name, constant.ErrUpstream)
	}
	return content.String(), false, nil
}

func errorMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "error.message"); msg.Exists() {
		return msg.String()
	}
	if msg := gjson.GetBytes(body, "error"); msg.Type == gjson.String {
		return msg.String()
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

