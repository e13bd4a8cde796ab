package imghost

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/internal/metrics"
	"github.com/yockii/wx_publisher/pkg/logger"
)

// Result 图床返回的图片地址
type Result struct {
	URL        string `json:"url"`
	DisplayURL string `json:"display_url"`
}

// Uploader 图片上传
type Uploader interface {
	Upload(ctx context.Context, data []byte) (*Result, error)
}

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Metrics    *metrics.Metrics
}

// Client ImgBB 图床
type Client struct {
	opts       Options
	apiKey     string
	httpClient *http.Client
}

func NewClient(opts Options, apiKey string) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{opts: opts, apiKey: apiKey, httpClient: httpClient}
}

// Upload 以 base64 表单上传图片
func (c *Client) Upload(ctx context.Context, data []byte) (*Result, error) {
	if c.apiKey == "" {
		return nil, constant.ErrImgBBNotConfigured
	}
	start := time.Now()
	result, err := c.upload(ctx, data)
	c.opts.Metrics.ObserveUpstream(constant.UpstreamImgBB, time.Since(start), err)
	return result, err
}

func (c *Client) upload(ctx context.Context, data []byte) (*Result, error) {
	form := url.Values{}
	form.Set("key", c.apiKey)
	form.Set("image", base64.StdEncoding.EncodeToString(data))

	endpoint := strings.TrimRight(c.opts.BaseURL, "/") + "/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("上传图床失败", logger.F("err", err))
		return nil, fmt.Errorf("上传图床失败: %v: %w", err, constant.ErrUpstream)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取图床响应失败: %v: %w", err, constant.ErrUpstream)
	}

	j := gjson.ParseBytes(body)
	if !j.Get("success").Bool() {
		logger.Error("图床返回错误", logger.F("statusCode", resp.StatusCode), logger.F("response", string(body)))
		return nil, fmt.Errorf("上传失败: %s: %w", j.Get("error.message").String(), constant.ErrUpstream)
	}
	return &Result{
		URL:        j.Get("data.url").String(),
		DisplayURL: j.Get("data.display_url").String(),
	}, nil
}
