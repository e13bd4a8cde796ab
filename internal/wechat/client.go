package wechat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/internal/metrics"
	"github.com/yockii/wx_publisher/pkg/logger"
)

const (
	defaultTokenTTL = 7200 * time.Second
	// access_token 提前过期的时间
	tokenEarlyExpiry = 300 * time.Second
)

// TokenCache access_token 缓存
type TokenCache interface {
	GetToken(ctx context.Context, key string) (string, bool)
	SetToken(ctx context.Context, key, token string, ttl time.Duration)
}

type Options struct {
	BaseURL     string
	IPLookupURL string // 出站 IP 查询地址，返回 {"ip": "..."}
	Timeout     time.Duration
	HTTPClient  *http.Client
	Tokens      TokenCache
	Metrics     *metrics.Metrics
}

// Client 微信公众号官方接口
type Client struct {
	opts       Options
	appID      string
	appSecret  string
	httpClient *http.Client
}

func NewClient(opts Options, appID, appSecret string) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		opts:       opts,
		appID:      appID,
		appSecret:  appSecret,
		httpClient: httpClient,
	}
}

func (c *Client) tokenKey() string {
	return "wechat:token:" + c.appID
}

// AccessToken 获取 access_token，优先使用缓存
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	if c.appID == "" || c.appSecret == "" {
		return "", constant.ErrWeChatNotConfigured
	}
	if c.opts.Tokens != nil {
		if token, ok := c.opts.Tokens.GetToken(ctx, c.tokenKey()); ok {
			return token, nil
		}
	}

	q := url.Values{}
	q.Set("grant_type", "client_credential")
	q.Set("appid", c.appID)
	q.Set("secret", c.appSecret)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/token")+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	result, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("获取 access_token 失败: %w", err)
	}
	token := result.Get("access_token").String()
	if token == "" {
		return "", fmt.Errorf("获取 access_token 失败: %s: %w", describe(result), constant.ErrUpstream)
	}

	ttl := defaultTokenTTL
	if expiresIn := result.Get("expires_in").Int(); expiresIn > 0 {
		ttl = time.Duration(expiresIn) * time.Second
	}
	if c.opts.Tokens != nil && ttl > tokenEarlyExpiry {
		c.opts.Tokens.SetToken(ctx, c.tokenKey(), token, ttl-tokenEarlyExpiry)
	}
	return token, nil
}

// UploadThumb 上传永久图片素材，返回 media_id 与图片地址
func (c *Client) UploadThumb(ctx context.Context, filename string, data []byte) (string, string, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return "", "", err
	}
	q := url.Values{}
	q.Set("access_token", token)
	q.Set("type", "image")
	result, err := c.upload(ctx, c.endpoint("/material/add_material")+"?"+q.Encode(), filename, data)
	if err != nil {
		return "", "", fmt.Errorf("封面图上传失败: %w", err)
	}
	mediaID := result.Get("media_id").String()
	if mediaID == "" {
		return "", "", fmt.Errorf("封面图上传失败: %s: %w", describe(result), constant.ErrUpstream)
	}
	return mediaID, result.Get("url").String(), nil
}

// UploadContentImage 上传正文图片，返回微信图片地址
func (c *Client) UploadContentImage(ctx context.Context, filename string, data []byte) (string, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return "", err
	}
	result, err := c.upload(ctx, c.endpoint("/media/uploadimg")+"?access_token="+url.QueryEscape(token), filename, data)
	if err != nil {
		return "", fmt.Errorf("正文图片上传失败: %w", err)
	}
	imageURL := result.Get("url").String()
	if imageURL == "" {
		return "", fmt.Errorf("正文图片上传失败: %s: %w", describe(result), constant.ErrUpstream)
	}
	return imageURL, nil
}

// AddDraft 新增草稿，返回草稿 media_id
func (c *Client) AddDraft(ctx context.Context, articles []Article) (string, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(map[string]interface{}{"articles": articles})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/draft/add")+"?access_token="+url.QueryEscape(token), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	result, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("新增草稿失败: %w", err)
	}
	mediaID := result.Get("media_id").String()
	if mediaID == "" {
		return "", fmt.Errorf("新增草稿失败: %s: %w", describe(result), constant.ErrUpstream)
	}
	return mediaID, nil
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.opts.BaseURL, "/") + path
}

func (c *Client) upload(ctx context.Context, target, filename string, data []byte) (gjson.Result, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("media", filename)
	if err != nil {
		return gjson.Result{}, err
	}
	if _, err = part.Write(data); err != nil {
		return gjson.Result{}, err
	}
	if err = writer.Close(); err != nil {
		return gjson.Result{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, body)
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.do(req)
}

func (c *Client) do(req *http.Request) (gjson.Result, error) {
	start := time.Now()
	result, err := c.send(req)
	c.opts.Metrics.ObserveUpstream(constant.UpstreamWeChat, time.Since(start), err)
	return result, err
}

func (c *Client) send(req *http.Request) (gjson.Result, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("请求微信接口失败", logger.F("path", req.URL.Path), logger.F("err", err))
		return gjson.Result{}, fmt.Errorf("%v: %w", err, constant.ErrUpstream)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%v: %w", err, constant.ErrUpstream)
	}
	if resp.StatusCode != http.StatusOK {
		logger.Error("微信接口返回错误", logger.F("path", req.URL.Path), logger.F("statusCode", resp.StatusCode))
		return gjson.Result{}, fmt.Errorf("HTTP %d: %w", resp.StatusCode, constant.ErrUpstream)
	}
	result := gjson.ParseBytes(body)
	if code := result.Get("errcode").Int(); code != 0 {
		logger.Error("微信接口返回错误", logger.F("path", req.URL.Path), logger.F("errcode", code), logger.F("errmsg", result.Get("errmsg").String()))
		return gjson.Result{}, fmt.Errorf("%s: %w", describe(result), constant.ErrUpstream)
	}
	return result, nil
}

func describe(result gjson.Result) string {
	return fmt.Sprintf("错误码: %d, 错误信息: %s", result.Get("errcode").Int(), result.Get("errmsg").String())
}
