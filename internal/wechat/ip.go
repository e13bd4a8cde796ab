package wechat

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yockii/wx_publisher/internal/constant"
)

const defaultIPLookupURL = "https://api.ipify.org?format=json"

// OutboundIP 查询本服务的出站 IP，公众号后台需要把它加入 IP 白名单
func OutboundIP(ctx context.Context, opts Options) (string, error) {
	lookup := opts.IPLookupURL
	if lookup == "" {
		lookup = defaultIPLookupURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookup, nil)
	if err != nil {
		return "", err
	}

	c := NewClient(opts, "", "")
	start := time.Now()
	result, err := c.send(req)
	if err == nil && strings.TrimSpace(result.Get("ip").String()) == "" {
		err = fmt.Errorf("响应缺少 ip: %w", constant.ErrUpstream)
	}
	c.opts.Metrics.ObserveUpstream(constant.UpstreamIPLookup, time.Since(start), err)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Get("ip").String()), nil
}
