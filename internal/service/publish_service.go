package service

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/internal/wechat"
	"github.com/yockii/wx_publisher/pkg/logger"
	"github.com/yockii/wx_publisher/pkg/util"
)

type PublishRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Summary   string `json:"summary"`
	CoverPath string `json:"cover_path"`
	Author    string `json:"author"`
}

type PublishOptions struct {
	WeChat   wechat.Options
	CoverDir string
}

type publishService struct {
	opts      PublishOptions
	configSrv ConfigService
}

func NewPublishService(configSrv ConfigService, opts PublishOptions) PublishService {
	return &publishService{
		opts:      opts,
		configSrv: configSrv,
	}
}

func (s *publishService) Publish(ctx context.Context, userID string, req *PublishRequest) (string, error) {
	if strings.TrimSpace(req.Content) == "" {
		return "", constant.ErrContentEmpty
	}
	keys, err := s.configSrv.Load(ctx, userID)
	if err != nil {
		return "", err
	}
	if keys.WeChatAppID == "" || keys.WeChatAppSecret == "" {
		return "", constant.ErrWeChatNotConfigured
	}

	publishReq := wechat.PublishRequest{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
		Digest:  req.Summary,
	}
	if req.CoverPath != "" {
		// 只取文件名，封面必须位于封面目录中
		filename := path.Base(req.CoverPath)
		local, ok := util.SafeJoin(s.opts.CoverDir, filename)
		if !ok {
			return "", constant.ErrInvalidParams
		}
		data, err := os.ReadFile(local)
		if err != nil {
			logger.Error("读取封面失败", logger.F("path", local), logger.F("err", err))
			return "", fmt.Errorf("读取封面失败: %w", constant.ErrFileNotFound)
		}
		publishReq.Cover = data
		publishReq.CoverName = filename
	}

	client := wechat.NewClient(s.opts.WeChat, keys.WeChatAppID, keys.WeChatAppSecret)
	mediaID, err := client.PublishArticle(ctx, publishReq)
	if err != nil {
		logger.Error("发布草稿失败", logger.F("userId", userID), logger.F("err", err))
		return "", err
	}
	logger.Info("发布草稿成功", logger.F("userId", userID), logger.F("mediaId", mediaID))
	return mediaID, nil
}

func (s *publishService) ServerIP(ctx context.Context) (string, error) {
	ip, err := wechat.OutboundIP(ctx, s.opts.WeChat)
	if err != nil {
		logger.Error("获取出站 IP 失败", logger.F("err", err))
		return "", err
	}
	return ip, nil
}
