package service

import (
	"context"

	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/internal/docparse"
	"github.com/yockii/wx_publisher/internal/imghost"
	"github.com/yockii/wx_publisher/pkg/logger"
)

type uploadService struct {
	opts      imghost.Options
	configSrv ConfigService
}

func NewUploadService(configSrv ConfigService, opts imghost.Options) UploadService {
	return &uploadService{
		opts:      opts,
		configSrv: configSrv,
	}
}

func (s *uploadService) ExtractDocument(filename string, data []byte) (string, error) {
	if !docparse.Supported(filename) {
		return "", constant.ErrUnsupportedFormat
	}
	content, err := docparse.Extract(filename, data)
	if err != nil {
		logger.Error("文件读取失败", logger.F("filename", filename), logger.F("err", err))
		return "", err
	}
	return content, nil
}

func (s *uploadService) UploadImage(ctx context.Context, userID string, data []byte) (*imghost.Result, error) {
	if len(data) == 0 {
		return nil, constant.ErrFileEmpty
	}
	keys, err := s.configSrv.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if keys.ImgBBAPIKey == "" {
		return nil, constant.ErrImgBBNotConfigured
	}
	return imghost.NewClient(s.opts, keys.ImgBBAPIKey).Upload(ctx, data)
}
