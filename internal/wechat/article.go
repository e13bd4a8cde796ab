package wechat

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/pkg/logger"
)

const (
	maxTitleLength  = 32
	maxDigestLength = 120
	fullCrop        = "0_0_1_1"
)

// Article 草稿中的单篇图文
type Article struct {
	ArticleType        string `json:"article_type"`
	Title              string `json:"title"`
	Author             string `json:"author"`
	Digest             string `json:"digest"`
	Content            string `json:"content"`
	ContentSourceURL   string `json:"content_source_url"`
	ThumbMediaID       string `json:"thumb_media_id"`
	NeedOpenComment    int    `json:"need_open_comment"`
	OnlyFansCanComment int    `json:"only_fans_can_comment"`
	PicCrop235         string `json:"pic_crop_235_1"`
	PicCrop11          string `json:"pic_crop_1_1"`
}

type PublishRequest struct {
	Title              string
	Content            string
	Author             string
	Digest             string
	SourceURL          string
	ThumbMediaID       string
	Cover              []byte
	CoverName          string
	NeedOpenComment    int
	OnlyFansCanComment int
}

// NewArticle 按微信限制截断标题与摘要，摘要为空时使用标题
func NewArticle(req PublishRequest) Article {
	title := Truncate(req.Title, maxTitleLength)
	digest := req.Digest
	if digest == "" {
		digest = title
	}
	return Article{
		ArticleType:        "news",
		Title:              title,
		Author:             req.Author,
		Digest:             Truncate(digest, maxDigestLength),
		Content:            req.Content,
		ContentSourceURL:   req.SourceURL,
		ThumbMediaID:       req.ThumbMediaID,
		NeedOpenComment:    req.NeedOpenComment,
		OnlyFansCanComment: req.OnlyFansCanComment,
		PicCrop235:         fullCrop,
		PicCrop11:          fullCrop,
	}
}

// Truncate 超过 limit 个字符时保留 limit-3 个字符并追加省略号
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// CropCoordinates 计算居中裁剪到 2.35:1 与 1:1 的归一化坐标
func CropCoordinates(width, height int) (string, string) {
	if width <= 0 || height <= 0 {
		return fullCrop, fullCrop
	}
	ratio := float64(width) / float64(height)
	return crop(ratio, 2.35), crop(ratio, 1)
}

func crop(current, target float64) string {
	switch {
	case current > target:
		x1 := (1 - target/current) / 2
		return fmt.Sprintf("%.6f_0_%.6f_1", x1, 1-x1)
	case current < target:
		y1 := (1 - current/target) / 2
		return fmt.Sprintf("0_%.6f_1_%.6f", y1, 1-y1)
	default:
		return fullCrop
	}
}

// PublishArticle 上传封面后把文章存入草稿箱，返回草稿 media_id
func (c *Client) PublishArticle(ctx context.Context, req PublishRequest) (string, error) {
	article := NewArticle(req)

	if len(req.Cover) > 0 {
		if article.ThumbMediaID == "" {
			name := req.CoverName
			if name == "" {
				name = "cover.png"
			}
			mediaID, _, err := c.UploadThumb(ctx, name, req.Cover)
			if err != nil {
				return "", err
			}
			article.ThumbMediaID = mediaID
		}
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(req.Cover)); err == nil {
			article.PicCrop235, article.PicCrop11 = CropCoordinates(cfg.Width, cfg.Height)
		} else {
			logger.Warn("计算裁剪坐标失败，使用默认值", logger.F("err", err))
		}
	}
	if article.ThumbMediaID == "" {
		return "", constant.ErrNoCoverImage
	}
	return c.AddDraft(ctx, []Article{article})
}
