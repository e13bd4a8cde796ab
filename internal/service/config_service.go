package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/internal/model"
	"github.com/yockii/wx_publisher/pkg/logger"
	"github.com/yockii/wx_publisher/pkg/util"
)

// UserKeys 用户保存的第三方服务密钥
type UserKeys struct {
	WeChatAppID     string `json:"wechat_app_id"`
	WeChatAppSecret string `json:"wechat_app_secret"`
	ImgBBAPIKey     string `json:"imgbb_api_key"`
	PoeAPIKey       string `json:"poe_api_key"`
	DeepSeekAPIKey  string `json:"deepseek_api_key"`
	GroqAPIKey      string `json:"groq_api_key"`
}

// MaskedKeys 返回给前端展示的脱敏配置
type MaskedKeys struct {
	WeChatAppID     string `json:"wechat_app_id"`
	WeChatAppSecret string `json:"wechat_app_secret"`
	ImgBBAPIKey     string `json:"imgbb_api_key"`
	DeepSeekAPIKey  string `json:"deepseek_api_key"`
	GroqAPIKey      string `json:"groq_api_key"`
	Configured      bool   `json:"configured"`
	UserID          string `json:"user_id"`
}

// AIKeys 登录用户可直接读取的 AI 密钥
type AIKeys struct {
	DeepSeekAPIKey string `json:"deepseek_api_key"`
	GroqAPIKey     string `json:"groq_api_key"`
	PoeAPIKey      string `json:"poe_api_key"`
}

func (k *UserKeys) Masked(userID string) *MaskedKeys {
	secret := ""
	if k.WeChatAppSecret != "" {
		secret = "***"
	}
	return &MaskedKeys{
		WeChatAppID:     mask(k.WeChatAppID),
		WeChatAppSecret: secret,
		ImgBBAPIKey:     mask(k.ImgBBAPIKey),
		DeepSeekAPIKey:  mask(k.DeepSeekAPIKey),
		GroqAPIKey:      mask(k.GroqAPIKey),
		Configured:      k.DeepSeekAPIKey != "",
		UserID:          userID,
	}
}

func (k *UserKeys) AIKeys() *AIKeys {
	return &AIKeys{
		DeepSeekAPIKey: k.DeepSeekAPIKey,
		GroqAPIKey:     k.GroqAPIKey,
		PoeAPIKey:      k.PoeAPIKey,
	}
}

// merge 用 patch 中的非空字段覆盖
func (k *UserKeys) merge(patch *UserKeys) {
	if patch == nil {
		return
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&k.WeChatAppID, patch.WeChatAppID)
	set(&k.WeChatAppSecret, patch.WeChatAppSecret)
	set(&k.ImgBBAPIKey, patch.ImgBBAPIKey)
	set(&k.PoeAPIKey, patch.PoeAPIKey)
	set(&k.DeepSeekAPIKey, patch.DeepSeekAPIKey)
	set(&k.GroqAPIKey, patch.GroqAPIKey)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	if len(r) > 10 {
		r = r[:10]
	}
	return string(r) + "***"
}

type configService struct {
	db      *gorm.DB
	dataDir string
}

// NewConfigService db 为 nil 时只使用文件存储
func NewConfigService(db *gorm.DB, dataDir string) ConfigService {
	return &configService{
		db:      db,
		dataDir: dataDir,
	}
}

func (s *configService) userFile(userID string) string {
	return filepath.Join(s.dataDir, "users", util.MD5Hex(userID)+".json")
}

func (s *configService) globalFile() string {
	return filepath.Join(s.dataDir, "user_config.json")
}

func (s *configService) Load(ctx context.Context, userID string) (*UserKeys, error) {
	keys := &UserKeys{}
	if userID != "" {
		if s.db != nil {
			found, err := s.loadFromDB(ctx, userID, keys)
			if err != nil {
				logger.Warn("从数据库读取配置失败，使用文件配置", logger.F("userId", userID), logger.F("err", err))
			} else if found {
				return keys, nil
			}
		}
		found, err := loadFile(s.userFile(userID), keys)
		if err != nil {
			logger.Warn("读取用户配置文件失败", logger.F("userId", userID), logger.F("err", err))
		} else if found {
			return keys, nil
		}
	}

	if _, err := loadFile(s.globalFile(), keys); err != nil {
		logger.Warn("读取全局配置文件失败", logger.F("err", err))
	}
	return keys, nil
}

func (s *configService) loadFromDB(ctx context.Context, userID string, keys *UserKeys) (bool, error) {
	var record model.UserConfig
	if err := s.db.WithContext(ctx).Where(&model.UserConfig{UserID: userID}).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(record.Config), keys); err != nil {
		return false, err
	}
	return true, nil
}

func loadFile(path string, keys *UserKeys) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, keys); err != nil {
		return false, err
	}
	return true, nil
}

func (s *configService) Save(ctx context.Context, userID string, keys *UserKeys) error {
	data, err := json.MarshalIndent(keys, "", "  ")
	if err != nil {
		logger.Error("序列化配置失败", logger.F("error", err))
		return constant.ErrSerializeError
	}

	if userID == "" {
		return util.SaveFile(s.globalFile(), data)
	}

	if s.db != nil {
		record := &model.UserConfig{}
		if err := s.db.WithContext(ctx).
			Where(&model.UserConfig{UserID: userID}).
			Assign(&model.UserConfig{Config: string(data)}).
			FirstOrCreate(record).Error; err != nil {
			logger.Error("保存配置到数据库失败", logger.F("userId", userID), logger.F("err", err))
		}
	}
	// 本地文件作为备份
	if err := util.SaveFile(s.userFile(userID), data); err != nil {
		return fmt.Errorf("保存配置文件失败: %w", err)
	}
	return nil
}

func (s *configService) Update(ctx context.Context, userID string, patch *UserKeys) (*UserKeys, error) {
	keys, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	keys.merge(patch)
	if err := s.Save(ctx, userID, keys); err != nil {
		return nil, err
	}
	return keys, nil
}
