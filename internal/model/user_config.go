package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/yockii/wx_publisher/pkg/util"
)

// UserConfig 用户配置，Config 保存 JSON 格式的各项密钥
type UserConfig struct {
	BaseModel
	UserID    string    `json:"userId" gorm:"type:varchar(255);uniqueIndex;not null"`
	Config    string    `json:"config" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

func (u *UserConfig) TableComment() string {
	return "用户配置表"
}

// BeforeCreate 创建前钩子
func (u *UserConfig) BeforeCreate(tx *gorm.DB) error {
	if u.ID == 0 {
		u.ID = util.NewID()
	}
	return nil
}

func init() {
	models = append(models, &UserConfig{})
}
