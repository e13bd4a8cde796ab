package util

import (
	"strings"

	"github.com/google/uuid"
	snowflake "github.com/yockii/snowflake_ext"
)

var idGenerator *snowflake.Worker

// InitNode 初始化ID生成器
func InitNode(nodeID uint64) error {
	var err error
	idGenerator, err = snowflake.NewSnowflake(nodeID)
	if err != nil {
		return err
	}
	return nil
}

// NewID 生成新的ID
func NewID() uint64 {
	return idGenerator.NextId()
}

// NewFileName 生成随机文件名，ext 不带点
func NewFileName(prefix, ext string) string {
	name := prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if ext == "" {
		return name
	}
	return name + "." + ext
}
