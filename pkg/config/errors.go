package config

import "errors"

var (
	// ErrInvalidConfig 配置文件存在但无法解析
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidDatabaseConfig 数据库类型或连接参数不可用
	ErrInvalidDatabaseConfig = errors.New("invalid database configuration")
)
