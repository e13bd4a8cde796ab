package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，server.port 对应 WXP_SERVER_PORT
const EnvPrefix = "WXP"

var (
	config *viper.Viper
	once   sync.Once
)

// Init 初始化配置，配置文件不存在时只使用默认值和环境变量
func Init(configFiles ...string) error {
	var err error
	once.Do(func() {
		config = newViper()
		configFile := "config.yaml"
		if len(configFiles) > 0 {
			configFile = configFiles[0]
		}
		found, readErr := readConfig(config, configFile)
		if readErr != nil {
			err = readErr
			return
		}

		// 监听配置文件变化
		if found {
			config.WatchConfig()
		}
	})
	return err
}

// readConfig 读取配置文件，文件不存在不算错误
func readConfig(v *viper.Viper, file string) (bool, error) {
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: read %s failed: %v", ErrInvalidConfig, file, err)
	}
	return true, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// 提示词沿用无前缀的环境变量名
	_ = v.BindEnv("prompts.article", "PROMPT_ARTICLE")
	_ = v.BindEnv("prompts.layout", "PROMPT_LAYOUT")
	_ = v.BindEnv("prompts.cover", "PROMPT_COVER")
	setDefaults(v)
	return v
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.app_name", "wx_publisher")
	v.SetDefault("server.node_id", 1)
	v.SetDefault("server.body_limit", 32*1024*1024)

	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "data/wx_publisher.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "wx_publisher")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 3600)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.filename", "logs/app.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", true)

	v.SetDefault("storage.data_dir", "data")
	v.SetDefault("storage.temp_dir", "temp")

	v.SetDefault("security.allowed_origins", "*")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.max_requests", 60)
	v.SetDefault("rate_limit.duration", 60)

	v.SetDefault("cache.theme_size", 128)
	v.SetDefault("cache.token_size", 256)

	v.SetDefault("ai.deepseek_base_url", "https://api.deepseek.com")
	v.SetDefault("ai.deepseek_model", "deepseek-chat")
	v.SetDefault("ai.groq_base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("ai.whisper_model", "whisper-large-v3")
	v.SetDefault("ai.poe_base_url", "https://api.poe.com/v1")
	v.SetDefault("ai.poe_model", "nano-banana")
	v.SetDefault("ai.timeout", 120)
	v.SetDefault("ai.max_retries", 2)

	v.SetDefault("imgbb.base_url", "https://api.imgbb.com/1")
	v.SetDefault("wechat.base_url", "https://api.weixin.qq.com/cgi-bin")
	v.SetDefault("wechat.timeout", 60)
	v.SetDefault("wechat.ip_lookup_url", "https://api.ipify.org?format=json")
}

// Get 获取配置值
func Get(key string) interface{} {
	return config.Get(key)
}

// GetString 获取字符串配置值
func GetString(key string) string {
	return config.GetString(key)
}

// GetInt 获取整数配置值
func GetInt(key string) int {
	return config.GetInt(key)
}

// GetInt64 获取64位整数配置值
func GetInt64(key string) int64 {
	return config.GetInt64(key)
}

// GetUint64 获取64位无符号整数配置值
func GetUint64(key string) uint64 {
	return config.GetUint64(key)
}

// GetFloat64 获取浮点数配置值
func GetFloat64(key string) float64 {
	return config.GetFloat64(key)
}

// GetBool 获取布尔配置值
func GetBool(key string) bool {
	return config.GetBool(key)
}

// GetStringSlice 获取字符串切片配置值
func GetStringSlice(key string) []string {
	return config.GetStringSlice(key)
}

// Set 设置配置值
func Set(key string, value interface{}) {
	config.Set(key, value)
}

// IsSet 检查配置值是否已设置
func IsSet(key string) bool {
	return config.IsSet(key)
}

// GetDSN 获取数据库连接字符串
func GetDSN() string {
	dbType := GetString("database.type")
	switch strings.ToLower(dbType) {
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			GetString("database.host"),
			GetInt("database.port"),
			GetString("database.user"),
			GetString("database.password"),
			GetString("database.dbname"),
		)
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			GetString("database.user"),
			GetString("database.password"),
			GetString("database.host"),
			GetInt("database.port"),
			GetString("database.dbname"),
		)
	case "sqlite":
		return GetString("database.path")
	default:
		return ""
	}
}

// GetServerAddress 获取服务器地址
func GetServerAddress() string {
	return fmt.Sprintf(":%d", GetInt("server.port"))
}
