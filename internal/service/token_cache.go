package service

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/yockii/wx_publisher/pkg/logger"
)

// TokenCache 与 wechat.TokenCache 一致的缓存实现
type TokenCache interface {
	GetToken(ctx context.Context, key string) (string, bool)
	SetToken(ctx context.Context, key, token string, ttl time.Duration)
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewTokenCache 配置了 redis 时使用 redis，否则使用进程内 LRU
func NewTokenCache(redisOpts *RedisOptions, size int) TokenCache {
	if redisOpts != nil {
		return &redisTokenCache{
			rdb: redis.NewClient(&redis.Options{
				Addr:         redisOpts.Addr,
				Password:     redisOpts.Password,
				DB:           redisOpts.DB,
				ReadTimeout:  3 * time.Second,
				WriteTimeout: 3 * time.Second,
			}),
		}
	}
	return newMemoryTokenCache(size)
}

type redisTokenCache struct {
	rdb *redis.Client
}

func (c *redisTokenCache) GetToken(ctx context.Context, key string) (string, bool) {
	token, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Error("读取token缓存失败", logger.F("error", err))
		}
		return "", false
	}
	return token, true
}

func (c *redisTokenCache) SetToken(ctx context.Context, key, token string, ttl time.Duration) {
	if err := c.rdb.Set(ctx, key, token, ttl).Err(); err != nil {
		logger.Error("写入token缓存失败", logger.F("error", err))
	}
}

type tokenEntry struct {
	token     string
	expiresAt time.Time
}

type memoryTokenCache struct {
	cache *lru.Cache[string, tokenEntry]
	now   func() time.Time
}

func newMemoryTokenCache(size int) *memoryTokenCache {
	if size <= 0 {
		size = 256
	}
	cache, _ := lru.New[string, tokenEntry](size)
	return &memoryTokenCache{cache: cache, now: time.Now}
}

func (c *memoryTokenCache) GetToken(_ context.Context, key string) (string, bool) {
	entry, ok := c.cache.Get(key)
	if !ok {
		return "", false
	}
	if !c.now().Before(entry.expiresAt) {
		c.cache.Remove(key)
		return "", false
	}
	return entry.token, true
}

func (c *memoryTokenCache) SetToken(_ context.Context, key, token string, ttl time.Duration) {
	c.cache.Add(key, tokenEntry{token: token, expiresAt: c.now().Add(ttl)})
}
