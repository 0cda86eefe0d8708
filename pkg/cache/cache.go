package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportCache 报表结果缓存，优先本地缓存，Redis 作为共享层。
// 缓存键由快照指纹和报表名组成，快照变化后旧键自然失效。
type ReportCache struct {
	redis *redis.Client
	local *localCache
	ttl   time.Duration
}

type localCache struct {
	data map[string]*cacheItem
	mu   sync.RWMutex
}

type cacheItem struct {
	value     []byte
	expiresAt time.Time
}

// NewReportCache 创建报表缓存，redisClient 可以为 nil（仅本地缓存）
func NewReportCache(redisClient *redis.Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	c := &ReportCache{
		redis: redisClient,
		local: &localCache{data: make(map[string]*cacheItem)},
		ttl:   ttl,
	}

	// 本地缓存过期清理协程
	go c.cleanupLocal()

	return c
}

// Key 组合快照指纹与报表名生成缓存键
func Key(fingerprint, report string) string {
	return fmt.Sprintf("report:%s:%s", fingerprint, report)
}

// Get 获取缓存的报表行，未命中返回 false
func (c *ReportCache) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	// 1. 本地缓存
	if data, found := c.getFromLocal(key); found {
		return data, true
	}

	// 2. Redis
	if c.redis != nil {
		data, err := c.redis.Get(ctx, key).Bytes()
		if err == nil {
			c.setToLocal(key, data, c.ttl)
			return data, true
		}
	}

	return nil, false
}

// Set 缓存报表行，本地同步写入，Redis 异步写入
func (c *ReportCache) Set(ctx context.Context, key string, rows interface{}) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("序列化报表失败: %w", err)
	}

	c.setToLocal(key, data, c.ttl)

	if c.redis != nil {
		go func() {
			c.redis.Set(context.Background(), key, data, c.ttl)
		}()
	}
	return nil
}

func (c *ReportCache) getFromLocal(key string) ([]byte, bool) {
	c.local.mu.RLock()
	defer c.local.mu.RUnlock()

	item, exists := c.local.data[key]
	if !exists || time.Now().After(item.expiresAt) {
		return nil, false
	}
	return item.value, true
}

func (c *ReportCache) setToLocal(key string, value []byte, ttl time.Duration) {
	c.local.mu.Lock()
	defer c.local.mu.Unlock()

	c.local.data[key] = &cacheItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

// cleanupLocal 定期清理过期的本地缓存项
func (c *ReportCache) cleanupLocal() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.local.mu.Lock()
		for key, item := range c.local.data {
			if now.After(item.expiresAt) {
				delete(c.local.data, key)
			}
		}
		c.local.mu.Unlock()
	}
}
