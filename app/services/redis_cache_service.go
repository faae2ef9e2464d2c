package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/blog-stats/app/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultRedisPrefix = "blog_stats:"

// RedisCacheService cache service sử dụng Redis
type RedisCacheService struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisCacheService tạo mới Redis cache service. ttl = 0 là không hết hạn.
func NewRedisCacheService(redisURL string, ttl time.Duration, logger *zap.Logger) (*RedisCacheService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return NewRedisCacheServiceWithClient(client, ttl, logger), nil
}

// NewRedisCacheServiceWithClient dùng client có sẵn
func NewRedisCacheServiceWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCacheService {
	return &RedisCacheService{
		client: client,
		logger: logger,
		prefix: defaultRedisPrefix,
		ttl:    ttl,
	}
}

// Get lấy BlogStats từ cache
func (rcs *RedisCacheService) Get(ctx context.Context, key string) (*models.BlogStats, bool, error) {
	cacheKey := rcs.prefix + key

	val, err := rcs.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		rcs.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		rcs.logger.Error("Redis get failed", zap.Error(err))
		return nil, false, err
	}

	var result models.BlogStats
	if err := json.Unmarshal(val, &result); err != nil {
		rcs.logger.Error("Unmarshal cached stats failed", zap.Error(err))
		return nil, false, err
	}

	rcs.hits.Add(1)
	return &result, true, nil
}

// Set lưu BlogStats vào cache
func (rcs *RedisCacheService) Set(ctx context.Context, key string, stats *models.BlogStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal cache data: %w", err)
	}

	if err := rcs.client.Set(ctx, rcs.prefix+key, data, rcs.ttl).Err(); err != nil {
		rcs.logger.Error("Redis set failed", zap.Error(err))
		return err
	}

	return nil
}

// Delete xóa key khỏi cache
func (rcs *RedisCacheService) Delete(ctx context.Context, key string) error {
	return rcs.client.Del(ctx, rcs.prefix+key).Err()
}

// Clear xóa toàn bộ key có prefix của service
func (rcs *RedisCacheService) Clear(ctx context.Context) error {
	keys, err := rcs.keys(ctx)
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		if err := rcs.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("delete keys: %w", err)
		}
	}

	rcs.hits.Store(0)
	rcs.misses.Store(0)
	rcs.logger.Info("Cleared Redis cache", zap.Int("keys_deleted", len(keys)))
	return nil
}

// GetStats lấy thống kê cache
func (rcs *RedisCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	keys, err := rcs.keys(ctx)
	if err != nil {
		return nil, err
	}

	hits, misses := rcs.hits.Load(), rcs.misses.Load()
	return &CacheStats{
		Backend:    "redis",
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(len(keys)),
	}, nil
}

// Exists kiểm tra key có tồn tại không
func (rcs *RedisCacheService) Exists(ctx context.Context, key string) (bool, error) {
	n, err := rcs.client.Exists(ctx, rcs.prefix+key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetTTL lấy TTL của key, 0 nếu key không hết hạn hoặc không tồn tại
func (rcs *RedisCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := rcs.client.TTL(ctx, rcs.prefix+key).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

// Ping kiểm tra kết nối Redis
func (rcs *RedisCacheService) Ping(ctx context.Context) error {
	return rcs.client.Ping(ctx).Err()
}

// Close đóng kết nối Redis
func (rcs *RedisCacheService) Close() error {
	return rcs.client.Close()
}

func (rcs *RedisCacheService) keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := rcs.client.Scan(ctx, 0, rcs.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan keys: %w", err)
	}
	return keys, nil
}
