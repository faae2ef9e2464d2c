package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/blog-stats/app/models"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

type lruEntry struct {
	stats     *models.BlogStats
	expiresAt time.Time
}

// LRUCacheService cache in-memory có giới hạn số entry (LRU) và TTL tùy chọn
type LRUCacheService struct {
	cache  *expirable.LRU[string, lruEntry]
	ttl    time.Duration
	size   int
	logger *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// NewLRUCacheService tạo mới LRUCacheService. size phải > 0, ttl = 0 là không hết hạn.
func NewLRUCacheService(size int, ttl time.Duration, logger *zap.Logger) (*LRUCacheService, error) {
	if size <= 0 {
		return nil, fmt.Errorf("lru cache size must be positive, got %d", size)
	}

	lcs := &LRUCacheService{
		ttl:    ttl,
		size:   size,
		logger: logger,
	}
	lcs.cache = expirable.NewLRU[string, lruEntry](size, lcs.onEvict, ttl)

	return lcs, nil
}

func (lcs *LRUCacheService) onEvict(key string, _ lruEntry) {
	lcs.logger.Debug("LRU cache evicted", zap.String("key", key))
}

// Get lấy BlogStats từ cache
func (lcs *LRUCacheService) Get(ctx context.Context, key string) (*models.BlogStats, bool, error) {
	entry, found := lcs.cache.Get(key)
	if !found {
		lcs.misses.Add(1)
		return nil, false, nil
	}

	lcs.hits.Add(1)
	return entry.stats, true, nil
}

// Set lưu BlogStats vào cache
func (lcs *LRUCacheService) Set(ctx context.Context, key string, stats *models.BlogStats) error {
	entry := lruEntry{stats: stats}
	if lcs.ttl > 0 {
		entry.expiresAt = time.Now().Add(lcs.ttl)
	}
	lcs.cache.Add(key, entry)
	return nil
}

// Delete xóa key khỏi cache
func (lcs *LRUCacheService) Delete(ctx context.Context, key string) error {
	lcs.cache.Remove(key)
	return nil
}

// Clear xóa toàn bộ cache
func (lcs *LRUCacheService) Clear(ctx context.Context) error {
	lcs.cache.Purge()
	lcs.hits.Store(0)
	lcs.misses.Store(0)
	return nil
}

// GetStats lấy thống kê cache
func (lcs *LRUCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits, misses := lcs.hits.Load(), lcs.misses.Load()
	return &CacheStats{
		Backend:    "lru",
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(lcs.cache.Len()),
	}, nil
}

// Exists kiểm tra key có tồn tại không, không cập nhật thứ tự LRU
func (lcs *LRUCacheService) Exists(ctx context.Context, key string) (bool, error) {
	_, found := lcs.cache.Peek(key)
	return found, nil
}

// GetTTL lấy TTL còn lại của key
func (lcs *LRUCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	entry, found := lcs.cache.Peek(key)
	if !found || entry.expiresAt.IsZero() {
		return 0, nil
	}
	remaining := time.Until(entry.expiresAt)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

// Ping LRU trong process luôn sẵn sàng
func (lcs *LRUCacheService) Ping(ctx context.Context) error {
	return nil
}

// Close không cần thiết cho LRU
func (lcs *LRUCacheService) Close() error {
	return nil
}
