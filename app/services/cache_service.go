package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blog-stats/app/models"
)

// CacheService cache in-memory. ttl = 0 thì entry sống suốt vòng đời process.
type CacheService struct {
	cache      map[string]*models.BlogStats
	timestamps map[string]time.Time
	mu         sync.RWMutex
	ttl        time.Duration
	now        func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCacheService tạo mới CacheService
func NewCacheService(ttl time.Duration) *CacheService {
	return &CacheService{
		cache:      make(map[string]*models.BlogStats),
		timestamps: make(map[string]time.Time),
		ttl:        ttl,
		now:        time.Now,
	}
}

// Get lấy kết quả từ cache
func (cs *CacheService) Get(ctx context.Context, key string) (*models.BlogStats, bool, error) {
	cs.mu.RLock()
	result, exists := cs.cache[key]
	expired := exists && cs.isExpired(key)
	cs.mu.RUnlock()

	if !exists || expired {
		if expired {
			cs.deleteExpired(key)
		}
		cs.misses.Add(1)
		return nil, false, nil
	}

	cs.hits.Add(1)
	return result, true, nil
}

// Set lưu kết quả vào cache
func (cs *CacheService) Set(ctx context.Context, key string, stats *models.BlogStats) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.timestamps[key] = cs.now()
	cs.cache[key] = stats

	return nil
}

// Delete xóa item khỏi cache
func (cs *CacheService) Delete(ctx context.Context, key string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	delete(cs.cache, key)
	delete(cs.timestamps, key)

	return nil
}

// Clear xóa toàn bộ cache
func (cs *CacheService) Clear(ctx context.Context) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.cache = make(map[string]*models.BlogStats)
	cs.timestamps = make(map[string]time.Time)
	cs.hits.Store(0)
	cs.misses.Store(0)

	return nil
}

// Size lấy kích thước cache
func (cs *CacheService) Size() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	return len(cs.cache)
}

// GetStats lấy thống kê cache
func (cs *CacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	active := int64(0)
	for key := range cs.cache {
		if !cs.isExpired(key) {
			active++
		}
	}

	hits, misses := cs.hits.Load(), cs.misses.Load()
	return &CacheStats{
		Backend:    "memory",
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: active,
	}, nil
}

// CleanupExpired xóa các item hết hạn
func (cs *CacheService) CleanupExpired() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	removed := 0
	for key := range cs.cache {
		if cs.isExpired(key) {
			delete(cs.cache, key)
			delete(cs.timestamps, key)
			removed++
		}
	}
	return removed
}

// isExpired kiểm tra item có hết hạn không, caller phải giữ lock
func (cs *CacheService) isExpired(key string) bool {
	if cs.ttl <= 0 {
		return false
	}
	timestamp, exists := cs.timestamps[key]
	if !exists {
		return true
	}
	return cs.now().Sub(timestamp) > cs.ttl
}

func (cs *CacheService) deleteExpired(key string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	// Có thể đã được Set lại trong lúc chờ lock
	if cs.isExpired(key) {
		delete(cs.cache, key)
		delete(cs.timestamps, key)
	}
}

// Exists kiểm tra key có tồn tại không
func (cs *CacheService) Exists(ctx context.Context, key string) (bool, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	_, exists := cs.cache[key]
	return exists && !cs.isExpired(key), nil
}

// GetTTL lấy TTL còn lại của key
func (cs *CacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	timestamp, exists := cs.timestamps[key]
	if !exists || cs.ttl <= 0 {
		return 0, nil
	}

	remaining := cs.ttl - cs.now().Sub(timestamp)
	if remaining < 0 {
		return 0, nil
	}

	return remaining, nil
}

// Ping cache trong process luôn sẵn sàng
func (cs *CacheService) Ping(ctx context.Context) error {
	return nil
}

// StartCleanupWorker khởi động worker dọn dẹp cache, dừng khi ctx bị hủy
func (cs *CacheService) StartCleanupWorker(ctx context.Context, interval time.Duration) {
	if cs.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cs.CleanupExpired()
			}
		}
	}()
}

// Close đóng kết nối (không cần thiết cho in-memory cache)
func (cs *CacheService) Close() error {
	return nil
}
