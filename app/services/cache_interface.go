package services

import (
	"context"
	"time"

	"github.com/blog-stats/app/models"
)

// CacheStats thống kê cache
type CacheStats struct {
	Backend    string  `json:"backend"`
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService interface định nghĩa các method cần thiết cho cache BlogStats
type ICacheService interface {
	// Get lấy BlogStats từ cache
	Get(ctx context.Context, key string) (*models.BlogStats, bool, error)

	// Set lưu BlogStats vào cache
	Set(ctx context.Context, key string, stats *models.BlogStats) error

	// Delete xóa key khỏi cache
	Delete(ctx context.Context, key string) error

	// Clear xóa tất cả cache
	Clear(ctx context.Context) error

	// GetStats lấy thống kê cache
	GetStats(ctx context.Context) (*CacheStats, error)

	// Exists kiểm tra key có tồn tại không
	Exists(ctx context.Context, key string) (bool, error)

	// GetTTL lấy TTL còn lại của key, 0 nếu không hết hạn
	GetTTL(ctx context.Context, key string) (time.Duration, error)

	// Ping kiểm tra backend còn phục vụ được không, dùng cho health check
	Ping(ctx context.Context) error

	// Close đóng kết nối (nếu cần)
	Close() error
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
