package services

import (
	"context"
	"errors"
	"time"

	"github.com/blog-stats/app/models"
	"go.uber.org/zap"
)

// HybridCacheService cache service kết hợp L1 (nhanh, vd Redis) + L2 (persistent, vd MongoDB)
type HybridCacheService struct {
	l1     ICacheService
	l2     ICacheService
	logger *zap.Logger
}

// NewHybridCacheService tạo mới hybrid cache service
func NewHybridCacheService(l1, l2 ICacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{
		l1:     l1,
		l2:     l2,
		logger: logger,
	}
}

// Get lấy BlogStats từ cache (L1 trước, L2 sau)
func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*models.BlogStats, bool, error) {
	result, found, err := hcs.l1.Get(ctx, key)
	if err != nil {
		hcs.logger.Warn("L1 cache error, falling back to L2", zap.Error(err))
	} else if found {
		return result, true, nil
	}

	result, found, err = hcs.l2.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	// Đồng bộ L2 -> L1 trong nền
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := hcs.l1.Set(bgCtx, key, result); err != nil {
			hcs.logger.Warn("Sync L2->L1 failed", zap.Error(err))
		}
	}()

	return result, true, nil
}

// Set lưu BlogStats vào cả 2 tầng song song
func (hcs *HybridCacheService) Set(ctx context.Context, key string, stats *models.BlogStats) error {
	return hcs.both(func(c ICacheService) error { return c.Set(ctx, key, stats) })
}

// Delete xóa key khỏi cả 2 tầng
func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	return hcs.both(func(c ICacheService) error { return c.Delete(ctx, key) })
}

// Clear xóa toàn bộ cache cả 2 tầng
func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	if err := hcs.both(func(c ICacheService) error { return c.Clear(ctx) }); err != nil {
		return err
	}
	hcs.logger.Info("Cleared hybrid cache")
	return nil
}

// GetStats kết hợp thống kê từ cả 2 tầng
func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	l1Stats, l1Err := hcs.l1.GetStats(ctx)
	l2Stats, l2Err := hcs.l2.GetStats(ctx)

	switch {
	case l1Err != nil && l2Err != nil:
		return nil, errors.Join(l1Err, l2Err)
	case l1Err != nil:
		return l2Stats, nil
	case l2Err != nil:
		return l1Stats, nil
	}

	// Miss của L1 được L2 phục vụ lại, nên miss thực chỉ tính ở L2
	hits := l1Stats.TotalHits + l2Stats.TotalHits
	return &CacheStats{
		Backend:    "hybrid",
		HitRate:    hitRate(hits, l2Stats.TotalMiss),
		TotalHits:  hits,
		TotalMiss:  l2Stats.TotalMiss,
		TotalItems: l2Stats.TotalItems,
	}, nil
}

// Exists kiểm tra key có tồn tại không (L1 trước, L2 sau)
func (hcs *HybridCacheService) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := hcs.l1.Exists(ctx, key)
	if err != nil {
		hcs.logger.Warn("L1 exists check failed, falling back to L2", zap.Error(err))
	} else if exists {
		return true, nil
	}

	return hcs.l2.Exists(ctx, key)
}

// GetTTL lấy TTL của key từ L1
func (hcs *HybridCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return hcs.l1.GetTTL(ctx, key)
}

// Ping kiểm tra cả 2 tầng
func (hcs *HybridCacheService) Ping(ctx context.Context) error {
	return hcs.both(func(c ICacheService) error { return c.Ping(ctx) })
}

// Close đóng kết nối cả 2 tầng
func (hcs *HybridCacheService) Close() error {
	return hcs.both(func(c ICacheService) error { return c.Close() })
}

// both chạy op trên L1 và L2 song song và gộp lỗi
func (hcs *HybridCacheService) both(op func(ICacheService) error) error {
	errCh := make(chan error, 2)

	for _, c := range []ICacheService{hcs.l1, hcs.l2} {
		go func(c ICacheService) {
			errCh <- op(c)
		}(c)
	}

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
