package services

import (
	"context"
	"fmt"
	"time"

	"github.com/blog-stats/app/models"
	"github.com/blog-stats/internal/stats"
	"go.uber.org/zap"
)

// StatsQuery query dùng trong cache key của /api/blog-stats
const StatsQuery = "all"

// BlogFetcher nguồn dữ liệu blog
type BlogFetcher interface {
	FetchBlogs(ctx context.Context, url, adminSecret string) ([]models.Blog, error)
}

// BlogServiceConfig cấu hình BlogService
type BlogServiceConfig struct {
	URL         string
	AdminSecret string
	KeyMode     KeyMode
}

// CacheEntry trạng thái entry cache của một query
type CacheEntry struct {
	Query      string `json:"query"`
	Cached     bool   `json:"cached"`
	TTLSeconds int64  `json:"ttl_seconds"` // 0 khi không hết hạn
}

// BlogService tính thống kê blog và tìm kiếm title, kết quả được memoize theo (url, secret, query)
type BlogService struct {
	fetcher   BlogFetcher
	memoizer  *StatsMemoizer
	cfg       BlogServiceConfig
	recorder  MetricsRecorder
	logger    *zap.Logger
	startTime time.Time
}

// NewBlogService tạo mới BlogService
func NewBlogService(fetcher BlogFetcher, memoizer *StatsMemoizer, cfg BlogServiceConfig, recorder MetricsRecorder, logger *zap.Logger) *BlogService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if cfg.KeyMode == "" {
		cfg.KeyMode = KeyModeStructured
	}
	return &BlogService{
		fetcher:   fetcher,
		memoizer:  memoizer,
		cfg:       cfg,
		recorder:  recorder,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Stats trả về thống kê blog
func (s *BlogService) Stats(ctx context.Context) (*models.BlogStats, error) {
	return s.statsFor(ctx, StatsQuery)
}

// Search lọc uniqueBlogTitles theo query (không phân biệt hoa thường).
// Cache key dùng chính query nên mỗi query khác nhau có một entry riêng.
func (s *BlogService) Search(ctx context.Context, query string) ([]string, error) {
	result, err := s.statsFor(ctx, query)
	if err != nil {
		return nil, err
	}
	return stats.FilterTitles(result.UniqueBlogTitles, query), nil
}

// Memoizer trả về memoizer dùng bởi service
func (s *BlogService) Memoizer() *StatsMemoizer {
	return s.memoizer
}

// GetStartTime thời điểm service khởi động
func (s *BlogService) GetStartTime() time.Time {
	return s.startTime
}

// CacheEntry kiểm tra query đã có trong cache chưa và TTL còn lại
func (s *BlogService) CacheEntry(ctx context.Context, query string) (*CacheEntry, error) {
	cache := s.memoizer.Cache()
	key := s.cacheKey(query)

	exists, err := cache.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("check cache entry: %w", err)
	}

	entry := &CacheEntry{Query: query, Cached: exists}
	if !exists {
		return entry, nil
	}

	ttl, err := cache.GetTTL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get cache entry ttl: %w", err)
	}
	entry.TTLSeconds = int64(ttl.Round(time.Second) / time.Second)
	return entry, nil
}

// Invalidate xóa entry cache của query, lần gọi sau sẽ lấy lại từ upstream
func (s *BlogService) Invalidate(ctx context.Context, query string) error {
	if err := s.memoizer.Cache().Delete(ctx, s.cacheKey(query)); err != nil {
		return fmt.Errorf("invalidate cache entry: %w", err)
	}
	s.logger.Info("Cache entry invalidated", zap.String("query", query))
	return nil
}

func (s *BlogService) cacheKey(query string) string {
	return CacheKey(s.cfg.KeyMode, s.cfg.URL, s.cfg.AdminSecret, query)
}

func (s *BlogService) statsFor(ctx context.Context, query string) (*models.BlogStats, error) {
	return s.memoizer.GetOrCompute(ctx, s.cacheKey(query), s.fetchAndAggregate)
}

// fetchAndAggregate gọi upstream rồi tính thống kê
func (s *BlogService) fetchAndAggregate(ctx context.Context) (*models.BlogStats, error) {
	blogs, err := s.fetcher.FetchBlogs(ctx, s.cfg.URL, s.cfg.AdminSecret)
	s.recorder.ObserveUpstreamFetch(err)
	if err != nil {
		return nil, fmt.Errorf("fetch blogs: %w", err)
	}

	result, err := stats.Aggregate(blogs)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Computed blog stats",
		zap.Int("total_blogs", result.TotalBlogs),
		zap.Int("unique_titles", len(result.UniqueBlogTitles)))
	return result, nil
}
