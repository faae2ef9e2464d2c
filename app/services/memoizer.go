package services

import (
	"context"
	"sync/atomic"

	"github.com/blog-stats/app/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Producer tính BlogStats khi cache miss
type Producer func(ctx context.Context) (*models.BlogStats, error)

// MetricsRecorder nhận các sự kiện của memoizer và upstream
type MetricsRecorder interface {
	ObserveCacheLookup(hit bool)
	ObserveUpstreamFetch(err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveCacheLookup(bool)    {}
func (nopRecorder) ObserveUpstreamFetch(error) {}

// MemoizerStats thống kê của memoizer
type MemoizerStats struct {
	Hits         int64 `json:"hits"`
	Misses       int64 `json:"misses"`
	Computations int64 `json:"computations"`
	Shared       int64 `json:"shared"`
	SingleFlight bool  `json:"single_flight"`
}

// StatsMemoizer bọc producer sau một ICacheService: key đã có thì trả về giá trị đã lưu,
// chưa có thì gọi producer, lưu và trả về. Lỗi của producer không được cache.
type StatsMemoizer struct {
	cache    ICacheService
	group    *singleflight.Group
	recorder MetricsRecorder
	logger   *zap.Logger

	hits         atomic.Int64
	misses       atomic.Int64
	computations atomic.Int64
	shared       atomic.Int64
}

// NewStatsMemoizer tạo mới StatsMemoizer. singleFlight = false thì các miss đồng thời
// trên cùng key đều gọi producer.
func NewStatsMemoizer(cache ICacheService, singleFlight bool, recorder MetricsRecorder, logger *zap.Logger) *StatsMemoizer {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	m := &StatsMemoizer{
		cache:    cache,
		recorder: recorder,
		logger:   logger,
	}
	if singleFlight {
		m.group = &singleflight.Group{}
	}
	return m
}

// GetOrCompute trả về BlogStats cho key, gọi producer khi miss
func (m *StatsMemoizer) GetOrCompute(ctx context.Context, key string, producer Producer) (*models.BlogStats, error) {
	if stats, found := m.lookup(ctx, key); found {
		return stats, nil
	}

	if m.group == nil {
		return m.compute(ctx, key, producer)
	}

	// Request đầu tiên bị hủy không được làm hỏng các request đang chờ chung
	flightCtx := context.WithoutCancel(ctx)
	v, err, shared := m.group.Do(key, func() (interface{}, error) {
		// Flight trước có thể vừa lưu xong. Exists không tính vào miss của backend.
		if exists, err := m.cache.Exists(flightCtx, key); err == nil && exists {
			if stats, found, err := m.cache.Get(flightCtx, key); err == nil && found {
				return stats, nil
			}
		}
		return m.compute(flightCtx, key, producer)
	})
	if shared {
		m.shared.Add(1)
	}
	if err != nil {
		return nil, err
	}
	return v.(*models.BlogStats), nil
}

// Stats lấy thống kê memoizer
func (m *StatsMemoizer) Stats() MemoizerStats {
	return MemoizerStats{
		Hits:         m.hits.Load(),
		Misses:       m.misses.Load(),
		Computations: m.computations.Load(),
		Shared:       m.shared.Load(),
		SingleFlight: m.group != nil,
	}
}

// Cache backend phía sau memoizer
func (m *StatsMemoizer) Cache() ICacheService {
	return m.cache
}

func (m *StatsMemoizer) lookup(ctx context.Context, key string) (*models.BlogStats, bool) {
	stats, found, err := m.cache.Get(ctx, key)
	if err != nil {
		// Cache lỗi thì coi như miss, không chặn request
		m.logger.Warn("Cache lookup failed, treating as miss", zap.Error(err))
	}

	hit := err == nil && found
	m.recorder.ObserveCacheLookup(hit)
	if hit {
		m.hits.Add(1)
		return stats, true
	}
	m.misses.Add(1)
	return nil, false
}

func (m *StatsMemoizer) compute(ctx context.Context, key string, producer Producer) (*models.BlogStats, error) {
	m.computations.Add(1)

	stats, err := producer(ctx)
	if err != nil {
		return nil, err
	}

	if err := m.cache.Set(ctx, key, stats); err != nil {
		m.logger.Warn("Cache store failed", zap.Error(err))
	}
	return stats, nil
}
