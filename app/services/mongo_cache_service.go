package services

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/blog-stats/app/models"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const mongoCacheCollection = "blog_stats_cache"

// MongoCacheService persistent cache service sử dụng MongoDB + LRU in-memory
type MongoCacheService struct {
	collection *mongo.Collection
	l1Cache    *lru.Cache[string, *models.BlogStats] // key theo fingerprint
	ttl        time.Duration
	logger     *zap.Logger

	l1Hits    atomic.Int64
	l1Miss    atomic.Int64
	mongoHits atomic.Int64
	mongoMiss atomic.Int64
}

// NewMongoCacheService tạo mới MongoCacheService
func NewMongoCacheService(db *mongo.Database, l1Size int, ttl time.Duration, logger *zap.Logger) (*MongoCacheService, error) {
	l1Cache, err := lru.New[string, *models.BlogStats](l1Size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}

	collection := db.Collection(mongoCacheCollection)

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "fingerprint", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Document không có expires_at sẽ không bị xóa
			Keys:    bson.D{bson.E{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("Cannot create indexes for blog_stats_cache", zap.Error(err))
	}

	return &MongoCacheService{
		collection: collection,
		l1Cache:    l1Cache,
		ttl:        ttl,
		logger:     logger,
	}, nil
}

// Get lấy BlogStats từ cache (L1 → MongoDB)
func (mcs *MongoCacheService) Get(ctx context.Context, key string) (*models.BlogStats, bool, error) {
	fingerprint := generateFingerprint(key)

	if result, found := mcs.l1Cache.Get(fingerprint); found {
		mcs.l1Hits.Add(1)
		return result, true, nil
	}
	mcs.l1Miss.Add(1)

	var entry models.BlogStatsCache
	err := mcs.collection.FindOne(ctx, bson.M{"fingerprint": fingerprint}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			mcs.mongoMiss.Add(1)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query mongo cache: %w", err)
	}

	// TTL monitor của MongoDB chạy mỗi 60s, document có thể chưa bị xóa
	if entry.IsExpired(time.Now()) {
		mcs.mongoMiss.Add(1)
		return nil, false, nil
	}

	mcs.mongoHits.Add(1)
	go mcs.updateAccessStats(fingerprint)

	// TTL của L1 không theo dõi riêng nên chỉ nạp khi không hết hạn
	if mcs.ttl <= 0 {
		mcs.l1Cache.Add(fingerprint, &entry.Stats)
	}

	mcs.logger.Debug("MongoDB cache hit", zap.String("fingerprint", fingerprint))
	return &entry.Stats, true, nil
}

// Set lưu BlogStats vào cache (L1 + MongoDB)
func (mcs *MongoCacheService) Set(ctx context.Context, key string, stats *models.BlogStats) error {
	fingerprint := generateFingerprint(key)
	if mcs.ttl <= 0 {
		mcs.l1Cache.Add(fingerprint, stats)
	}
	entry := models.NewBlogStatsCache(fingerprint, *stats, mcs.ttl)

	opts := options.Replace().SetUpsert(true)
	if _, err := mcs.collection.ReplaceOne(ctx, bson.M{"fingerprint": fingerprint}, entry, opts); err != nil {
		mcs.logger.Error("Save to mongo cache failed", zap.Error(err), zap.String("fingerprint", fingerprint))
		return fmt.Errorf("save to mongo cache: %w", err)
	}

	return nil
}

// Delete xóa key khỏi cache
func (mcs *MongoCacheService) Delete(ctx context.Context, key string) error {
	fingerprint := generateFingerprint(key)
	mcs.l1Cache.Remove(fingerprint)

	if _, err := mcs.collection.DeleteOne(ctx, bson.M{"fingerprint": fingerprint}); err != nil {
		return fmt.Errorf("delete from mongo cache: %w", err)
	}
	return nil
}

// Clear xóa tất cả cache
func (mcs *MongoCacheService) Clear(ctx context.Context) error {
	mcs.l1Cache.Purge()

	if _, err := mcs.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear mongo cache: %w", err)
	}

	mcs.l1Hits.Store(0)
	mcs.l1Miss.Store(0)
	mcs.mongoHits.Store(0)
	mcs.mongoMiss.Store(0)
	return nil
}

// GetStats lấy thống kê cache
func (mcs *MongoCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	count, err := mcs.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count mongo cache documents: %w", err)
	}

	hits := mcs.l1Hits.Load() + mcs.mongoHits.Load()
	misses := mcs.mongoMiss.Load()
	return &CacheStats{
		Backend:    "mongo",
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: count,
	}, nil
}

// Exists kiểm tra key có tồn tại không
func (mcs *MongoCacheService) Exists(ctx context.Context, key string) (bool, error) {
	fingerprint := generateFingerprint(key)
	if mcs.l1Cache.Contains(fingerprint) {
		return true, nil
	}

	count, err := mcs.collection.CountDocuments(ctx, bson.M{"fingerprint": fingerprint})
	if err != nil {
		return false, fmt.Errorf("check exists in mongo: %w", err)
	}
	return count > 0, nil
}

// GetTTL lấy TTL còn lại của key
func (mcs *MongoCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	if mcs.ttl <= 0 {
		return 0, nil
	}

	var entry models.BlogStatsCache
	err := mcs.collection.FindOne(ctx, bson.M{"fingerprint": generateFingerprint(key)}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	remaining := time.Until(entry.ExpiresAt)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

// Ping kiểm tra kết nối MongoDB
func (mcs *MongoCacheService) Ping(ctx context.Context) error {
	return mcs.collection.Database().Client().Ping(ctx, nil)
}

// Close đóng kết nối. Connection MongoDB do caller quản lý.
func (mcs *MongoCacheService) Close() error {
	return nil
}

// WarmUp nạp các entry được truy cập nhiều nhất vào L1
func (mcs *MongoCacheService) WarmUp(ctx context.Context, limit int) (int, error) {
	if mcs.ttl > 0 {
		return 0, nil
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "access_count", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := mcs.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return 0, fmt.Errorf("warm up cache: %w", err)
	}
	defer cursor.Close(ctx)

	count := 0
	for cursor.Next(ctx) {
		var entry models.BlogStatsCache
		if err := cursor.Decode(&entry); err != nil {
			mcs.logger.Warn("Decode cache entry failed during warm up", zap.Error(err))
			continue
		}
		stats := entry.Stats
		mcs.l1Cache.Add(entry.Fingerprint, &stats)
		count++
	}

	return count, cursor.Err()
}

func (mcs *MongoCacheService) updateAccessStats(fingerprint string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{"last_accessed": time.Now()},
		"$inc": bson.M{"access_count": 1},
	}
	if _, err := mcs.collection.UpdateOne(ctx, bson.M{"fingerprint": fingerprint}, update); err != nil {
		mcs.logger.Warn("Update access stats failed", zap.Error(err))
	}
}

// generateFingerprint sinh fingerprint cho cache key
func generateFingerprint(key string) string {
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("sha256:%x", hash)
}
