package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// exerciseCache các hành vi chung mà mọi ICacheService phải có
func exerciseCache(t *testing.T, cache ICacheService) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, cache.Ping(ctx))

	_, found, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, "key", sampleStats()))

	got, found, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, sampleStats(), got)

	exists, err := cache.Exists(ctx, "key")
	require.NoError(t, err)
	assert.True(t, exists)

	stats, err := cache.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalHits)
	assert.Equal(t, int64(1), stats.TotalMiss)
	assert.Equal(t, int64(1), stats.TotalItems)
	assert.InDelta(t, 0.5, stats.HitRate, 0.0001)

	require.NoError(t, cache.Delete(ctx, "key"))
	exists, err = cache.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, cache.Set(ctx, "a", sampleStats()))
	require.NoError(t, cache.Set(ctx, "b", sampleStats()))
	require.NoError(t, cache.Clear(ctx))
	stats, err = cache.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalItems)
}

func TestCacheService_Contract(t *testing.T) {
	exerciseCache(t, NewCacheService(0))
}

func TestCacheService_NeverExpiresWithoutTTL(t *testing.T) {
	cs := NewCacheService(0)
	now := time.Now()
	cs.now = func() time.Time { return now }

	require.NoError(t, cs.Set(context.Background(), "key", sampleStats()))

	now = now.Add(10 * 365 * 24 * time.Hour)
	_, found, err := cs.Get(context.Background(), "key")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 0, cs.CleanupExpired())

	ttl, err := cs.GetTTL(context.Background(), "key")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), ttl)
}

func TestCacheService_TTL(t *testing.T) {
	cs := NewCacheService(time.Minute)
	now := time.Now()
	cs.now = func() time.Time { return now }

	ctx := context.Background()
	require.NoError(t, cs.Set(ctx, "key", sampleStats()))
	require.NoError(t, cs.Set(ctx, "other", sampleStats()))

	ttl, err := cs.GetTTL(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ttl)

	now = now.Add(2 * time.Minute)

	_, found, err := cs.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 1, cs.Size())

	assert.Equal(t, 1, cs.CleanupExpired())
	assert.Equal(t, 0, cs.Size())
}

func TestLRUCacheService_Contract(t *testing.T) {
	lcs, err := NewLRUCacheService(10, 0, zap.NewNop())
	require.NoError(t, err)
	exerciseCache(t, lcs)
}

func TestLRUCacheService_Eviction(t *testing.T) {
	lcs, err := NewLRUCacheService(2, 0, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, lcs.Set(ctx, "a", sampleStats()))
	require.NoError(t, lcs.Set(ctx, "b", sampleStats()))

	// Dùng "a" để "b" thành phần tử cũ nhất
	_, found, _ := lcs.Get(ctx, "a")
	require.True(t, found)

	require.NoError(t, lcs.Set(ctx, "c", sampleStats()))

	exists, _ := lcs.Exists(ctx, "b")
	assert.False(t, exists)
	exists, _ = lcs.Exists(ctx, "a")
	assert.True(t, exists)
}

func TestLRUCacheService_TTL(t *testing.T) {
	lcs, err := NewLRUCacheService(10, 50*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, lcs.Set(ctx, "key", sampleStats()))
	ttl, err := lcs.GetTTL(ctx, "key")
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	time.Sleep(100 * time.Millisecond)
	_, found, err := lcs.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewLRUCacheService_InvalidSize(t *testing.T) {
	_, err := NewLRUCacheService(0, 0, zap.NewNop())
	assert.Error(t, err)
}

func TestHybridCacheService(t *testing.T) {
	ctx := context.Background()
	l1 := NewCacheService(0)
	l2 := NewCacheService(0)
	hcs := NewHybridCacheService(l1, l2, zap.NewNop())

	require.NoError(t, hcs.Ping(ctx))
	require.NoError(t, hcs.Set(ctx, "key", sampleStats()))
	assert.Equal(t, 1, l1.Size())
	assert.Equal(t, 1, l2.Size())

	// Chỉ còn ở L2 thì vẫn hit và được đồng bộ lại lên L1
	require.NoError(t, l1.Delete(ctx, "key"))
	got, found, err := hcs.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, sampleStats(), got)

	assert.Eventually(t, func() bool { return l1.Size() == 1 }, time.Second, 10*time.Millisecond)

	exists, err := hcs.Exists(ctx, "key")
	require.NoError(t, err)
	assert.True(t, exists)

	stats, err := hcs.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hybrid", stats.Backend)
	assert.Equal(t, int64(1), stats.TotalItems)

	require.NoError(t, hcs.Clear(ctx))
	assert.Equal(t, 0, l1.Size())
	assert.Equal(t, 0, l2.Size())
}

func TestHybridCacheService_L1Failure(t *testing.T) {
	ctx := context.Background()
	l2 := NewCacheService(0)
	hcs := NewHybridCacheService(brokenCache{NewCacheService(0)}, l2, zap.NewNop())

	require.NoError(t, l2.Set(ctx, "key", sampleStats()))

	got, found, err := hcs.Get(ctx, "key")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, got.TotalBlogs)

	// Set trả lỗi gộp nhưng L2 vẫn được ghi
	err = hcs.Set(ctx, "other", sampleStats())
	assert.ErrorIs(t, err, errBroken)
	assert.Equal(t, 2, l2.Size())

	assert.ErrorIs(t, hcs.Ping(ctx), errBroken)
}

func TestRedisCacheService(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set")
	}

	opts, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	client := redis.NewClient(opts)

	rcs := NewRedisCacheServiceWithClient(client, time.Minute, zap.NewNop())
	rcs.prefix = "blog_stats_test:" + t.Name() + ":"
	defer rcs.Close()

	require.NoError(t, rcs.Clear(context.Background()))
	exerciseCache(t, rcs)
}

func TestMongoCacheService(t *testing.T) {
	mongoURL := os.Getenv("MONGO_URL")
	if mongoURL == "" {
		t.Skip("MONGO_URL not set")
	}

	client, err := connectMongo(mongoURL, zap.NewNop())
	require.NoError(t, err)
	defer client.Disconnect(context.Background())

	db := client.Database("blog_stats_test")
	defer db.Drop(context.Background())

	mcs, err := NewMongoCacheService(db, 10, 0, zap.NewNop())
	require.NoError(t, err)
	defer mcs.Close()

	require.NoError(t, mcs.Clear(context.Background()))
	exerciseCache(t, mcs)
}
