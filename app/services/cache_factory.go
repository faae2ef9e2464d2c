package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blog-stats/app/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// CloseFunc giải phóng các kết nối mà BuildCache đã mở
type CloseFunc func(ctx context.Context) error

// BuildCache tạo ICacheService theo cache.backend.
// ctx quản lý vòng đời của cleanup worker (backend memory có TTL).
func BuildCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ICacheService, CloseFunc, error) {
	cc := cfg.Cache

	switch cc.Backend {
	case config.BackendMemory:
		cs := NewCacheService(cc.TTL)
		cs.StartCleanupWorker(ctx, cc.CleanupInterval)
		return cs, closeCache(cs, nil), nil

	case config.BackendLRU:
		lcs, err := NewLRUCacheService(cc.MaxEntries, cc.TTL, logger)
		if err != nil {
			return nil, nil, err
		}
		return lcs, closeCache(lcs, nil), nil

	case config.BackendRedis:
		rcs, err := NewRedisCacheService(cfg.Redis.URL, cc.TTL, logger)
		if err != nil {
			return nil, nil, err
		}
		return rcs, closeCache(rcs, nil), nil

	case config.BackendMongo:
		client, mcs, err := buildMongoCache(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return mcs, closeCache(mcs, client), nil

	case config.BackendHybrid:
		rcs, err := NewRedisCacheService(cfg.Redis.URL, cc.TTL, logger)
		if err != nil {
			return nil, nil, err
		}
		client, mcs, err := buildMongoCache(cfg, logger)
		if err != nil {
			_ = rcs.Close()
			return nil, nil, err
		}
		hcs := NewHybridCacheService(rcs, mcs, logger)
		return hcs, closeCache(hcs, client), nil
	}

	return nil, nil, fmt.Errorf("unknown cache backend %q", cc.Backend)
}

func buildMongoCache(cfg *config.Config, logger *zap.Logger) (*mongo.Client, *MongoCacheService, error) {
	client, err := connectMongo(cfg.Mongo.URL, logger)
	if err != nil {
		return nil, nil, err
	}

	l1Size := cfg.Cache.MaxEntries
	if l1Size <= 0 {
		l1Size = 1000
	}

	mcs, err := NewMongoCacheService(client.Database(cfg.Mongo.Database), l1Size, cfg.Cache.TTL, logger)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	if cfg.Cache.WarmUp > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		n, err := mcs.WarmUp(ctx, cfg.Cache.WarmUp)
		if err != nil {
			logger.Warn("Failed to warm up cache", zap.Error(err))
		} else {
			logger.Info("Cache warm up done", zap.Int("loaded_items", n))
		}
	}

	return client, mcs, nil
}

// connectMongo kết nối và ping MongoDB
func connectMongo(uri string, logger *zap.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	logger.Info("Connected to MongoDB")
	return client, nil
}

func closeCache(cache ICacheService, client *mongo.Client) CloseFunc {
	return func(ctx context.Context) error {
		err := cache.Close()
		if client != nil {
			err = errors.Join(err, client.Disconnect(ctx))
		}
		return err
	}
}
