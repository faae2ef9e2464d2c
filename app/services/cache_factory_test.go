package services

import (
	"context"
	"testing"

	"github.com/blog-stats/app/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildCache(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := &config.Config{Cache: config.CacheCfg{Backend: config.BackendMemory}}
	cache, closeFn, err := BuildCache(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &CacheService{}, cache)
	assert.NoError(t, closeFn(ctx))

	cfg.Cache = config.CacheCfg{Backend: config.BackendLRU, MaxEntries: 5}
	cache, closeFn, err = BuildCache(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LRUCacheService{}, cache)
	assert.NoError(t, closeFn(ctx))

	cfg.Cache = config.CacheCfg{Backend: config.BackendLRU}
	_, _, err = BuildCache(ctx, cfg, zap.NewNop())
	assert.Error(t, err)

	cfg.Cache = config.CacheCfg{Backend: "memcached"}
	_, _, err = BuildCache(ctx, cfg, zap.NewNop())
	assert.Error(t, err)
}
