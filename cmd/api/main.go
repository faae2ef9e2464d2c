package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blog-stats/app/config"
	"github.com/blog-stats/app/controllers"
	"github.com/blog-stats/app/services"
	"github.com/blog-stats/internal/external"
	"github.com/blog-stats/internal/metrics"
	"github.com/blog-stats/routes"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load(getEnv("CONFIG_PATH", "config/app.yaml"))
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	// Initialize logger
	logger := initLogger(cfg)
	defer logger.Sync()

	logger.Info("Starting Blog Stats Service",
		zap.String("env", cfg.App.Env),
		zap.String("blog_api", cfg.BlogAPI.URL),
		zap.String("admin_secret", cfg.MaskedSecret()),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.String("cache_key_mode", cfg.Cache.KeyMode),
		zap.Bool("single_flight", cfg.Cache.SingleFlight))

	if cfg.AdminSecret == "" {
		logger.Warn("ADMIN_SECRET is not set, upstream requests will likely be rejected")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize cache
	cache, closeCache, err := services.BuildCache(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize cache", zap.Error(err))
	}

	keyMode, err := services.ParseKeyMode(cfg.Cache.KeyMode)
	if err != nil {
		logger.Fatal("Invalid cache key mode", zap.Error(err))
	}

	// Initialize services
	m := metrics.New()
	blogClient := external.NewBlogAPIClient(external.BlogAPIConfig{Timeout: cfg.BlogAPI.Timeout}, logger)
	memoizer := services.NewStatsMemoizer(cache, cfg.Cache.SingleFlight, m, logger)
	blogService := services.NewBlogService(blogClient, memoizer, services.BlogServiceConfig{
		URL:         cfg.BlogAPI.URL,
		AdminSecret: cfg.AdminSecret,
		KeyMode:     keyMode,
	}, m, logger)

	// Initialize controllers
	blogController := controllers.NewBlogController(blogService, logger)
	adminController := controllers.NewAdminController(blogService, logger)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, logger, m, blogController, adminController)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := closeCache(shutdownCtx); err != nil {
		logger.Error("Failed to close cache", zap.Error(err))
	}

	logger.Info("Server exited")
}

// initLogger khởi tạo structured logger
func initLogger(cfg *config.Config) *zap.Logger {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}
	return logger
}

// getEnv lấy environment variable với default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
