package routes

import (
	"github.com/blog-stats/app/controllers"
	"github.com/blog-stats/internal/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupAPIRoutes thiết lập tất cả API routes
func SetupAPIRoutes(router *gin.Engine, blogController *controllers.BlogController, adminController *controllers.AdminController) {
	api := router.Group("/api")
	{
		api.GET("/blog-stats", blogController.GetBlogStats)
		api.GET("/blog-search", blogController.SearchBlogs)

		admin := api.Group("/admin")
		{
			admin.GET("/cache/stats", adminController.GetCacheStats)
			admin.POST("/cache/clear", adminController.ClearCache)
			admin.GET("/cache/entry", adminController.GetCacheEntry)
			admin.DELETE("/cache/entry", adminController.DeleteCacheEntry)
		}
	}
}

// SetupHealthRoutes thiết lập health check routes
func SetupHealthRoutes(router *gin.Engine, adminController *controllers.AdminController) {
	router.GET("/health", adminController.HealthCheck)
	router.GET("/ready", adminController.HealthCheck)
	router.GET("/live", adminController.HealthCheck)
}

// SetupMetricsRoutes thiết lập metrics route cho Prometheus
func SetupMetricsRoutes(router *gin.Engine, m *metrics.Metrics) {
	router.GET("/metrics", gin.WrapH(m.Handler()))
}

// SetupAllRoutes thiết lập middleware và tất cả routes
func SetupAllRoutes(router *gin.Engine, logger *zap.Logger, m *metrics.Metrics, blogController *controllers.BlogController, adminController *controllers.AdminController) {
	setupMiddleware(router, logger, m)

	SetupWebRoutes(router)
	SetupHealthRoutes(router, adminController)
	SetupAPIRoutes(router, blogController, adminController)
	SetupMetricsRoutes(router, m)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

// setupMiddleware thiết lập middleware cho router
func setupMiddleware(router *gin.Engine, logger *zap.Logger, m *metrics.Metrics) {
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(accessLog(logger))
	router.Use(m.Middleware())
}
