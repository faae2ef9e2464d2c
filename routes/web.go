package routes

import (
	"github.com/blog-stats/app/controllers"
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes thiết lập web routes
func SetupWebRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Blog Stats Service",
			"version": controllers.Version,
			"endpoints": map[string]string{
				"stats":       "GET /api/blog-stats",
				"search":      "GET /api/blog-search?query=<string>",
				"cache_stats": "GET /api/admin/cache/stats",
				"cache_clear": "POST /api/admin/cache/clear",
				"health":      "GET /health",
				"metrics":     "GET /metrics",
			},
		})
	})
}
