package controllers

import (
	"net/http"
	"time"

	"github.com/blog-stats/app/requests"
	"github.com/blog-stats/app/responses"
	"github.com/blog-stats/app/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestIDKey key lưu request ID trong gin.Context
const RequestIDKey = "request_id"

// Version phiên bản service
const Version = "1.0.0"

// AdminController controller xử lý các request admin và health check
type AdminController struct {
	blogService *services.BlogService
	logger      *zap.Logger
}

// NewAdminController tạo mới AdminController
func NewAdminController(blogService *services.BlogService, logger *zap.Logger) *AdminController {
	return &AdminController{
		blogService: blogService,
		logger:      logger,
	}
}

// GetCacheStats GET /api/admin/cache/stats
func (ac *AdminController) GetCacheStats(c *gin.Context) {
	memoizer := ac.blogService.Memoizer()

	backendStats, err := memoizer.Cache().GetStats(c.Request.Context())
	if err != nil {
		ac.logger.Error("Get cache stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error: responses.MessageInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, responses.CacheStatsResponse{
		Memoizer: memoizer.Stats(),
		Backend:  backendStats,
	})
}

// ClearCache POST /api/admin/cache/clear
func (ac *AdminController) ClearCache(c *gin.Context) {
	if err := ac.blogService.Memoizer().Cache().Clear(c.Request.Context()); err != nil {
		ac.logger.Error("Clear cache failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error: responses.MessageInternalServerError,
		})
		return
	}

	ac.logger.Info("Cache cleared", zap.String("request_id", c.GetString(RequestIDKey)))
	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "Cache cleared",
	})
}

// GetCacheEntry GET /api/admin/cache/entry?query=Q
func (ac *AdminController) GetCacheEntry(c *gin.Context) {
	query, ok := ac.bindCacheEntry(c)
	if !ok {
		return
	}

	entry, err := ac.blogService.CacheEntry(c.Request.Context(), query)
	if err != nil {
		ac.logger.Error("Get cache entry failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error: responses.MessageInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteCacheEntry DELETE /api/admin/cache/entry?query=Q
func (ac *AdminController) DeleteCacheEntry(c *gin.Context) {
	query, ok := ac.bindCacheEntry(c)
	if !ok {
		return
	}

	if err := ac.blogService.Invalidate(c.Request.Context(), query); err != nil {
		ac.logger.Error("Invalidate cache entry failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error: responses.MessageInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "Cache entry invalidated",
	})
}

func (ac *AdminController) bindCacheEntry(c *gin.Context) (string, bool) {
	var req requests.CacheEntryRequest
	err := c.ShouldBindQuery(&req)
	if err == nil {
		err = req.Validate()
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   responses.MessageBadRequest,
			Message: err.Error(),
		})
		return "", false
	}
	return *req.Query, true
}

// HealthCheck kiểm tra sức khỏe service
func (ac *AdminController) HealthCheck(c *gin.Context) {
	cacheStatus := "healthy"
	if err := ac.blogService.Memoizer().Cache().Ping(c.Request.Context()); err != nil {
		ac.logger.Warn("Cache ping failed", zap.Error(err))
		cacheStatus = "unhealthy"
	}

	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(ac.blogService.GetStartTime()).String(),
		Version:   Version,
		Services: map[string]string{
			"blog_stats": "healthy",
			"cache":      cacheStatus,
		},
	})
}
