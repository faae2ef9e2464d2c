package routes

import (
	"time"

	"github.com/blog-stats/app/controllers"
	"github.com/blog-stats/helpers/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requestID gắn request ID vào context và response header
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(utils.RequestIDHeader)
		if !utils.ValidRequestID(id) {
			id = utils.GenerateRequestID()
		}
		c.Set(controllers.RequestIDKey, id)
		c.Header(utils.RequestIDHeader, id)
		c.Next()
	}
}

// accessLog ghi log mỗi request bằng zap. Query string không được log.
func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(controllers.RequestIDKey)),
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Error("HTTP request", fields...)
		case status >= 400:
			logger.Warn("HTTP request", fields...)
		default:
			logger.Info("HTTP request", fields...)
		}
	}
}
