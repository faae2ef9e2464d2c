package controllers

import (
	"net/http"

	"github.com/blog-stats/app/requests"
	"github.com/blog-stats/app/responses"
	"github.com/blog-stats/app/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BlogController controller xử lý các request thống kê và tìm kiếm blog
type BlogController struct {
	blogService *services.BlogService
	logger      *zap.Logger
}

// NewBlogController tạo mới BlogController
func NewBlogController(blogService *services.BlogService, logger *zap.Logger) *BlogController {
	return &BlogController{
		blogService: blogService,
		logger:      logger,
	}
}

// GetBlogStats GET /api/blog-stats
func (bc *BlogController) GetBlogStats(c *gin.Context) {
	result, err := bc.blogService.Stats(c.Request.Context())
	if err != nil {
		bc.internalError(c, "Blog stats failed", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SearchBlogs GET /api/blog-search?query=Q
func (bc *BlogController) SearchBlogs(c *gin.Context) {
	var req requests.BlogSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bc.badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		bc.badRequest(c, err)
		return
	}

	results, err := bc.blogService.Search(c.Request.Context(), *req.Query)
	if err != nil {
		bc.internalError(c, "Blog search failed", err)
		return
	}

	c.JSON(http.StatusOK, responses.BlogSearchResponse{Results: results})
}

// internalError mọi lỗi phía server đều trả về cùng một body 500
func (bc *BlogController) internalError(c *gin.Context, msg string, err error) {
	bc.logger.Error(msg,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString(RequestIDKey)))

	c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
		Error: responses.MessageInternalServerError,
	})
}

func (bc *BlogController) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, responses.ErrorResponse{
		Error:   responses.MessageBadRequest,
		Message: err.Error(),
	})
}
