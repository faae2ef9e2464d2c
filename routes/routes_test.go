package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blog-stats/app/controllers"
	"github.com/blog-stats/app/models"
	"github.com/blog-stats/app/services"
	"github.com/blog-stats/helpers/utils"
	"github.com/blog-stats/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticFetcher []models.Blog

func (f staticFetcher) FetchBlogs(ctx context.Context, url, adminSecret string) ([]models.Blog, error) {
	return f, nil
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	m := metrics.New()

	memoizer := services.NewStatsMemoizer(services.NewCacheService(0), true, m, logger)
	blogService := services.NewBlogService(
		staticFetcher{{Title: "Privacy Policy"}, {Title: "Release Notes"}},
		memoizer,
		services.BlogServiceConfig{URL: "https://blogs.example.com", AdminSecret: "s3cret"},
		m, logger)

	router := gin.New()
	SetupAllRoutes(router, logger, m,
		controllers.NewBlogController(blogService, logger),
		controllers.NewAdminController(blogService, logger))
	return router
}

func get(router *gin.Engine, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		for _, value := range v {
			req.Header.Add(k, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetupAllRoutes_API(t *testing.T) {
	router := newRouter(t)

	w := get(router, "/api/blog-stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalBlogs":2`)

	w = get(router, "/api/blog-search?query=notes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results":["Release Notes"]}`, w.Body.String())
}

func TestSetupAllRoutes_RequestID(t *testing.T) {
	router := newRouter(t)

	w := get(router, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, utils.ValidRequestID(w.Header().Get(utils.RequestIDHeader)))

	const id = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	w = get(router, "/health", http.Header{utils.RequestIDHeader: []string{id}})
	assert.Equal(t, id, w.Header().Get(utils.RequestIDHeader))

	// ID không hợp lệ bị thay bằng ID mới
	w = get(router, "/health", http.Header{utils.RequestIDHeader: []string{"<script>"}})
	assert.NotEqual(t, "<script>", w.Header().Get(utils.RequestIDHeader))
}

func TestSetupAllRoutes_NotFoundAndMetrics(t *testing.T) {
	router := newRouter(t)

	w := get(router, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Route not found")

	get(router, "/api/blog-stats", nil)
	get(router, "/api/blog-stats", nil)

	w = get(router, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `blog_stats_cache_lookups_total{result="hit"} 1`))
	assert.True(t, strings.Contains(body, `blog_stats_upstream_fetches_total{result="ok"} 1`))
}

func TestSetupWebRoutes(t *testing.T) {
	router := newRouter(t)

	w := get(router, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Blog Stats Service")
}
