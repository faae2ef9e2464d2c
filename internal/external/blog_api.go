package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blog-stats/app/models"
	resty "github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	// AdminSecretHeader header chứa admin secret gửi kèm mỗi request
	AdminSecretHeader = "x-hasura-admin-secret"

	userAgent = "blog-stats/1.0.0"
)

// UpstreamError lỗi khi gọi remote blog API (network, non-2xx, body sai định dạng)
type UpstreamError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream %s returned %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream %s: %v", e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// BlogAPIConfig cấu hình client
type BlogAPIConfig struct {
	// Timeout = 0 dùng mặc định của transport
	Timeout time.Duration
}

// BlogAPIClient client gọi remote blog API
type BlogAPIClient struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewBlogAPIClient tạo mới BlogAPIClient. Client không retry.
func NewBlogAPIClient(cfg BlogAPIConfig, logger *zap.Logger) *BlogAPIClient {
	c := resty.New()
	c.SetLogger(logger.Sugar())
	c.SetHeader("User-Agent", userAgent)
	c.SetHeader("Accept", "application/json")
	c.SetRetryCount(0)
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}

	return &BlogAPIClient{
		http:   c,
		logger: logger,
	}
}

// FetchBlogs gọi một request GET tới url với admin secret và trả về danh sách blog
func (c *BlogAPIClient) FetchBlogs(ctx context.Context, url, adminSecret string) ([]models.Blog, error) {
	startTime := time.Now()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(AdminSecretHeader, adminSecret).
		Get(url)
	if err != nil {
		return nil, &UpstreamError{URL: url, Err: err}
	}

	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &UpstreamError{
			URL:        url,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("unexpected status %q", resp.Status()),
		}
	}

	blogs, err := decodeBlogs(resp.Body())
	if err != nil {
		return nil, &UpstreamError{URL: url, StatusCode: resp.StatusCode(), Err: err}
	}

	c.logger.Debug("Fetched blogs",
		zap.String("url", url),
		zap.Int("count", len(blogs)),
		zap.Duration("duration", time.Since(startTime)))

	return blogs, nil
}

// decodeBlogs chấp nhận JSON array hoặc envelope {"blogs": [...]} của Hasura REST
func decodeBlogs(body []byte) ([]models.Blog, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response body")
	}

	switch trimmed[0] {
	case '[':
		var blogs []models.Blog
		if err := json.Unmarshal(trimmed, &blogs); err != nil {
			return nil, fmt.Errorf("decode blog list: %w", err)
		}
		return blogs, nil
	case '{':
		var envelope struct {
			Blogs *[]models.Blog `json:"blogs"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("decode blog envelope: %w", err)
		}
		if envelope.Blogs == nil {
			return nil, fmt.Errorf("response object has no \"blogs\" field")
		}
		return *envelope.Blogs, nil
	default:
		return nil, fmt.Errorf("unexpected response body")
	}
}
