package responses

import "github.com/blog-stats/app/services"

// Thông báo lỗi trả về client, không lộ nguyên nhân bên trong
const (
	MessageInternalServerError = "Internal Server Error"
	MessageBadRequest          = "Bad Request"
)

// BlogSearchResponse response /api/blog-search
type BlogSearchResponse struct {
	Results []string `json:"results"`
}

// ErrorResponse response lỗi
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// CacheStatsResponse response thống kê cache
type CacheStatsResponse struct {
	Memoizer services.MemoizerStats `json:"memoizer"`
	Backend  *services.CacheStats   `json:"backend"`
}

// SuccessResponse response thành công
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthCheckResponse response kiểm tra sức khỏe
type HealthCheckResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}
