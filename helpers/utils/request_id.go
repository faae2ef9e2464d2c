package utils

import (
	"github.com/google/uuid"
)

// RequestIDHeader header chứa request ID
const RequestIDHeader = "X-Request-ID"

// GenerateRequestID tạo UUID v4 cho request
func GenerateRequestID() string {
	return uuid.NewString()
}

// ValidRequestID chỉ chấp nhận request ID client gửi lên nếu là UUID hợp lệ
func ValidRequestID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
