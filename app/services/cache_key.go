package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/blog-stats/app/config"
)

// KeyMode cách ghép cache key từ (url, secret, query)
type KeyMode string

const (
	// KeyModeStructured mã hóa tuple có độ dài từng phần rồi hash, không thể va chạm giữa các tuple khác nhau
	KeyModeStructured KeyMode = config.KeyModeStructured
	// KeyModeLegacy nối chuỗi url+secret+query, giữ nguyên cả các va chạm
	KeyModeLegacy KeyMode = config.KeyModeLegacy
)

// ParseKeyMode chuyển chuỗi cấu hình thành KeyMode
func ParseKeyMode(s string) (KeyMode, error) {
	switch KeyMode(strings.ToLower(s)) {
	case KeyModeStructured:
		return KeyModeStructured, nil
	case KeyModeLegacy:
		return KeyModeLegacy, nil
	default:
		return "", fmt.Errorf("unknown cache key mode %q", s)
	}
}

// CacheKey tạo cache key cho bộ (url, adminSecret, query)
func CacheKey(mode KeyMode, url, adminSecret, query string) string {
	if mode == KeyModeLegacy {
		return url + adminSecret + query
	}

	var b strings.Builder
	for _, part := range []string{url, adminSecret, query} {
		b.WriteString(strconv.Itoa(len(part)))
		b.WriteByte(':')
		b.WriteString(part)
	}

	// Hash để secret không xuất hiện trong key lưu ở Redis/MongoDB
	sum := sha256.Sum256([]byte(b.String()))
	return "v1:" + hex.EncodeToString(sum[:])
}
