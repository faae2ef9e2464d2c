package models

import "time"

// Blog một bản ghi blog từ remote API. Các field khác ngoài title bị bỏ qua.
type Blog struct {
	Title string `json:"title"`
}

// BlogStats kết quả thống kê tính từ danh sách blog
type BlogStats struct {
	TotalBlogs       int      `json:"totalBlogs" bson:"total_blogs"`
	LongestTitle     string   `json:"longestTitle" bson:"longest_title"`
	BlogsWithPrivacy int      `json:"blogsWithPrivacy" bson:"blogs_with_privacy"`
	UniqueBlogTitles []string `json:"uniqueBlogTitles" bson:"unique_blog_titles"`
}

// BlogStatsCache document lưu BlogStats trong MongoDB
type BlogStatsCache struct {
	Fingerprint  string    `bson:"fingerprint" json:"fingerprint"`
	Stats        BlogStats `bson:"stats" json:"stats"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt    time.Time `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	LastAccessed time.Time `bson:"last_accessed" json:"last_accessed"`
	AccessCount  int       `bson:"access_count" json:"access_count"`
}

// NewBlogStatsCache tạo mới document cache. ttl = 0 nghĩa là không hết hạn.
func NewBlogStatsCache(fingerprint string, stats BlogStats, ttl time.Duration) *BlogStatsCache {
	now := time.Now()
	entry := &BlogStatsCache{
		Fingerprint:  fingerprint,
		Stats:        stats,
		CreatedAt:    now,
		LastAccessed: now,
		AccessCount:  1,
	}
	if ttl > 0 {
		entry.ExpiresAt = now.Add(ttl)
	}
	return entry
}

// IsExpired kiểm tra document đã hết hạn chưa
func (c *BlogStatsCache) IsExpired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
