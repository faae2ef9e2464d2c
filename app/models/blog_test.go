package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBlogStatsCache_IsExpired(t *testing.T) {
	stats := BlogStats{TotalBlogs: 1, LongestTitle: "A", UniqueBlogTitles: []string{"A"}}

	// Không có TTL thì không bao giờ hết hạn
	forever := NewBlogStatsCache("fp", stats, 0)
	assert.True(t, forever.ExpiresAt.IsZero())
	assert.False(t, forever.IsExpired(time.Now().Add(100*365*24*time.Hour)))

	short := NewBlogStatsCache("fp", stats, time.Minute)
	assert.False(t, short.IsExpired(time.Now()))
	assert.True(t, short.IsExpired(time.Now().Add(2*time.Minute)))
	assert.Equal(t, 1, short.AccessCount)
}
