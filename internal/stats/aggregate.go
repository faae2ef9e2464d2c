// Package stats tính các số liệu tổng hợp trên danh sách blog.
package stats

import (
	"errors"
	"strings"

	"github.com/blog-stats/app/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PrivacyKeyword từ khóa đếm trong blogsWithPrivacy
const PrivacyKeyword = "privacy"

// ErrEmptyInput không thể tính longestTitle trên danh sách rỗng
var ErrEmptyInput = errors.New("stats: cannot aggregate an empty blog list")

// Aggregate tính BlogStats từ danh sách blog. Hàm thuần, không side effect.
func Aggregate(blogs []models.Blog) (*models.BlogStats, error) {
	if len(blogs) == 0 {
		return nil, ErrEmptyInput
	}

	result := &models.BlogStats{
		TotalBlogs:       len(blogs),
		UniqueBlogTitles: make([]string, 0, len(blogs)),
	}

	longest := -1
	seen := make(map[string]struct{}, len(blogs))

	for _, blog := range blogs {
		// Chỉ thay khi dài hơn hẳn, giữ phần tử đầu tiên khi bằng nhau
		if n := TitleLength(blog.Title); n > longest {
			longest = n
			result.LongestTitle = blog.Title
		}

		if ContainsFold(blog.Title, PrivacyKeyword) {
			result.BlogsWithPrivacy++
		}

		if _, ok := seen[blog.Title]; !ok {
			seen[blog.Title] = struct{}{}
			result.UniqueBlogTitles = append(result.UniqueBlogTitles, blog.Title)
		}
	}

	return result, nil
}

// TitleLength độ dài title tính theo UTF-16 code unit
func TitleLength(title string) int {
	n := 0
	for _, r := range title {
		// rune ngoài BMP chiếm một cặp surrogate
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// ContainsFold kiểm tra substr có nằm trong s không, không phân biệt hoa thường
func ContainsFold(s, substr string) bool {
	return strings.Contains(lower(s), lower(substr))
}

// FilterTitles lọc các title chứa query (không phân biệt hoa thường), giữ nguyên thứ tự.
// Query rỗng trả về toàn bộ titles.
func FilterTitles(titles []string, query string) []string {
	results := make([]string, 0, len(titles))
	needle := lower(query)
	for _, title := range titles {
		if strings.Contains(lower(title), needle) {
			results = append(results, title)
		}
	}
	return results
}

// Caser có state nên không dùng chung giữa các goroutine
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
