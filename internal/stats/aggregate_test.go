package stats

import (
	"testing"

	"github.com/blog-stats/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blogs(titles ...string) []models.Blog {
	out := make([]models.Blog, 0, len(titles))
	for _, title := range titles {
		out = append(out, models.Blog{Title: title})
	}
	return out
}

func TestAggregate_TotalBlogs(t *testing.T) {
	result, err := Aggregate(blogs("a", "b", "a", "c", "d"))
	require.NoError(t, err)
	assert.Equal(t, 5, result.TotalBlogs)
}

func TestAggregate_LongestTitle(t *testing.T) {
	testCases := []struct {
		name     string
		titles   []string
		expected string
	}{
		{
			name:     "Longest last",
			titles:   []string{"Privacy Policy", "Hi", "Privacy Policy Extended"},
			expected: "Privacy Policy Extended",
		},
		{
			name:     "Tie keeps first",
			titles:   []string{"abc", "xyz", "ab"},
			expected: "abc",
		},
		{
			name:     "Single item",
			titles:   []string{"only"},
			expected: "only",
		},
		{
			name:     "Empty titles",
			titles:   []string{"", ""},
			expected: "",
		},
		{
			name:     "Astral runes count as two",
			titles:   []string{"abcd", "😀xyz"},
			expected: "😀xyz",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Aggregate(blogs(tc.titles...))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result.LongestTitle)
		})
	}
}

func TestAggregate_BlogsWithPrivacy(t *testing.T) {
	result, err := Aggregate(blogs("PRIVACY notice", "hello"))
	require.NoError(t, err)
	assert.Equal(t, 1, result.BlogsWithPrivacy)

	// Substring, không phải whole-word
	result, err = Aggregate(blogs("dataprivacyday", "Privacy", "privacy", "priv acy"))
	require.NoError(t, err)
	assert.Equal(t, 3, result.BlogsWithPrivacy)
}

func TestAggregate_UniqueBlogTitles(t *testing.T) {
	result, err := Aggregate(blogs("A", "B", "A", "C"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, result.UniqueBlogTitles)

	// So sánh chính xác, khác hoa thường là khác title
	result, err = Aggregate(blogs("a", "A", "a"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "A"}, result.UniqueBlogTitles)
}

func TestAggregate_EmptyInput(t *testing.T) {
	result, err := Aggregate(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Nil(t, result)
}

func TestTitleLength(t *testing.T) {
	assert.Equal(t, 0, TitleLength(""))
	assert.Equal(t, 5, TitleLength("hello"))
	assert.Equal(t, 3, TitleLength("héé"))
	assert.Equal(t, 2, TitleLength("😀"))
}

func TestFilterTitles(t *testing.T) {
	titles := []string{"Privacy Policy", "Release Notes"}

	assert.Equal(t, []string{"Privacy Policy"}, FilterTitles(titles, "privacy"))
	assert.Equal(t, []string{"Privacy Policy"}, FilterTitles(titles, "PRIVACY"))
	assert.Equal(t, []string{"Privacy Policy", "Release Notes"}, FilterTitles(titles, ""))
	assert.Equal(t, []string{"Release Notes"}, FilterTitles(titles, "e"))
	assert.Equal(t, []string{"Privacy Policy", "Release Notes"}, FilterTitles(titles, "O"))
	assert.Empty(t, FilterTitles(titles, "missing"))
	assert.NotNil(t, FilterTitles(nil, "x"))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Tin tức ĐÀ NẴNG", "đà nẵng"))
	assert.True(t, ContainsFold("anything", ""))
	assert.False(t, ContainsFold("", "a"))
}
