package requests

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlogSearchRequest_Validate(t *testing.T) {
	empty := ""
	q := "privacy"

	assert.ErrorIs(t, (&BlogSearchRequest{}).Validate(), ErrMissingQuery)
	assert.NoError(t, (&BlogSearchRequest{Query: &empty}).Validate())
	assert.NoError(t, (&BlogSearchRequest{Query: &q}).Validate())
}

func TestCacheEntryRequest_Validate(t *testing.T) {
	all := "all"

	assert.ErrorIs(t, (&CacheEntryRequest{}).Validate(), ErrMissingQuery)
	assert.NoError(t, (&CacheEntryRequest{Query: &all}).Validate())
}
