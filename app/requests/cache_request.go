package requests

// CacheEntryRequest request thao tác với entry cache của một query.
// Entry của /api/blog-stats dùng query "all".
type CacheEntryRequest struct {
	Query *string `form:"query"`
}

// Validate kiểm tra request
func (r *CacheEntryRequest) Validate() error {
	if r.Query == nil {
		return ErrMissingQuery
	}
	return nil
}
