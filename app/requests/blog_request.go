package requests

import "errors"

// ErrMissingQuery thiếu tham số query
var ErrMissingQuery = errors.New("query parameter is required")

// BlogSearchRequest request tìm kiếm title
type BlogSearchRequest struct {
	// nil khi thiếu tham số, "" khi có nhưng rỗng
	Query *string `form:"query"`
}

// Validate kiểm tra request
func (r *BlogSearchRequest) Validate() error {
	if r.Query == nil {
		return ErrMissingQuery
	}
	return nil
}
