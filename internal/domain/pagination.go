package domain

// Pagination defaults and bounds for list/search queries.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest is a sanitized page/pageSize pair.
type PageRequest struct {
	Page     int
	PageSize int
}

// NewPageRequest clamps page and pageSize to valid bounds. Page numbers
// below 1 floor at 1 so a negative offset never reaches the store.
func NewPageRequest(page, pageSize int) PageRequest {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return PageRequest{Page: page, PageSize: pageSize}
}

// Offset returns the row offset for the page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResult holds pagination metadata for a listing response. TotalPages
// is derived from the store-reported total row count, not from the size of
// the current page.
type PageResult struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

// NewPageResult computes page metadata from a true total count.
func NewPageResult(req PageRequest, totalCount int64) PageResult {
	totalPages := int(totalCount) / req.PageSize
	if int(totalCount)%req.PageSize > 0 {
		totalPages++
	}
	return PageResult{
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
