package pagination

import "gorm.io/gorm"

const (
	defaultTake = 20
	maxTake     = 100
)

// ListRequest holds take/skip list parameters parsed from query strings.
type ListRequest struct {
	Take int `form:"take" binding:"omitempty,min=1"`
	Skip int `form:"skip" binding:"omitempty,min=0"`
}

// Defaults fills in the default page size and clamps take/skip to their
// allowed ranges.
func (r *ListRequest) Defaults() {
	if r.Take <= 0 {
		r.Take = defaultTake
	}
	if r.Take > maxTake {
		r.Take = maxTake
	}
	if r.Skip < 0 {
		r.Skip = 0
	}
}

// ListResponse wraps a list of items with paging metadata.
type ListResponse[T any] struct {
	Data       []T   `json:"data"`
	Take       int   `json:"take"`
	Skip       int   `json:"skip"`
	TotalItems int64 `json:"total_items"`
}

// NewListResponse creates a ListResponse from the given data and total count.
func NewListResponse[T any](data []T, take, skip int, totalItems int64) ListResponse[T] {
	if data == nil {
		data = []T{}
	}
	return ListResponse[T]{
		Data:       data,
		Take:       take,
		Skip:       skip,
		TotalItems: totalItems,
	}
}

// Scope returns a GORM scope that applies OFFSET and LIMIT for the given
// list request.
func Scope(req ListRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Skip).Limit(req.Take)
	}
}
