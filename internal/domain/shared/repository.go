package shared

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Repository is the base interface for all repositories
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Normalize clamps paging values into their allowed range.
func (f *Filter) Normalize() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	if f.Filters == nil {
		f.Filters = make(map[string]interface{})
	}
}

// Offset returns the number of rows to skip for the current page.
func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// ErrInvalidSortField is returned when order_by names a column that cannot be sorted on
var ErrInvalidSortField = NewDomainError("INVALID_SORT_FIELD", "Kolom pengurutan tidak valid")

// ListQuery carries the paging, search and sort parameters shared by every list.
type ListQuery struct {
	Page     int
	PageSize int
	Search   string
	OrderBy  string
	OrderDir string
}

// ToFilter builds a normalized Filter. OrderBy must be empty or one of allowed.
func (q ListQuery) ToFilter(allowed []string, defaultOrder string) (Filter, error) {
	f := Filter{
		Page:     q.Page,
		PageSize: q.PageSize,
		Search:   strings.TrimSpace(q.Search),
		OrderBy:  defaultOrder,
		OrderDir: "desc",
	}
	if q.OrderBy != "" {
		if !slices.Contains(allowed, q.OrderBy) {
			return Filter{}, ErrInvalidSortField
		}
		f.OrderBy = q.OrderBy
	}
	if strings.EqualFold(q.OrderDir, "asc") {
		f.OrderDir = "asc"
	}
	f.Normalize()
	return f, nil
}
