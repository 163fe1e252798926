package shared

import (
	"net/url"
	"strconv"
)

// Filter represents list query options forwarded to the remote API
type Filter struct {
	Page     int
	PageSize int
	Search   string
	Filters  map[string]string
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		Filters:  make(map[string]string),
	}
}

// With returns a copy of the filter with an extra key set. Empty values are skipped.
func (f Filter) With(key, value string) Filter {
	out := f
	out.Filters = make(map[string]string, len(f.Filters)+1)
	for k, v := range f.Filters {
		out.Filters[k] = v
	}
	if value != "" {
		out.Filters[key] = value
	}
	return out
}

// Query encodes the filter as URL query values
func (f Filter) Query() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		q.Set("limit", strconv.Itoa(f.PageSize))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	for k, v := range f.Filters {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
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
	if pageSize <= 0 {
		pageSize = len(items)
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

// HasNext reports whether a later page exists
func (p Paginated[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// HasPrev reports whether an earlier page exists
func (p Paginated[T]) HasPrev() bool {
	return p.Page > 1
}
