package services

import (
	"math"
	"strconv"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 12
	MaxPageSize     = 100
	// MaxPage keeps Page*PageSize from overflowing.
	MaxPage = math.MaxInt / MaxPageSize
)

// PageRequest selects one page of a listing.
type PageRequest struct {
	Page     int
	PageSize int
}

// ParsePageRequest reads page and size from query strings. Missing,
// non-numeric or non-positive values fall back to the defaults.
func ParsePageRequest(page, size string) PageRequest {
	p, err := strconv.Atoi(page)
	if err != nil {
		p = DefaultPage
	}
	s, err := strconv.Atoi(size)
	if err != nil {
		s = DefaultPageSize
	}
	return PageRequest{Page: p, PageSize: s}.Normalize()
}

// Normalize replaces out of range values with defaults and caps PageSize
// and Page.
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.PageSize < 1 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
	if r.Page > MaxPage {
		r.Page = MaxPage
	}
	return r
}

// Offset is the number of rows before the page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	Page        int   `json:"page"`
	PageSize    int   `json:"pageSize"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// Paginate derives the pagination metadata of a page.
func Paginate(r PageRequest, total int64) Pagination {
	r = r.Normalize()
	size := int64(r.PageSize)
	return Pagination{
		Page:        r.Page,
		PageSize:    r.PageSize,
		Total:       total,
		TotalPages:  int((total + size - 1) / size),
		HasNextPage: int64(r.Page)*size < total,
		HasPrevPage: r.Page > 1,
	}
}
