package dto

import "math"

// MaxPage bounds the page parameter so the row offset stays representable.
const MaxPage = 1_000_000

// PageQuery holds 1-based paging parameters.
type PageQuery struct {
	Page int `query:"page" validate:"omitempty,min=1,max=1000000"`
	Size int `query:"size" validate:"omitempty,min=1,max=100"`
}

// Normalize applies defaults of page 1, size 10.
func (q PageQuery) Normalize() PageQuery {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 {
		q.Size = 10
	}
	return q
}

// Offset returns the number of rows to skip, saturating at math.MaxInt.
func (q PageQuery) Offset() int {
	q = q.Normalize()
	if q.Page-1 > math.MaxInt/q.Size {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Size
}

// Page is the paged list envelope.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage builds a page from one slice of results and the total row count.
func NewPage[T any](content []T, q PageQuery, total int64) Page[T] {
	q = q.Normalize()
	if content == nil {
		content = []T{}
	}
	pages := int((total + int64(q.Size) - 1) / int64(q.Size))
	return Page[T]{Content: content, Page: q.Page, Size: q.Size, TotalElements: total, TotalPages: pages}
}
