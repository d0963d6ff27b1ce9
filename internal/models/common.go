package models

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

// DateLayout is the calendar-day format used for every date field.
const DateLayout = "2006-01-02"

// Today formats the local calendar day of now.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// Paginate clamps page/size into the accepted range: page ≥ 1, 1 ≤ size ≤ 100,
// defaulting size to 20.
func Paginate(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return page, size
}

// Window slices items for the given page and size. A size of zero or less
// returns items unchanged.
func Window[T any](items []T, page, size int) []T {
	if size <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func applyString(dst *string, v null.String) {
	if v.Valid {
		*dst = v.String
	}
}

func containsFold(needle string, haystacks ...string) bool {
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}
