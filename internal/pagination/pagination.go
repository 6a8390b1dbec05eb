// Package pagination turns untrusted page/limit query values into safe
// page, limit and offset numbers.
package pagination

import (
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Params is always usable: Page >= 1, Limit >= 1, Offset >= 0.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// FromQuery never fails. Missing, non-numeric or < 1 values fall back to
// the defaults, not to 1.
func FromQuery(rawPage, rawLimit string) Params {
	return New(parse(rawPage, DefaultPage), parse(rawLimit, DefaultLimit))
}

// New normalizes already parsed values with the same rules as FromQuery.
func New(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return Params{
		Page:   page,
		Limit:  limit,
		Offset: offset(page, limit),
	}
}

// offset saturates at math.MaxInt instead of wrapping negative. Such a page
// is always past the end, so the executor still answers BEYOND_RANGE.
func offset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// Capped returns a copy whose Limit does not exceed max. The offset is
// recomputed so that offset == (page-1)*limit still holds.
func (p Params) Capped(max int) Params {
	if max < 1 || p.Limit <= max {
		return p
	}
	return New(p.Page, max)
}

// TotalPages 计算总页数，total 为 0 时返回 0
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit < 1 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

func parse(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
