package common

import (
	"net/url"
	"strconv"
	"strings"
)

// ParsePositiveInt parses positive integers with fallback.
func ParsePositiveInt(value string, fallback int) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, false
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback, false
	}
	return parsed, true
}

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

// ParsePage reads ?page and ?limit. limit is capped at MaxPageLimit.
func ParsePage(query url.Values) Page {
	page, _ := ParsePositiveInt(query.Get("page"), 1)
	limit, _ := ParsePositiveInt(query.Get("limit"), DefaultPageLimit)
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Page{Page: page, Limit: limit}
}

// Bounds returns the [start,end) slice window for total items.
// 巨大な page でも乗算しないので溢れない。範囲外は空の窓になる。
func (p Page) Bounds(total int) (int, int) {
	if total <= 0 {
		return 0, 0
	}
	page, limit := p.Page, p.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if page-1 > (total-1)/limit {
		return total, total
	}
	start := (page - 1) * limit
	end := total
	if limit < total-start {
		end = start + limit
	}
	return start, end
}
