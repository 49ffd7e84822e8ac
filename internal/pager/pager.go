// Package pager holds the page arithmetic shared by the table view, the
// pagination widget, and the static renderers.
package pager

import (
	"errors"
	"fmt"
)

// DefaultPerPage is used when no page size is configured.
const DefaultPerPage = 10

// ErrInvalidPerPage is returned for page sizes below 1.
var ErrInvalidPerPage = errors.New("rows per page must be at least 1")

// Config is a page position: a 1-based page number and a page size.
type Config struct {
	Page    int
	PerPage int
}

// New returns page 1 of the given size, falling back to DefaultPerPage when
// perPage is not positive.
func New(perPage int) Config {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return Config{Page: 1, PerPage: perPage}
}

// Validate checks the page position. Page 0 is rejected; pages past the end
// are clamped by Clamp rather than rejected because the row count is not
// known here.
func (c Config) Validate() error {
	if c.PerPage < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidPerPage, c.PerPage)
	}
	if c.Page < 1 {
		return fmt.Errorf("page must be at least 1, got %d", c.Page)
	}
	return nil
}

// PageCount returns ceil(total/PerPage). An empty set still has one page so
// the view always has a page to stand on.
func (c Config) PageCount(total int) int {
	if c.PerPage < 1 || total <= 0 {
		return 1
	}
	return (total + c.PerPage - 1) / c.PerPage
}

// Clamp pulls Page into [1, PageCount(total)].
func (c Config) Clamp(total int) Config {
	if last := c.PageCount(total); c.Page > last {
		c.Page = last
	}
	if c.Page < 1 {
		c.Page = 1
	}
	return c
}

// WithPerPage changes the page size. Any change of size while off page 1
// sends the position back to page 1.
func (c Config) WithPerPage(perPage int) Config {
	if perPage < 1 || perPage == c.PerPage {
		return c
	}
	c.PerPage = perPage
	if c.Page != 1 {
		c.Page = 1
	}
	return c
}

// Bounds returns the half-open [start, end) range of the page within a set of
// total items. Out-of-range pages produce an empty range at the end.
func (c Config) Bounds(total int) (start, end int) {
	if total <= 0 || c.PerPage < 1 || c.Page < 1 {
		return 0, 0
	}
	start = (c.Page - 1) * c.PerPage
	if start > total {
		start = total
	}
	end = start + c.PerPage
	if end > total {
		end = total
	}
	return start, end
}

// Window returns a copy of the page slice of items.
func Window[T any](c Config, items []T) []T {
	start, end := c.Bounds(len(items))
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
