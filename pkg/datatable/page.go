package datatable

import (
	"context"
	"fmt"
)

// Page is the paginator envelope returned by the backend.
type Page[T any] struct {
	Items       []T `json:"data"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PageSize    int `json:"per_page"`
	TotalCount  int `json:"total"`
}

// Validate reports envelopes that break the paginator bounds.
func (p Page[T]) Validate() error {
	if p.TotalCount == 0 && p.LastPage == p.CurrentPage {
		return nil
	}
	if p.CurrentPage < 1 {
		return fmt.Errorf("current page must be >= 1, got %d", p.CurrentPage)
	}
	if p.CurrentPage > p.LastPage {
		return fmt.Errorf("current page %d exceeds last page %d", p.CurrentPage, p.LastPage)
	}
	if p.PageSize > 0 && len(p.Items) > p.PageSize {
		return fmt.Errorf("page holds %d items, page size is %d", len(p.Items), p.PageSize)
	}
	return nil
}

// Pagination is the controller's zero-based view of the current page.
type Pagination struct {
	PageIndex int
	PageSize  int
}

// RefetchArgs is what a Controller asks the backend for.
// Page is the one-based page number in decimal form.
type RefetchArgs struct {
	Page    string
	Sorting *Sort
}

// RefetchFunc loads one page from the backend.
type RefetchFunc[T any] func(ctx context.Context, args RefetchArgs) (Page[T], error)
