package apiclient

import (
	"context"
	"net/url"
	"strconv"

	"github.com/go-faster/errors"

	"github.com/iota-uz/boxoffice/pkg/datatable"
)

// PageQuery is the query string understood by paginated backend listings.
type PageQuery struct {
	Page      int
	PerPage   int
	Sort      string
	Direction string
	Search    string
	// Extra holds endpoint specific filters such as event_id.
	Extra url.Values
}

// FromRefetch converts what a table asks for into a backend query.
func FromRefetch(args datatable.RefetchArgs, perPage int) PageQuery {
	q := PageQuery{PerPage: perPage}
	if n, err := strconv.Atoi(args.Page); err == nil && n > 0 {
		q.Page = n
	} else {
		q.Page = 1
	}
	if args.Sorting != nil {
		q.Sort = args.Sorting.ID
		q.Direction = args.Sorting.Direction()
	}
	return q
}

func (q PageQuery) Values() url.Values {
	v := url.Values{}
	for key, values := range q.Extra {
		for _, value := range values {
			v.Add(key, value)
		}
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(q.PerPage))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
		dir := q.Direction
		if dir == "" {
			dir = "asc"
		}
		v.Set("direction", dir)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

// GetPage fetches one paginator envelope.
func GetPage[T any](ctx context.Context, c *Client, path string, q PageQuery) (datatable.Page[T], error) {
	var page datatable.Page[T]
	if err := c.Get(ctx, path, q.Values(), &page); err != nil {
		return datatable.Page[T]{}, errors.Wrapf(err, "list %s", path)
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}

// Walk visits every page of a listing, stopping at the first error.
func Walk[T any](ctx context.Context, c *Client, path string, q PageQuery, visit func(datatable.Page[T]) error) error {
	if q.Page < 1 {
		q.Page = 1
	}
	for {
		page, err := GetPage[T](ctx, c, path, q)
		if err != nil {
			return err
		}
		if err := visit(page); err != nil {
			return err
		}
		if page.CurrentPage >= page.LastPage || len(page.Items) == 0 {
			return nil
		}
		q.Page = page.CurrentPage + 1
	}
}
