// Package tables mounts datatable controllers for page handlers and answers
// the htmx requests that act on them.
package tables

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/datatable"
	"github.com/iota-uz/boxoffice/pkg/htmx"
	"github.com/iota-uz/boxoffice/pkg/intl"
	"github.com/iota-uz/boxoffice/pkg/session"
	"github.com/iota-uz/boxoffice/pkg/toast"
)

// NotifyEvent is the HX-Trigger event carrying pending toasts.
const NotifyEvent = "notify"

// FetchFunc loads one backend page for a table.
type FetchFunc[T any] func(ctx context.Context, q apiclient.PageQuery) (datatable.Page[T], error)

type Spec[T any] struct {
	ID      string
	Columns datatable.ColumnsFunc[T]
	Fetch   FetchFunc[T]
	PerPage int
	// Extra is forwarded to every backend query, e.g. an event_id filter.
	Extra  url.Values
	Params map[string]string
	Class  string
}

// Page collects the tables mounted while rendering one document. Every
// table shares the page's Location so their query parameters accumulate.
type Page struct {
	Session  *session.Session
	Location *datatable.QueryLocation
	r        *http.Request
}

func NewPage(r *http.Request) (*Page, error) {
	s, err := composables.UseSession(r.Context())
	if err != nil {
		return nil, err
	}
	return &Page{
		Session:  s,
		Location: datatable.NewQueryLocation(htmx.CurrentURL(r)),
		r:        r,
	}, nil
}

// Labels are the localized table chrome strings.
func Labels(ctx context.Context) datatable.Labels {
	return datatable.Labels{
		Empty:    intl.T(ctx, "DataTable.Empty", "No results."),
		Previous: intl.T(ctx, "DataTable.Previous", "Previous"),
		Next:     intl.T(ctx, "DataTable.Next", "Next"),
	}
}

func initialPage(loc datatable.Location, id string) int {
	raw, ok := loc.Get(datatable.PageKey(id))
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func initialSort(loc datatable.Location, id string, logger *logrus.Entry) *datatable.Sort {
	raw, ok := loc.Get(datatable.SortKey(id))
	if !ok {
		return nil
	}
	s, err := datatable.DecodeSort(raw)
	if err != nil {
		logger.WithError(err).WithField("table", id).Warn("ignoring malformed sort parameter")
		return nil
	}
	return s
}

func (s Spec[T]) query(args datatable.RefetchArgs) apiclient.PageQuery {
	q := apiclient.FromRefetch(args, s.PerPage)
	q.Extra = s.Extra
	return q
}

// Mount loads the page the URL asks for, builds the controller, runs its
// first synchronization and registers it with the session. Backend auth
// errors are returned; any other load failure mounts an empty table.
func Mount[T any](p *Page, spec Spec[T]) (*datatable.Controller[T], error) {
	ctx := p.r.Context()
	logger := composables.TryUseLogger(ctx)

	sort := initialSort(p.Location, spec.ID, logger)
	args := datatable.RefetchArgs{Page: strconv.Itoa(initialPage(p.Location, spec.ID)), Sorting: sort}

	data, fetchErr := spec.Fetch(ctx, spec.query(args))
	if apiclient.IsAuthError(fetchErr) {
		return nil, fetchErr
	}
	if fetchErr != nil {
		logger.WithError(fetchErr).WithField("table", spec.ID).Error("initial table load failed")
		data = datatable.Page[T]{Items: []T{}, CurrentPage: 1, LastPage: 1, PageSize: spec.PerPage}
		sort = nil
	}

	ctrl, err := datatable.New(datatable.Options[T]{
		TableID:     spec.ID,
		Columns:     spec.Columns,
		InitialData: data,
		InitialSort: sort,
		Refetch: func(ctx context.Context, args datatable.RefetchArgs) (datatable.Page[T], error) {
			return spec.Fetch(ctx, spec.query(args))
		},
		Location:  p.Location,
		Notifier:  p.Session.Toasts,
		Params:    spec.Params,
		Labels:    Labels(ctx),
		ClassName: spec.Class,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	if res := ctrl.Mount(ctx); fetchErr != nil && res != datatable.SyncFailed {
		p.Session.Toasts.Error(ctx, datatable.FetchFailedMessage)
	}
	p.Session.Tables.Put(ctrl)
	return ctrl, nil
}

// ReplaceURL publishes the rewritten URL. Htmx requests get HX-Replace-Url;
// full documents carry the returned value in data-replace-url.
func (p *Page) ReplaceURL(w http.ResponseWriter) string {
	if !p.Location.Replaced() {
		return ""
	}
	uri := p.Location.RequestURI()
	if htmx.IsHxRequest(p.r) {
		htmx.ReplaceURL(w, uri)
	}
	return uri
}

// Notify moves pending toasts into the notify trigger of an htmx response.
func Notify(w http.ResponseWriter, q *toast.Queue) error {
	msgs := q.Drain()
	if len(msgs) == 0 {
		return nil
	}
	return htmx.Trigger(w, NotifyEvent, map[string]any{"messages": msgs})
}

// Respond renders a table after an action, publishing its URL and toasts.
func Respond(w http.ResponseWriter, r *http.Request, s *session.Session, h datatable.Handle, loc *datatable.QueryLocation) {
	if loc.Replaced() {
		htmx.ReplaceURL(w, loc.RequestURI())
	}
	if err := Notify(w, s.Toasts); err != nil {
		composables.TryUseLogger(r.Context()).WithError(err).Warn("failed to encode notifications")
	}
	templ.Handler(h.Component()).ServeHTTP(w, r)
}
