package datatable_test

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/boxoffice/pkg/datatable"
)

type row struct {
	Name  string
	Venue string
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Error(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

type fakeBackend struct {
	mu    sync.Mutex
	pages map[string]datatable.Page[row]
	calls []datatable.RefetchArgs
	err   error
}

func (b *fakeBackend) Refetch(_ context.Context, args datatable.RefetchArgs) (datatable.Page[row], error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, args)
	if b.err != nil {
		return datatable.Page[row]{}, b.err
	}
	return b.pages[args.Page], nil
}

func (b *fakeBackend) Calls() []datatable.RefetchArgs {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]datatable.RefetchArgs(nil), b.calls...)
}

func columns(datatable.ColumnContext) []datatable.Column[row] {
	return []datatable.Column[row]{
		{
			ID:       "name",
			Header:   datatable.SortHeader("Name", "name"),
			Cell:     func(r row) templ.Component { return datatable.Text(r.Name) },
			Sortable: true,
		},
		{
			ID:     "venue",
			Header: datatable.TextHeader("Venue"),
			Cell:   func(r row) templ.Component { return datatable.Text(r.Venue) },
		},
	}
}

// twoPages is four events served two per page.
func twoPages() map[string]datatable.Page[row] {
	return map[string]datatable.Page[row]{
		"1": {
			Items:       []row{{Name: "Opening Night", Venue: "Main Hall"}, {Name: "Matinee", Venue: "Studio"}},
			CurrentPage: 1, LastPage: 2, PageSize: 2, TotalCount: 4,
		},
		"2": {
			Items:       []row{{Name: "Closing Gala", Venue: "Roof"}, {Name: "Encore", Venue: "Main Hall"}},
			CurrentPage: 2, LastPage: 2, PageSize: 2, TotalCount: 4,
		},
	}
}

func requireInBounds(t *testing.T, c *datatable.Controller[row]) {
	t.Helper()
	state := c.State()
	require.GreaterOrEqual(t, state.Data.CurrentPage, 1)
	require.LessOrEqual(t, state.Data.CurrentPage, state.Data.LastPage)
	require.Equal(t, state.Data.CurrentPage < state.Data.LastPage, c.CanNext())
	require.Equal(t, state.Data.CurrentPage > 1, c.CanPrevious())
}

func newController(t *testing.T, rawURL string, initial datatable.Page[row], backend *fakeBackend, notifier datatable.Notifier) (*datatable.Controller[row], *datatable.QueryLocation) {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	loc := datatable.NewQueryLocation(u)
	c, err := datatable.New(datatable.Options[row]{
		TableID:     "events",
		Columns:     columns,
		InitialData: initial,
		Refetch:     backend.Refetch,
		Location:    loc,
		Notifier:    notifier,
	})
	require.NoError(t, err)
	return c, loc
}

func render(t *testing.T, c *datatable.Controller[row]) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Component().Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(buf.String()))
	require.NoError(t, err)
	return doc
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := datatable.New(datatable.Options[row]{TableID: "events"})
	require.ErrorIs(t, err, datatable.ErrNoLocation)

	_, err = datatable.New(datatable.Options[row]{
		TableID:  "events",
		Location: datatable.NewQueryLocation(&url.URL{}),
	})
	require.ErrorIs(t, err, datatable.ErrNoRefetch)
}

func TestController_ControlsFollowBounds(t *testing.T) {
	backend := &fakeBackend{pages: twoPages()}
	c, _ := newController(t, "/events?page_events=1&sort_events=null", twoPages()["1"], backend, nil)

	require.False(t, c.CanPrevious())
	require.True(t, c.CanNext())
	require.ErrorIs(t, c.Previous(context.Background()), datatable.ErrControlDisabled)

	require.NoError(t, c.Next(context.Background()))
	require.True(t, c.CanPrevious())
	require.False(t, c.CanNext())
	require.ErrorIs(t, c.Next(context.Background()), datatable.ErrControlDisabled)
	require.Len(t, backend.Calls(), 1)
}

func TestController_SyncIsIdempotent(t *testing.T) {
	backend := &fakeBackend{pages: twoPages()}
	c, loc := newController(t, "/events?page_events=1&sort_events=null", twoPages()["1"], backend, nil)

	require.Equal(t, datatable.SyncNoop, c.Mount(context.Background()))
	require.Equal(t, datatable.SyncNoop, c.Sync(context.Background()))
	require.Empty(t, backend.Calls())
	require.False(t, loc.Replaced())
}

func TestController_NextThenPreviousRefetches(t *testing.T) {
	backend := &fakeBackend{pages: twoPages()}
	c, loc := newController(t, "/events?page_events=1&sort_events=null", twoPages()["1"], backend, nil)
	ctx := context.Background()

	require.NoError(t, c.Next(ctx))
	require.NoError(t, c.Previous(ctx))

	calls := backend.Calls()
	require.Len(t, calls, 2)
	require.Equal(t, "2", calls[0].Page)
	require.Equal(t, "1", calls[1].Page)
	require.Nil(t, calls[0].Sorting)

	page, ok := loc.Get("page_events")
	require.True(t, ok)
	require.Equal(t, "1", page)
	require.Equal(t, 0, c.State().Pagination.PageIndex)
	require.Equal(t, 2, c.State().Data.PageSize)
	require.Len(t, c.State().Data.Items, 2)
}

func TestNextSort_Toggles(t *testing.T) {
	s := datatable.NextSort(nil, "name")
	require.Equal(t, &datatable.Sort{ID: "name", Desc: false}, s)
	s = datatable.NextSort(s, "name")
	require.True(t, s.Desc)
	s = datatable.NextSort(s, "name")
	require.False(t, s.Desc)
	s = datatable.NextSort(&datatable.Sort{ID: "name", Desc: true}, "starts_at")
	require.Equal(t, &datatable.Sort{ID: "starts_at", Desc: false}, s)
}

func TestController_SortByTogglesDirection(t *testing.T) {
	backend := &fakeBackend{pages: twoPages()}
	c, loc := newController(t, "/events?page_events=1&sort_events=null", twoPages()["1"], backend, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, c.SortBy(ctx, "name"))
	}

	calls := backend.Calls()
	require.Len(t, calls, 3)
	var desc []bool
	for _, call := range calls {
		require.NotNil(t, call.Sorting)
		require.Equal(t, "name", call.Sorting.ID)
		desc = append(desc, call.Sorting.Desc)
	}
	require.Equal(t, []bool{false, true, false}, desc)

	sortParam, ok := loc.Get("sort_events")
	require.True(t, ok)
	require.Equal(t, `{"id":"name","desc":false}`, sortParam)
}

func TestController_InitialRender(t *testing.T) {
	backend := &fakeBackend{pages: twoPages()}
	c, _ := newController(t, "/events", twoPages()["1"], backend, nil)

	doc := render(t, c)
	require.Equal(t, "1 / 2", doc.Find(`[data-role="page-status"]`).Text())
	_, prevDisabled := doc.Find(`[data-role="previous"]`).Attr("disabled")
	require.True(t, prevDisabled)
	_, nextDisabled := doc.Find(`[data-role="next"]`).Attr("disabled")
	require.False(t, nextDisabled)
	require.Equal(t, "Opening Night", doc.Find("tbody tr td").First().Text())
	require.Equal(t, 2, doc.Find("thead th").Length())
}

func TestController_FirstSyncOnlyWritesURL(t *testing.T) {
	backend := &fakeBackend{pages: twoPages()}
	c, loc := newController(t, "/events?tab=all", twoPages()["1"], backend, nil)

	require.Equal(t, datatable.SyncURLOnly, c.Mount(context.Background()))
	require.Empty(t, backend.Calls())

	page, _ := loc.Get("page_events")
	sortParam, _ := loc.Get("sort_events")
	tab, _ := loc.Get("tab")
	require.Equal(t, "1", page)
	require.Equal(t, "null", sortParam)
	require.Equal(t, "all", tab)
}

func TestController_NextPageFetch(t *testing.T) {
	backend := &fakeBackend{pages: twoPages()}
	c, loc := newController(t, "/events", twoPages()["1"], backend, nil)
	ctx := context.Background()

	c.Mount(ctx)
	require.NoError(t, c.Next(ctx))

	doc := render(t, c)
	require.Equal(t, "2 / 2", doc.Find(`[data-role="page-status"]`).Text())
	require.Equal(t, "Closing Gala", doc.Find("tbody tr td").First().Text())
	require.Equal(t, 2, doc.Find("tbody tr").Length())

	page, ok := loc.Get("page_events")
	require.True(t, ok)
	require.Equal(t, "2", page)
	require.Contains(t, loc.RequestURI(), "page_events=2")
}

func TestController_RefetchFailureKeepsData(t *testing.T) {
	backend := &fakeBackend{pages: twoPages(), err: errors.New("backend down")}
	notifier := &recordingNotifier{}
	c, loc := newController(t, "/events?page_events=1&sort_events=null", twoPages()["1"], backend, notifier)

	require.NoError(t, c.Next(context.Background()))

	require.Equal(t, []string{datatable.FetchFailedMessage}, notifier.Messages())
	require.Equal(t, "Failed to fetch data", datatable.FetchFailedMessage)

	state := c.State()
	require.False(t, state.Loading)
	require.Equal(t, 0, state.Pagination.PageIndex)
	require.Equal(t, 1, state.Data.CurrentPage)

	page, _ := loc.Get("page_events")
	require.Equal(t, "1", page)

	doc := render(t, c)
	require.Equal(t, "Opening Night", doc.Find("tbody tr td").First().Text())
	require.Equal(t, "1 / 2", doc.Find(`[data-role="page-status"]`).Text())
}

func TestController_RefetchFailureRevertsSort(t *testing.T) {
	backend := &fakeBackend{pages: twoPages(), err: errors.New("backend down")}
	c, loc := newController(t, "/events?page_events=1&sort_events=null", twoPages()["1"], backend, &recordingNotifier{})

	require.NoError(t, c.SortBy(context.Background(), "name"))
	require.Nil(t, c.State().Sort)
	sortParam, _ := loc.Get("sort_events")
	require.Equal(t, "null", sortParam)
}

func TestController_EmptyPage(t *testing.T) {
	backend := &fakeBackend{}
	empty := datatable.Page[row]{CurrentPage: 1, LastPage: 5, PageSize: 10}
	c, _ := newController(t, "/events", empty, backend, nil)

	doc := render(t, c)
	rows := doc.Find("tbody tr")
	require.Equal(t, 1, rows.Length())
	cell := rows.Find("td")
	require.Equal(t, "No results.", cell.Text())
	colspan, _ := cell.Attr("colspan")
	require.Equal(t, "2", colspan)
	require.Equal(t, "1 / 5", doc.Find(`[data-role="page-status"]`).Text())
	_, nextDisabled := doc.Find(`[data-role="next"]`).Attr("disabled")
	require.False(t, nextDisabled)
}

func TestController_LoadingGate(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	refetch := func(_ context.Context, args datatable.RefetchArgs) (datatable.Page[row], error) {
		close(started)
		<-release
		return twoPages()[args.Page], nil
	}
	u, err := url.Parse("/events?page_events=1&sort_events=null")
	require.NoError(t, err)
	c, err := datatable.New(datatable.Options[row]{
		TableID:     "events",
		Columns:     columns,
		InitialData: twoPages()["1"],
		Refetch:     refetch,
		Location:    datatable.NewQueryLocation(u),
	})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- c.Next(context.Background()) }()
	<-started

	require.True(t, c.State().Loading)
	require.False(t, c.CanNext())
	require.False(t, c.CanPrevious())
	require.ErrorIs(t, c.Next(context.Background()), datatable.ErrControlDisabled)
	require.ErrorIs(t, c.SortBy(context.Background(), "name"), datatable.ErrControlDisabled)
	require.Equal(t, datatable.SyncSkipped, c.Sync(context.Background()))

	close(release)
	require.NoError(t, <-done)
	state := c.State()
	require.False(t, state.Loading)
	require.Equal(t, 2, state.Data.CurrentPage)
}

func TestController_AcceptsShrinkingLastPage(t *testing.T) {
	initial := datatable.Page[row]{
		Items:       []row{{Name: "Opening Night"}, {Name: "Matinee"}},
		CurrentPage: 2, LastPage: 3, PageSize: 2, TotalCount: 6,
	}
	backend := &fakeBackend{pages: map[string]datatable.Page[row]{
		// Two events were cancelled between requests.
		"3": {Items: []row{{Name: "Encore"}}, CurrentPage: 2, LastPage: 2, PageSize: 2, TotalCount: 3},
		"1": {Items: []row{{Name: "Opening Night"}}, CurrentPage: 1, LastPage: 1, PageSize: 2, TotalCount: 1},
	}}
	c, loc := newController(t, "/events?page_events=2&sort_events=null", initial, backend, nil)
	ctx := context.Background()
	requireInBounds(t, c)

	require.NoError(t, c.Next(ctx))
	requireInBounds(t, c)
	require.Equal(t, 2, c.State().Data.LastPage)
	require.False(t, c.CanNext())
	page, _ := loc.Get("page_events")
	require.Equal(t, "2", page)
	require.Equal(t, "2 / 2", render(t, c).Find(`[data-role="page-status"]`).Text())

	require.NoError(t, c.Previous(ctx))
	requireInBounds(t, c)
	require.False(t, c.CanNext())
	require.False(t, c.CanPrevious())
	require.Equal(t, "1 / 1", render(t, c).Find(`[data-role="page-status"]`).Text())
}

func TestController_RebindDuringRefetchKeepsURLOnFirstRequest(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	refetch := func(_ context.Context, args datatable.RefetchArgs) (datatable.Page[row], error) {
		close(started)
		<-release
		return twoPages()[args.Page], nil
	}
	first, err := url.Parse("/events?page_events=1&sort_events=null")
	require.NoError(t, err)
	firstLoc := datatable.NewQueryLocation(first)
	c, err := datatable.New(datatable.Options[row]{
		TableID:     "events",
		Columns:     columns,
		InitialData: twoPages()["1"],
		Refetch:     refetch,
		Location:    firstLoc,
	})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- c.Next(context.Background()) }()
	<-started

	// A double click binds the second request while the first is loading.
	second, err := url.Parse("/events?page_events=1&sort_events=null")
	require.NoError(t, err)
	secondLoc := datatable.NewQueryLocation(second)
	c.Bind(secondLoc)
	require.ErrorIs(t, c.Next(context.Background()), datatable.ErrControlDisabled)

	close(release)
	require.NoError(t, <-done)

	require.True(t, firstLoc.Replaced())
	require.Contains(t, firstLoc.RequestURI(), "page_events=2")
	require.False(t, secondLoc.Replaced())
	require.Contains(t, secondLoc.RequestURI(), "page_events=1")
}

func TestController_SortByRejectsPlainColumns(t *testing.T) {
	backend := &fakeBackend{pages: twoPages()}
	c, loc := newController(t, "/events?page_events=1&sort_events=null", twoPages()["1"], backend, nil)

	require.ErrorIs(t, c.SortBy(context.Background(), "venue"), datatable.ErrNotSortable)
	require.ErrorIs(t, c.SortBy(context.Background(), "missing"), datatable.ErrNotSortable)
	require.Nil(t, c.State().Sort)
	require.Empty(t, backend.Calls())
	require.False(t, loc.Replaced())
}
