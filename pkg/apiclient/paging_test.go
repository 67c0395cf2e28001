package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/boxoffice/pkg/datatable"
)

type row struct {
	ID int `json:"id"`
}

func TestFromRefetch(t *testing.T) {
	q := FromRefetch(datatable.RefetchArgs{Page: "3", Sorting: &datatable.Sort{ID: "starts_at", Desc: true}}, 25)
	require.Equal(t, "direction=desc&page=3&per_page=25&sort=starts_at", q.Values().Encode())

	q = FromRefetch(datatable.RefetchArgs{Page: "oops"}, 10)
	require.Equal(t, 1, q.Page)
	require.Empty(t, q.Values().Get("sort"))
	require.Empty(t, q.Values().Get("direction"))
}

func TestPageQuery_KeepsExtraFilters(t *testing.T) {
	q := PageQuery{Page: 1, Extra: url.Values{"event_id": {"42"}}, Search: "jazz", Sort: "name"}
	v := q.Values()
	require.Equal(t, "42", v.Get("event_id"))
	require.Equal(t, "jazz", v.Get("search"))
	require.Equal(t, "asc", v.Get("direction"))
}

func pagedBackend(t *testing.T, lastPage int) *httptest.Server {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/api/rows", func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":         []row{{ID: page*10 + 1}, {ID: page*10 + 2}},
			"current_page": page,
			"last_page":    lastPage,
			"per_page":     2,
			"total":        lastPage * 2,
		})
	})
	r.HandleFunc("/api/empty", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null,"current_page":1,"last_page":1,"per_page":25,"total":0}`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetPage(t *testing.T) {
	srv := pagedBackend(t, 3)
	c, err := New(Options{BaseURL: srv.URL})
	require.NoError(t, err)

	page, err := GetPage[row](context.Background(), c, "/api/rows", PageQuery{Page: 2, PerPage: 2})
	require.NoError(t, err)
	require.Equal(t, 2, page.CurrentPage)
	require.Equal(t, 3, page.LastPage)
	require.Equal(t, []row{{ID: 21}, {ID: 22}}, page.Items)

	empty, err := GetPage[row](context.Background(), c, "/api/empty", PageQuery{})
	require.NoError(t, err)
	require.NotNil(t, empty.Items)
	require.Empty(t, empty.Items)
}

func TestWalk_VisitsEveryPage(t *testing.T) {
	srv := pagedBackend(t, 3)
	c, err := New(Options{BaseURL: srv.URL})
	require.NoError(t, err)

	var ids []int
	err = Walk[row](context.Background(), c, "/api/rows", PageQuery{PerPage: 2}, func(p datatable.Page[row]) error {
		for _, r := range p.Items {
			ids = append(ids, r.ID)
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{11, 12, 21, 22, 31, 32}, ids)
}
