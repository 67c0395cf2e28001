package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/composables"
)

func TestOrderRepository_GetPaginated(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tenants/acme/orders", r.URL.Path)
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{
				"id": 7, "reference": "BX-7", "customer_name": "Ann", "customer_email": "ann@example.com",
				"status": "paid", "total": "25.50", "currency": "EUR", "event_id": 3, "tickets_count": 2,
				"created_at": "2026-03-01T10:00:00Z",
			}},
			"current_page": 2, "last_page": 4, "per_page": 1, "total": 4,
		})
	}))
	defer srv.Close()

	client, err := apiclient.New(apiclient.Options{BaseURL: srv.URL})
	require.NoError(t, err)
	ctx := composables.WithClient(context.Background(), client)

	page, err := NewOrderRepository().GetPaginated(ctx, "acme", apiclient.PageQuery{Page: 2, PerPage: 1, Sort: "total", Direction: "desc"})
	require.NoError(t, err)
	require.Contains(t, query, "sort=total")
	require.Contains(t, query, "direction=desc")
	require.Equal(t, 2, page.CurrentPage)
	require.Equal(t, 4, page.LastPage)
	require.Len(t, page.Items, 1)

	o := page.Items[0]
	require.Equal(t, "BX-7", o.Reference())
	require.Equal(t, "Ann", o.Customer().Name)
	require.Equal(t, "25.5", o.Total().String())
	require.Equal(t, 2, o.Tickets())
}

func TestOrderRepository_NoClient(t *testing.T) {
	_, err := NewOrderRepository().GetPaginated(context.Background(), "acme", apiclient.PageQuery{Page: 1})
	require.ErrorIs(t, err, composables.ErrNoClient)
}
