package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	r := mux.NewRouter()
	NewController("", nil).Register(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, DefaultPath, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestInstrumentBackend_CountsCalls(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, "{}")
	}))
	t.Cleanup(backend.Close)

	client := &http.Client{Transport: InstrumentBackend(nil)}
	for _, path := range []string{"/api/user", "/missing"} {
		resp, err := client.Get(backend.URL + path)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	body := scrape(t)
	require.Contains(t, body, `boxoffice_backend_requests_total{code="200",method="get"}`)
	require.Contains(t, body, `boxoffice_backend_requests_total{code="404",method="get"}`)
	require.Contains(t, body, "boxoffice_backend_request_duration_seconds_bucket")
	require.Contains(t, body, "boxoffice_backend_in_flight_requests 0")
}

func TestController_ServesRuntimeCollectors(t *testing.T) {
	ActiveSessions.Set(3)
	body := scrape(t)
	require.Contains(t, body, "boxoffice_active_sessions 3")
	require.Contains(t, body, "go_goroutines")
}

func TestController_CustomPath(t *testing.T) {
	c := NewController("/metrics", nil)
	require.Equal(t, "/metrics", c.Key())
}
