package itf

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/constants"
)

// Call is one request received by the fake backend.
type Call struct {
	Method string
	Path   string
	Query  string
	XSRF   string
	Body   string
}

// Backend is an in-process stand-in for the ticketing API. Tests register
// the endpoints they need on Router; anything else answers 404 with the
// backend's JSON error shape.
type Backend struct {
	Router *mux.Router

	srv   *httptest.Server
	mu    sync.Mutex
	calls []Call
}

func NewBackend(tb testing.TB) *Backend {
	tb.Helper()
	b := &Backend{Router: mux.NewRouter()}
	b.Router.HandleFunc(apiclient.DefaultCSRFPath, func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: constants.CookieXSRF, Value: "test-xsrf", Path: "/"})
		w.WriteHeader(http.StatusNoContent)
	})
	b.Router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusNotFound, map[string]any{"message": "Not Found"})
	})
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	tb.Cleanup(b.srv.Close)
	return b
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != apiclient.DefaultCSRFPath {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		b.mu.Lock()
		b.calls = append(b.calls, Call{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			XSRF:   r.Header.Get(constants.HeaderXSRF),
			Body:   string(body),
		})
		b.mu.Unlock()
	}
	b.Router.ServeHTTP(w, r)
}

func (b *Backend) URL() string {
	return b.srv.URL
}

// Calls returns the requests received so far, CSRF priming excluded.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// Client returns a fresh client pointed at the backend.
func (b *Backend) Client(tb testing.TB) *apiclient.Client {
	tb.Helper()
	client, err := apiclient.New(apiclient.Options{BaseURL: b.srv.URL})
	require.NoError(tb, err)
	return client
}

// Page answers with a Laravel style paginator envelope.
func Page(w http.ResponseWriter, items any, currentPage, lastPage, perPage, total int) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"data":         items,
		"current_page": currentPage,
		"last_page":    lastPage,
		"per_page":     perPage,
		"total":        total,
	})
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
