package datatable

import (
	"net/url"
	"sync"
)

// Location is the query-string capability a Controller reads and writes.
// Replace must not navigate; it rewrites the current history entry.
type Location interface {
	Get(key string) (string, bool)
	Replace(params map[string]string)
}

func PageKey(tableID string) string {
	return "page_" + tableID
}

func SortKey(tableID string) string {
	return "sort_" + tableID
}

// QueryLocation is a Location over a request URL. Handlers publish the
// rewritten URL to the browser when Replaced reports true.
type QueryLocation struct {
	mu       sync.Mutex
	u        url.URL
	replaced bool
}

func NewQueryLocation(u *url.URL) *QueryLocation {
	l := &QueryLocation{}
	if u != nil {
		l.u = *u
	}
	return l
}

func (l *QueryLocation) Get(key string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	values, ok := l.u.Query()[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[len(values)-1], true
}

func (l *QueryLocation) Replace(params map[string]string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	q := l.u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	l.u.RawQuery = q.Encode()
	l.replaced = true
}

// URL returns a copy of the current URL.
func (l *QueryLocation) URL() *url.URL {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := l.u
	return &cp
}

// Replaced reports whether Replace was called since construction.
func (l *QueryLocation) Replaced() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.replaced
}

// RequestURI is the path and query of the current URL.
func (l *QueryLocation) RequestURI() string {
	return l.URL().RequestURI()
}
