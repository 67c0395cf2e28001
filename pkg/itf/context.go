// Package itf drives the whole presentation server in-process against a fake
// backend, the way a browser would.
package itf

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/iota-uz/boxoffice/internal/server"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/eventbus"
	"github.com/iota-uz/boxoffice/pkg/session"
)

var configureOnce sync.Once

// Configure seeds the environment the configuration singleton needs before
// its first use in a test binary.
func Configure() *configuration.Configuration {
	configureOnce.Do(func() {
		defaults := map[string]string{
			"BACKEND_URL":        "http://backend.invalid",
			"LOG_PATH":           os.TempDir() + "/boxoffice-test.log",
			"LOG_LEVEL":          "silent",
			"RATE_LIMIT_ENABLED": "false",
			"ACTION_LOG_ENABLED": "true",
		}
		for k, v := range defaults {
			if _, ok := os.LookupEnv(k); !ok {
				_ = os.Setenv(k, v)
			}
		}
	})
	return configuration.Use()
}

// User is a signed-in identity that belongs to the given tenants.
func User(tenants ...string) *session.Identity {
	id := &session.Identity{ID: 1, Name: "Ann Lee", Email: "ann@example.com"}
	for _, slug := range tenants {
		id.Tenants = append(id.Tenants, session.TenantRef{Slug: slug, Name: strings.ToUpper(slug)})
	}
	return id
}

// Suite is the presentation server wired with the given modules.
type Suite struct {
	tb       testing.TB
	App      application.Application
	Backend  *Backend
	Sessions *session.Store

	conf    *configuration.Configuration
	router  *mux.Router
	session *session.Session
}

func NewSuite(tb testing.TB, backend *Backend, modules ...application.Module) *Suite {
	tb.Helper()
	conf := Configure()
	sessions := session.NewStore(time.Hour, func() (*apiclient.Client, error) {
		return apiclient.New(apiclient.Options{BaseURL: backend.URL()})
	})
	app := application.New(&application.ApplicationOptions{
		EventBus:           eventbus.NewEventPublisher(conf.Logger()),
		Sessions:           sessions,
		Logger:             conf.Logger(),
		SupportedLanguages: []string{"en", "zh"},
	})
	require.NoError(tb, app.RegisterModules(modules...))
	srv, err := server.Default(&server.DefaultOptions{
		Logger:        conf.Logger(),
		Configuration: conf,
		Application:   app,
		Entrypoint:    "server",
	})
	require.NoError(tb, err)
	return &Suite{
		tb:       tb,
		App:      app,
		Backend:  backend,
		Sessions: sessions,
		conf:     conf,
		router:   srv.Router(),
	}
}

// AsUser signs a fresh session in as identity. Requests made through the
// returned suite carry its cookie.
func (s *Suite) AsUser(identity *session.Identity) *Suite {
	s.tb.Helper()
	sess, err := s.Sessions.Create()
	require.NoError(s.tb, err)
	sess.SetIdentity(identity)
	clone := *s
	clone.session = sess
	return &clone
}

// Anonymous starts a session that is not signed in.
func (s *Suite) Anonymous() *Suite {
	s.tb.Helper()
	sess, err := s.Sessions.Create()
	require.NoError(s.tb, err)
	clone := *s
	clone.session = sess
	return &clone
}

// Router is the assembled application router.
func (s *Suite) Router() *mux.Router {
	return s.router
}

// Session is the session requests are made in, nil until AsUser or
// Anonymous is called.
func (s *Suite) Session() *session.Session {
	return s.session
}

func (s *Suite) GET(path string) *Request {
	return s.newRequest(http.MethodGet, path)
}

func (s *Suite) POST(path string) *Request {
	return s.newRequest(http.MethodPost, path)
}

func (s *Suite) OPTIONS(path string) *Request {
	return s.newRequest(http.MethodOptions, path)
}

func (s *Suite) newRequest(method, path string) *Request {
	return &Request{suite: s, method: method, path: path, header: http.Header{}}
}

type Request struct {
	suite  *Suite
	method string
	path   string
	header http.Header
	body   io.Reader
}

func (r *Request) Header(key, value string) *Request {
	r.header.Set(key, value)
	return r
}

// HTMX marks the request as issued by htmx.
func (r *Request) HTMX() *Request {
	return r.Header("HX-Request", "true")
}

func (r *Request) Form(values url.Values) *Request {
	r.body = strings.NewReader(values.Encode())
	return r.Header("Content-Type", "application/x-www-form-urlencoded")
}

func (r *Request) Expect() *Response {
	tb := r.suite.tb
	tb.Helper()
	req := httptest.NewRequest(r.method, r.path, r.body)
	req.Header = r.header
	if r.suite.session != nil {
		req.AddCookie(&http.Cookie{Name: r.suite.conf.SidCookieKey, Value: r.suite.session.ID})
	}
	rec := httptest.NewRecorder()
	r.suite.router.ServeHTTP(rec, req)
	return &Response{tb: tb, rec: rec}
}

type Response struct {
	tb  testing.TB
	rec *httptest.ResponseRecorder
}

func (r *Response) Status(code int) *Response {
	r.tb.Helper()
	require.Equal(r.tb, code, r.rec.Code, r.rec.Body.String())
	return r
}

func (r *Response) Header(key string) string {
	return r.rec.Header().Get(key)
}

func (r *Response) Body() string {
	return r.rec.Body.String()
}

func (r *Response) JSON(out any) *Response {
	r.tb.Helper()
	require.NoError(r.tb, json.Unmarshal(r.rec.Body.Bytes(), out), r.rec.Body.String())
	return r
}

func (r *Response) HTML() *HTML {
	r.tb.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.rec.Body.Bytes()))
	require.NoError(r.tb, err)
	root, err := htmlquery.Parse(bytes.NewReader(r.rec.Body.Bytes()))
	require.NoError(r.tb, err)
	return &HTML{tb: r.tb, Doc: doc, root: root}
}

// HTML answers CSS selector queries through goquery and XPath queries
// through htmlquery.
type HTML struct {
	tb   testing.TB
	Doc  *goquery.Document
	root *html.Node
}

func (h *HTML) Find(selector string) *goquery.Selection {
	return h.Doc.Find(selector)
}

// Texts returns the trimmed text of every element matching selector.
func (h *HTML) Texts(selector string) []string {
	var out []string
	h.Doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

func (h *HTML) XPath(expr string) []*html.Node {
	h.tb.Helper()
	nodes, err := htmlquery.QueryAll(h.root, expr)
	require.NoError(h.tb, err)
	return nodes
}

// Attr returns attribute name of the first node matching expr.
func (h *HTML) Attr(expr, name string) string {
	h.tb.Helper()
	nodes := h.XPath(expr)
	require.NotEmpty(h.tb, nodes, "no node matches %s", expr)
	return htmlquery.SelectAttr(nodes[0], name)
}
