// Package apiclient is the authenticated fetch wrapper for the backend API.
//
// Each Client owns a cookie jar, so one Client per browser session keeps the
// backend session and XSRF cookies apart.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/publicsuffix"

	"github.com/iota-uz/boxoffice/pkg/constants"
)

const (
	DefaultCSRFPath  = "/sanctum/csrf-cookie"
	ContentTypeJSON  = "application/json"
	ContentTypeMerge = "application/merge-patch+json"
)

var tracer = otel.Tracer("boxoffice-apiclient")

type Options struct {
	BaseURL         string
	Origin          string
	Token           string
	Timeout         time.Duration
	CSRFPath        string
	RequestIDHeader string
	Transport       http.RoundTripper
	Logger          *logrus.Logger
}

type Client struct {
	baseURL         *url.URL
	origin          string
	token           string
	csrfPath        string
	requestIDHeader string
	jar             http.CookieJar
	httpClient      *http.Client
	logger          *logrus.Logger
}

func New(opts Options) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("invalid base url: %q", opts.BaseURL)
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, errors.Wrap(err, "cookie jar")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	csrfPath := opts.CSRFPath
	if csrfPath == "" {
		csrfPath = DefaultCSRFPath
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		baseURL:         u,
		origin:          opts.Origin,
		token:           strings.TrimSpace(opts.Token),
		csrfPath:        csrfPath,
		requestIDHeader: opts.RequestIDHeader,
		jar:             jar,
		httpClient: &http.Client{
			Jar:       jar,
			Timeout:   timeout,
			Transport: opts.Transport,
		},
		logger: logger,
	}, nil
}

// Request describes one backend call. JSON is marshalled unless Body is set.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	JSON        any
	Body        []byte
	ContentType string
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func (c *Client) endpoint(path string, query url.Values) *url.URL {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return &u
}

// XSRFToken returns the decoded XSRF cookie value, if the jar has one.
func (c *Client) XSRFToken() string {
	for _, cookie := range c.jar.Cookies(c.baseURL) {
		if cookie.Name != constants.CookieXSRF {
			continue
		}
		token, err := url.QueryUnescape(cookie.Value)
		if err != nil {
			return cookie.Value
		}
		return token
	}
	return ""
}

// EnsureXSRF primes the jar with the backend's XSRF cookie.
func (c *Client) EnsureXSRF(ctx context.Context) error {
	if c.XSRFToken() != "" {
		return nil
	}
	return c.RefreshXSRF(ctx)
}

func (c *Client) RefreshXSRF(ctx context.Context) error {
	_, err := c.send(ctx, Request{Method: http.MethodGet, Path: c.csrfPath}, nil)
	if err != nil {
		return errors.Wrap(err, "fetch csrf cookie")
	}
	return nil
}

// Do sends the request and decodes a 2xx JSON body into out.
// A 419 on a mutating request refreshes the XSRF cookie and retries once.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	if isMutating(req.Method) {
		if err := c.EnsureXSRF(ctx); err != nil {
			return err
		}
	}
	status, err := c.send(ctx, req, out)
	if status == 419 && isMutating(req.Method) {
		if rErr := c.RefreshXSRF(ctx); rErr != nil {
			return err
		}
		_, err = c.send(ctx, req, out)
	}
	return err
}

func (c *Client) send(ctx context.Context, r Request, out any) (int, error) {
	u := c.endpoint(r.Path, r.Query)

	ctx, span := tracer.Start(ctx, "apiclient."+strings.ToLower(r.Method),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.url", u.String()),
		),
	)
	defer span.End()

	var body io.Reader
	contentType := r.ContentType
	switch {
	case r.Body != nil:
		body = bytes.NewReader(r.Body)
	case r.JSON != nil:
		b, err := json.Marshal(r.JSON)
		if err != nil {
			return 0, errors.Wrap(err, "marshal request")
		}
		body = bytes.NewReader(b)
	}
	if body != nil && contentType == "" {
		contentType = ContentTypeJSON
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u.String(), body)
	if err != nil {
		return 0, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", ContentTypeJSON)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.origin != "" {
		req.Header.Set("Origin", c.origin)
		req.Header.Set("Referer", c.origin)
	}
	if c.requestIDHeader != "" {
		req.Header.Set(c.requestIDHeader, requestID(ctx))
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if isMutating(r.Method) {
		if token := c.XSRFToken(); token != "" {
			req.Header.Set(constants.HeaderXSRF, token)
		}
	}
	propagation.TraceContext{}.Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, errors.Wrapf(err, "%s %s", r.Method, r.Path)
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.loggerFor(ctx).WithFields(logrus.Fields{
		"method":   r.Method,
		"path":     r.Path,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("backend request")

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, errors.Wrap(err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{Status: resp.StatusCode}
		if len(respBody) > 0 {
			_ = json.Unmarshal(respBody, statusErr)
		}
		statusErr.Status = resp.StatusCode
		span.SetStatus(codes.Error, statusErr.Error())
		return resp.StatusCode, statusErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return resp.StatusCode, errors.Wrap(err, "decode response")
	}
	return resp.StatusCode, nil
}

func (c *Client) loggerFor(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry); ok && entry != nil {
		return entry.WithField("component", "apiclient")
	}
	return c.logger.WithField("component", "apiclient")
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(constants.RequestIDKey).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, JSON: body}, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, JSON: body}, out)
}

// MergePatch sends an RFC 7386 document as is.
func (c *Client) MergePatch(ctx context.Context, path string, patch []byte, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: patch, ContentType: ContentTypeMerge}, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, nil)
}
