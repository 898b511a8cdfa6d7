// Package api is a typed HTTP client for the storefront backend. One Client
// holds the cookie jar that carries the session between calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"golang.org/x/net/publicsuffix"
)

// maxBodyBytes caps how much of a response body is buffered.
const maxBodyBytes = 4 << 20

// Client calls the storefront backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its Jar and Timeout
// are used as given.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewCookieJar returns a jar that applies public suffix rules.
func NewCookieJar() (*cookiejar.Jar, error) {
	return cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
}

// NewClient constructs a backend client. jar may be nil for a cookie-less
// client; timeout 0 means no timeout.
func NewClient(baseURL string, jar http.CookieJar, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Jar: jar, Timeout: timeout},
		log:        logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the parsed backend root, used to scope jar cookies.
func (c *Client) BaseURL() *url.URL {
	u, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return &url.URL{}
	}
	return u
}

// Jar returns the cookie jar shared by every request, or nil.
func (c *Client) Jar() http.CookieJar {
	return c.httpClient.Jar
}

// HTTPClient returns the underlying client so uploads share its transport.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

type request struct {
	method  string
	path    string
	query   url.Values
	json    any
	form    url.Values
	headers map[string]string
}

// send issues r and returns the body of a 2xx response. Any other status is
// an *APIError; failures before a response arrive wrap common.ErrUnavailable.
func (c *Client) send(ctx context.Context, r request) ([]byte, error) {
	var body io.Reader
	contentType := ""
	switch {
	case r.json != nil:
		data, err := json.Marshal(r.json)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	case r.form != nil:
		body = strings.NewReader(r.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	c.log.Debug(ctx, "request", "method", r.method, "path", r.path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %s %s: %v", common.ErrUnavailable, r.method, r.path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s: %v", common.ErrUnavailable, r.method, r.path, err)
	}

	c.log.Debug(ctx, "response", "method", r.method, "path", r.path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: parseMessage(data)}
	}
	if redirectedToLogin(resp) {
		return nil, &APIError{Status: http.StatusUnauthorized, Message: common.MsgLoginRequired, LoginRequired: true}
	}
	return data, nil
}

// sendJSON decodes a 2xx JSON body into out. An empty body leaves out as is.
func (c *Client) sendJSON(ctx context.Context, r request, out any) error {
	data, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", r.method, r.path, err)
	}
	return nil
}

// sendMessage returns the message the backend attached to a 2xx reply, or
// "" when there is none.
func (c *Client) sendMessage(ctx context.Context, r request) (string, error) {
	data, err := c.send(ctx, r)
	if err != nil {
		return "", err
	}
	return parseMessage(data), nil
}

// redirectedToLogin reports whether the backend bounced an anonymous request
// to /login?error=needLogin and the client followed the redirect.
func redirectedToLogin(resp *http.Response) bool {
	if resp.Request == nil || resp.Request.URL == nil {
		return false
	}
	u := resp.Request.URL
	return u.Path == "/login" && u.Query().Get("error") == common.LoginRequiredParam
}

// parseMessage extracts a human-readable message from a response body:
// a JSON {message} or {error} object, a JSON string, or short plain text.
// HTML pages yield "".
func parseMessage(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ""
	}

	var obj struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		if obj.Message != "" {
			return obj.Message
		}
		return obj.Error
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}

	if data[0] == '<' || data[0] == '{' || data[0] == '[' || len(data) > 512 {
		return ""
	}
	return string(data)
}

// IsLoginRequired reports whether err says the session is missing or stale.
func IsLoginRequired(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.LoginRequired || apiErr.Status == http.StatusUnauthorized
	}
	return errors.Is(err, common.ErrUnauthorized)
}
