package forms

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/view"
	"github.com/stretchr/testify/require"
)

type call struct {
	method  string
	path    string
	headers http.Header
	body    string
}

// backend is a scripted storefront server. Unrouted paths answer 200 {}.
type backend struct {
	mu     sync.Mutex
	calls  []call
	routes map[string]http.HandlerFunc
	client *api.Client
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{routes: map[string]http.HandlerFunc{}}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.calls = append(b.calls, call{method: r.Method, path: r.URL.Path, headers: r.Header.Clone(), body: string(body)})
		h := b.routes[r.Method+" "+r.URL.Path]
		b.mu.Unlock()
		if h == nil {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		h(w, r)
	}))
	t.Cleanup(ts.Close)

	jar, err := api.NewCookieJar()
	require.NoError(t, err)
	b.client = api.NewClient(ts.URL, jar, 5*time.Second)
	return b
}

func (b *backend) on(route string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[route] = h
}

func (b *backend) Calls() []call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]call(nil), b.calls...)
}

func status(code int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	}
}

func unreachableClient() *api.Client {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()
	return api.NewClient(ts.URL, nil, time.Second)
}

func newForm(spec Spec, values map[string]string) (*Controller, *view.Recorder, *view.MapFieldStore) {
	ui := view.NewRecorder(true)
	store := view.NewMapFieldStore(values)
	return NewController(spec, ui, store, nil), ui, store
}
