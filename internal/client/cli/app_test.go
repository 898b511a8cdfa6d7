package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shop is a fake storefront backend plus object storage.
type shop struct {
	mu       sync.Mutex
	paths    []string
	bodies   map[string]string
	stored   map[string][]byte
	token    string
	origin   *httptest.Server
	storage  *httptest.Server
	loggedIn bool
}

const shopAddresses = `[
 {"id":1,"recipientName":"Kim","zipCode":"04524","addressLine1":"Sejong-daero 110","phoneNumber":"010-1111-2222","default":true},
 {"id":2,"recipientName":"Lee","zipCode":"06236","addressLine1":"Teheran-ro 152","phoneNumber":"010-3333-4444"}
]`

func newShop(t *testing.T) *shop {
	t.Helper()
	s := &shop{bodies: map[string]string{}, stored: map[string][]byte{}}

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "42",
		"email":    "a@b.c",
		"nickname": "kim",
		"roles":    []string{"SELLER"},
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	s.token = tok

	s.storage = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		b, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.stored[strings.TrimPrefix(r.URL.Path, "/")] = b
		s.mu.Unlock()
	}))
	t.Cleanup(s.storage.Close)

	s.origin = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.origin.Close)
	return s
}

func (s *shop) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	route := r.Method + " " + r.URL.Path

	s.mu.Lock()
	s.paths = append(s.paths, route)
	s.bodies[route] = string(body)
	s.mu.Unlock()

	switch route {
	case "POST /api/login":
		http.SetCookie(w, &http.Cookie{Name: common.AccessTokenCookieName, Value: s.token, Path: "/"})
	case "GET /logout":
		http.SetCookie(w, &http.Cookie{Name: common.AccessTokenCookieName, Value: "", Path: "/", MaxAge: -1})
	case "GET /api/address/list":
		if _, err := r.Cookie(common.AccessTokenCookieName); err != nil {
			http.Redirect(w, r, "/login?error="+common.LoginRequiredParam, http.StatusFound)
			return
		}
		_, _ = w.Write([]byte(shopAddresses))
	case "GET /login":
		_, _ = w.Write([]byte("<html>login</html>"))
	case "DELETE /api/address/delete":
		_, _ = w.Write([]byte("Address deleted."))
	case "POST /getPreSignedUrl":
		var req models.PresignRequest
		_ = json.Unmarshal(body, &req)
		_ = json.NewEncoder(w).Encode(models.PresignResponse{URL: s.storage.URL + "/products/" + req.FileName + "?X-Amz-Signature=abc"})
	case "POST /registerProduct":
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	case "POST /cart/add":
		_, _ = w.Write([]byte("ok"))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *shop) body(route string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies[route]
}

func (s *shop) object(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stored[key]
}

func (s *shop) seen(route string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.paths {
		if p == route {
			return true
		}
	}
	return false
}

func testConfig(s *shop, dir string) *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.BaseURL = s.origin.URL
	c.RequestTimeout = 5 * time.Second
	c.SessionDB = filepath.Join(dir, "session.db")
	return c
}

func runScript(t *testing.T, c *config.Config, lines ...string) string {
	t.Helper()
	stubTerminal(t, false, nil)

	var out bytes.Buffer
	app, err := NewApp(context.Background(), c, nil, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	require.NoError(t, err)
	defer app.Close()

	app.Run(context.Background())
	return out.String()
}

func TestApp_LoginPersistsSession(t *testing.T) {
	s := newShop(t)
	c := testConfig(s, t.TempDir())

	out := runScript(t, c, "whoami", "login a@b.c", "secret", "whoami", "exit")
	assert.Contains(t, out, "Not signed in.")
	assert.Contains(t, out, "! "+common.MsgLoginDone)
	assert.Contains(t, out, "Email:    a@b.c")
	assert.Contains(t, out, "Roles:    [SELLER]")
	assert.JSONEq(t, `{"email":"a@b.c","password":"secret"}`, s.body("POST /api/login"))

	out = runScript(t, c, "whoami", "exit")
	assert.Contains(t, out, "Signed in as a@b.c")
	assert.Contains(t, out, "Nickname: kim")

	out = runScript(t, c, "logout", "whoami", "exit")
	assert.Contains(t, out, "! "+common.MsgLogoutDone)
	assert.Contains(t, out, "Not signed in.")
	assert.True(t, s.seen("GET /logout"))

	out = runScript(t, c, "whoami", "exit")
	assert.NotContains(t, out, "Signed in as")
}

func TestApp_AddressesNeedLogin(t *testing.T) {
	s := newShop(t)
	c := testConfig(s, t.TempDir())

	out := runScript(t, c, "addresses", "exit")
	assert.Contains(t, out, "-> /login?error="+common.LoginRequiredParam)
	assert.Contains(t, out, "! "+common.MsgLoginRequired)
	assert.NotContains(t, out, "RECIPIENT")
}

func TestApp_AddressesAndDelete(t *testing.T) {
	s := newShop(t)
	c := testConfig(s, t.TempDir())

	out := runScript(t, c,
		"login a@b.c", "secret",
		"addresses",
		"addresses html",
		"address-delete 2", "y",
		"address-delete x",
		"exit",
	)
	assert.Contains(t, out, "RECIPIENT")
	assert.Contains(t, out, "Teheran-ro 152")
	assert.Contains(t, out, `<div class="address-item mb-2 p-2 border rounded" data-id="2">`)
	assert.Contains(t, out, "! Address deleted.")
	assert.Contains(t, out, "usage: address-delete <id>")
	assert.JSONEq(t, `{"id":2}`, s.body("DELETE /api/address/delete"))
}

func TestApp_ProductDraftUploadAndSubmit(t *testing.T) {
	s := newShop(t)
	dir := t.TempDir()
	c := testConfig(s, dir)

	img := filepath.Join(dir, "mug.png")
	require.NoError(t, os.WriteFile(img, []byte("png-bytes"), 0o600))
	thumb := filepath.Join(dir, "thumb.png")
	require.NoError(t, os.WriteFile(thumb, []byte("thumb-bytes"), 0o600))

	out := runScript(t, c,
		"thumb "+thumb,
		"image "+img,
		"images",
		"product-submit", "Mug", "Blue mug", "12.5", "3",
		"cart p-1 2",
		"order p-1 3",
		"exit",
	)

	assert.Contains(t, out, "thumbnail: products/thumb.png")
	assert.Contains(t, out, "uploaded mug.png as products/mug.png")
	assert.Contains(t, out, "(empty)")
	assert.Contains(t, out, "! "+common.MsgProductRegistered)
	assert.Contains(t, out, "! "+common.MsgCartAdded)
	assert.Contains(t, out, "-> /productOrder?productId=p-1&quantity=3")

	assert.Equal(t, []byte("png-bytes"), s.object("products/mug.png"))

	var p models.Product
	require.NoError(t, json.Unmarshal([]byte(s.body("POST /registerProduct")), &p))
	assert.Equal(t, "Mug", p.Title)
	require.NotNil(t, p.ThumbnailImage)
	assert.Equal(t, "products/thumb.png", p.ThumbnailImage.FileKey)
	require.Len(t, p.ContentImages, 1)
	assert.Equal(t, models.Attachment{FileName: "mug.png", FileKey: "products/mug.png"}, p.ContentImages[0])

	assert.JSONEq(t, `{"productId":"p-1","quantity":2}`, s.body("POST /cart/add"))
}

func TestApp_ImageSlots(t *testing.T) {
	s := newShop(t)
	dir := t.TempDir()
	c := testConfig(s, dir)

	var paths []string
	for _, n := range []string{"a.png", "b.png", "c.png"} {
		p := filepath.Join(dir, n)
		require.NoError(t, os.WriteFile(p, []byte(n), 0o600))
		paths = append(paths, p)
	}

	out := runScript(t, c,
		"image "+strings.Join(paths, " "),
		"image-up 3",
		"image-rm 1",
		"image-rm 9",
		"images",
		"product-clear",
		"images",
		"exit",
	)

	assert.Contains(t, out, "uploaded c.png as products/c.png")
	assert.Contains(t, out, "error: no image at position 9")
	assert.Contains(t, out, "! Draft cleared.")

	// After moving c above b and removing a: c, b, empty.
	table := out[strings.Index(out, "POS"):]
	table = table[:strings.Index(table, "Draft cleared")]
	assert.Less(t, strings.Index(table, "c.png"), strings.Index(table, "b.png"))
	assert.NotContains(t, table, "a.png")
}

func TestApp_Exec(t *testing.T) {
	s := newShop(t)
	c := testConfig(s, t.TempDir())
	runScript(t, c, "login a@b.c", "secret", "exit")

	var out bytes.Buffer
	app, err := NewApp(context.Background(), c, nil, strings.NewReader(""), &out)
	require.NoError(t, err)
	defer app.Close()

	assert.True(t, app.Exec(context.Background(), []string{"whoami"}))
	assert.Contains(t, out.String(), "Email:    a@b.c")

	assert.False(t, app.Exec(context.Background(), []string{"order"}))
	assert.Contains(t, out.String(), "usage: order <productId> [quantity]")

	assert.False(t, app.Exec(context.Background(), []string{"nope"}))
	assert.Contains(t, out.String(), "Unknown command: nope")

	assert.False(t, app.Exec(context.Background(), nil))
}

func TestApp_ExecFailuresReturnFalse(t *testing.T) {
	openApp := func(t *testing.T, s *shop) (*App, *bytes.Buffer) {
		t.Helper()
		stubTerminal(t, false, nil)
		var out bytes.Buffer
		app, err := NewApp(context.Background(), testConfig(s, t.TempDir()), nil, strings.NewReader(""), &out)
		require.NoError(t, err)
		t.Cleanup(func() { app.Close() })
		return app, &out
	}

	t.Run("login required", func(t *testing.T) {
		app, out := openApp(t, newShop(t))

		assert.False(t, app.Exec(context.Background(), []string{"addresses"}))
		assert.Contains(t, out.String(), "-> /login?error="+common.LoginRequiredParam)
		assert.Equal(t, 1, strings.Count(out.String(), common.MsgLoginRequired))
		assert.NotContains(t, out.String(), "error:")
	})

	t.Run("backend down", func(t *testing.T) {
		s := newShop(t)
		app, out := openApp(t, s)
		s.origin.Close()

		assert.False(t, app.Exec(context.Background(), []string{"cart", "7"}))
		assert.Contains(t, out.String(), "! ")
		assert.NotContains(t, out.String(), "error:")
	})

	t.Run("upload rejected", func(t *testing.T) {
		s := newShop(t)
		app, out := openApp(t, s)
		s.storage.Close()

		thumb := filepath.Join(t.TempDir(), "thumb.png")
		require.NoError(t, os.WriteFile(thumb, []byte("thumb-bytes"), 0o600))

		assert.False(t, app.Exec(context.Background(), []string{"thumb", thumb}))
		assert.Contains(t, out.String(), "! "+common.MsgUploadFailed)
		assert.NotContains(t, out.String(), "thumbnail:")
	})

	t.Run("success still true", func(t *testing.T) {
		app, _ := openApp(t, newShop(t))
		assert.True(t, app.Exec(context.Background(), []string{"cart", "7"}))
	})
}
