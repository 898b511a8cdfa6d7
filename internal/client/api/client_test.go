package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method  string
	path    string
	query   string
	headers http.Header
	body    []byte
}

// newTestServer records every request and answers with handler.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *[]captured) {
	t.Helper()
	var calls []captured
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		calls = append(calls, captured{
			method:  r.Method,
			path:    r.URL.Path,
			query:   r.URL.RawQuery,
			headers: r.Header.Clone(),
			body:    b,
		})
		handler(w, r)
	}))
	t.Cleanup(ts.Close)

	jar, err := NewCookieJar()
	require.NoError(t, err)
	return NewClient(ts.URL+"/", jar, 5*time.Second), &calls
}

func TestLogin_SendsExactRequestAndStoresCookies(t *testing.T) {
	c, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: common.AccessTokenCookieName, Value: "tok", Path: "/"})
		w.WriteHeader(http.StatusOK)
	})

	err := c.Login(context.Background(), models.Credentials{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	got := (*calls)[0]
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/login", got.path)
	assert.Equal(t, "application/json", got.headers.Get("Content-Type"))
	assert.JSONEq(t, `{"email":"a@b.c","password":"pw"}`, string(got.body))

	cookies := c.Jar().Cookies(c.BaseURL())
	require.Len(t, cookies, 1)
	assert.Equal(t, "tok", cookies[0].Value)
}

func TestLogin_Non2xxIsAPIError(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	err := c.Login(context.Background(), models.Credentials{Email: "a@b.c", Password: "bad"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, "Unauthorized", err.Error())
}

func TestSend_TransportErrorIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()

	c := NewClient(ts.URL, nil, time.Second)
	err := c.Login(context.Background(), models.Credentials{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnavailable)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestSend_ContextCanceled(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListAddresses(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, common.ErrUnavailable)
}

func TestSend_LoginRedirectIsUnauthorized(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>login</html>"))
			return
		}
		http.Redirect(w, r, "/login?error=needLogin", http.StatusFound)
	})

	_, err := c.ListAddresses(context.Background())
	require.Error(t, err)
	assert.True(t, IsLoginRequired(err))
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, common.MsgLoginRequired, err.Error())
}

func TestCheckEmailDuplication_ConflictCarriesServerMessage(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"email already in use: a@b.c"}`))
	})

	err := c.CheckEmailDuplication(context.Background(), "a@b.c")
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, "email already in use: a@b.c", err.Error())
}

func TestRegister_ReturnsPlainTextBody(t *testing.T) {
	c, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("a@b.c registered"))
	})

	msg, err := c.Register(context.Background(), models.SignupRequest{
		Email: "a@b.c", Password: "pw", ConfirmPassword: "pw", Nickname: "nick", Role: models.RoleBuyer,
	})
	require.NoError(t, err)
	assert.Equal(t, "a@b.c registered", msg)
	assert.JSONEq(t, `{"email":"a@b.c","password":"pw","confirmPassword":"pw","nickname":"nick","role":"BUYER"}`,
		string((*calls)[0].body))
}

func TestPasswordResetEndpoints(t *testing.T) {
	c, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"done"}`))
	})
	ctx := context.Background()

	require.NoError(t, c.CheckEmailExists(ctx, "a@b.c"))
	_, err := c.RequestPasswordResetByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	_, err = c.RequestPasswordReset(ctx)
	require.NoError(t, err)
	msg, err := c.ResetPassword(ctx, models.ResetPasswordRequest{Token: "t0k", NewPassword: "n3w"})
	require.NoError(t, err)
	assert.Equal(t, "done", msg)

	require.Len(t, *calls, 4)

	assert.Equal(t, "/api/check-email-exists", (*calls)[0].path)
	assert.Equal(t, "XMLHttpRequest", (*calls)[0].headers.Get("X-Requested-With"))

	assert.Equal(t, "/request-password-reset-by-email", (*calls)[1].path)
	assert.JSONEq(t, `{"email":"a@b.c"}`, string((*calls)[1].body))
	assert.Equal(t, "XMLHttpRequest", (*calls)[1].headers.Get("X-Requested-With"))

	assert.Equal(t, "/request-password-reset", (*calls)[2].path)
	assert.Equal(t, "application/x-www-form-urlencoded", (*calls)[2].headers.Get("Content-Type"))
	assert.Empty(t, (*calls)[2].body)

	assert.Equal(t, "/reset-password-post", (*calls)[3].path)
	assert.Equal(t, "application/x-www-form-urlencoded", (*calls)[3].headers.Get("Content-Type"))
	assert.Equal(t, "newPassword=n3w&token=t0k", string((*calls)[3].body))
}

func TestListAddresses(t *testing.T) {
	t.Run("null", func(t *testing.T) {
		c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("null"))
		})
		list, err := c.ListAddresses(context.Background())
		require.NoError(t, err)
		assert.Nil(t, list)
	})

	t.Run("one", func(t *testing.T) {
		c, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"id":1,"recipientName":"Hong","default":true,"createAt":null}]`))
		})
		list, err := c.ListAddresses(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Hong", list[0].RecipientName)
		assert.Equal(t, http.MethodGet, (*calls)[0].method)
		assert.Equal(t, "/api/address/list", (*calls)[0].path)
	})
}

func TestAddressMutations(t *testing.T) {
	c, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.MessageResponse{Message: r.Method + " ok"})
	})
	ctx := context.Background()

	msg, err := c.CreateAddress(ctx, models.AddressInput{RecipientName: "Kim"})
	require.NoError(t, err)
	assert.Equal(t, "POST ok", msg)

	msg, err = c.UpdateAddress(ctx, models.AddressUpdate{ID: 3, AddressInput: models.AddressInput{RecipientName: "Lee"}})
	require.NoError(t, err)
	assert.Equal(t, "PUT ok", msg)

	msg, err = c.DeleteAddress(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "DELETE ok", msg)

	assert.Equal(t, "/api/address/register", (*calls)[0].path)
	assert.Equal(t, "/api/address/update", (*calls)[1].path)
	assert.Equal(t, "/api/address/delete", (*calls)[2].path)
	assert.JSONEq(t, `{"id":3}`, string((*calls)[2].body))
}

func TestPreSignedURL(t *testing.T) {
	t.Run("POST json", func(t *testing.T) {
		c, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"url":"https://s3.example/test/a.png?sig=1"}`))
		})
		u, err := c.GetPreSignedURL(context.Background(), "a.png")
		require.NoError(t, err)
		assert.Equal(t, "https://s3.example/test/a.png?sig=1", u)
		assert.JSONEq(t, `{"fileName":"a.png"}`, string((*calls)[0].body))
	})

	t.Run("GET text", func(t *testing.T) {
		c, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("https://s3.example/test/b.png?sig=2\n"))
		})
		u, err := c.GetPreSignedURLByQuery(context.Background(), "b c.png")
		require.NoError(t, err)
		assert.Equal(t, "https://s3.example/test/b.png?sig=2", u)
		assert.Equal(t, http.MethodGet, (*calls)[0].method)
		assert.Equal(t, "filename=b+c.png", (*calls)[0].query)
	})

	t.Run("empty body", func(t *testing.T) {
		c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
		_, err := c.GetPreSignedURL(context.Background(), "a.png")
		require.Error(t, err)
	})
}

func TestRegisterProduct_AcceptsJSON(t *testing.T) {
	c, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	_, err := c.RegisterProduct(context.Background(), models.Product{Title: "Mug"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", (*calls)[0].headers.Get("Accept"))
	assert.Equal(t, "/registerProduct", (*calls)[0].path)
}

func TestAddToCartAndLogout(t *testing.T) {
	c, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	ctx := context.Background()

	_, err := c.AddToCart(ctx, models.CartItem{ProductID: "42", Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, c.Logout(ctx))

	assert.JSONEq(t, `{"productId":"42","quantity":2}`, string((*calls)[0].body))
	assert.Equal(t, "/logout", (*calls)[1].path)
	assert.Equal(t, http.MethodGet, (*calls)[1].method)
}

func TestParseMessage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: ``, want: ""},
		{in: `{"message":"hello"}`, want: "hello"},
		{in: `{"error":"nope"}`, want: "nope"},
		{in: `"quoted"`, want: "quoted"},
		{in: `plain text reply`, want: "plain text reply"},
		{in: `<!DOCTYPE html><html></html>`, want: ""},
		{in: `[1,2]`, want: ""},
		{in: `{"other":1}`, want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseMessage([]byte(tt.in)), tt.in)
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	assert.ErrorIs(t, &APIError{Status: http.StatusForbidden}, common.ErrUnauthorized)
	assert.ErrorIs(t, &APIError{Status: http.StatusNotFound}, common.ErrNotFound)
	assert.NoError(t, (&APIError{Status: http.StatusInternalServerError}).Unwrap())
	assert.Equal(t, "boom", (&APIError{Status: 500, Message: "boom"}).Error())
}
