package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

var ajaxHeader = map[string]string{"X-Requested-With": "XMLHttpRequest"}

// Login posts credentials. On success the backend sets the session cookies
// in the jar; the reply has no body.
func (c *Client) Login(ctx context.Context, cred models.Credentials) error {
	_, err := c.send(ctx, request{method: http.MethodPost, path: "/api/login", json: cred})
	return err
}

// Logout asks the backend to expire the session cookies. Any response,
// including a redirect to the home page, counts as success.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.send(ctx, request{method: http.MethodGet, path: "/logout"})
	return err
}

// CheckEmailExists succeeds when an account with email exists. A missing
// account is reported as an *APIError.
func (c *Client) CheckEmailExists(ctx context.Context, email string) error {
	_, err := c.send(ctx, request{
		method:  http.MethodPost,
		path:    "/api/check-email-exists",
		json:    models.EmailRequest{Email: email},
		headers: ajaxHeader,
	})
	return err
}

// CheckEmailDuplication succeeds when email is free. A taken email comes
// back as a 409 *APIError carrying the server's message.
func (c *Client) CheckEmailDuplication(ctx context.Context, email string) error {
	_, err := c.send(ctx, request{
		method: http.MethodPost,
		path:   "/api/check-email-duplication",
		json:   models.EmailRequest{Email: email},
	})
	return err
}

// Register creates an account. The backend answers 201 with a plain-text
// confirmation, returned as is.
func (c *Client) Register(ctx context.Context, req models.SignupRequest) (string, error) {
	return c.sendMessage(ctx, request{method: http.MethodPost, path: "/api/register", json: req})
}

// RequestPasswordResetByEmail mails a new password to an anonymous user.
func (c *Client) RequestPasswordResetByEmail(ctx context.Context, email string) (string, error) {
	return c.sendMessage(ctx, request{
		method:  http.MethodPost,
		path:    "/request-password-reset-by-email",
		json:    models.EmailRequest{Email: email},
		headers: ajaxHeader,
	})
}

// RequestPasswordReset mails a new password to the signed-in user. The body
// is an empty form.
func (c *Client) RequestPasswordReset(ctx context.Context) (string, error) {
	return c.sendMessage(ctx, request{
		method:  http.MethodPost,
		path:    "/request-password-reset",
		form:    url.Values{},
		headers: ajaxHeader,
	})
}

// ResetPassword submits the token from the reset link with a new password.
func (c *Client) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (string, error) {
	return c.sendMessage(ctx, request{
		method: http.MethodPost,
		path:   "/reset-password-post",
		form: url.Values{
			"token":       {req.Token},
			"newPassword": {req.NewPassword},
		},
	})
}
