package forms

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// Backend is the part of api.Client the forms call.
type Backend interface {
	Login(ctx context.Context, cred models.Credentials) error
	CheckEmailExists(ctx context.Context, email string) error
	CheckEmailDuplication(ctx context.Context, email string) error
	Register(ctx context.Context, req models.SignupRequest) (string, error)
	RequestPasswordResetByEmail(ctx context.Context, email string) (string, error)
	RequestPasswordReset(ctx context.Context) (string, error)
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (string, error)
	CreateAddress(ctx context.Context, in models.AddressInput) (string, error)
	UpdateAddress(ctx context.Context, in models.AddressUpdate) (string, error)
	DeleteAddress(ctx context.Context, id int64) (string, error)
	RegisterProduct(ctx context.Context, p models.Product) (string, error)
	AddToCart(ctx context.Context, item models.CartItem) (string, error)
}

var _ Backend = (*api.Client)(nil)

// Reloader re-fetches and re-renders a list after a mutation.
type Reloader interface {
	Reload(ctx context.Context) error
}

// passThrough reports errors a chain step must not mask with its own fixed
// message: no response at all, or a bounce to the login page.
func passThrough(err error) bool {
	if errors.Is(err, common.ErrUnavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var apiErr *api.APIError
	return errors.As(err, &apiErr) && apiErr.LoginRequired
}

func orDefault(msg, def string) string {
	if msg != "" {
		return msg
	}
	return def
}

func asAPIError(err error) *api.APIError {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
