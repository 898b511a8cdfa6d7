package forms

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// Inline message areas on the sign-up page.
const (
	FieldDuplicatedEmailError = "duplicatedEmailError"
	FieldPasswordError        = "passwordError"
)

// LoginForm posts the credentials and goes home. Any rejection shows the
// same fixed message.
func LoginForm(b Backend) Spec {
	return Spec{
		Name:   "login",
		Fields: []string{"email", "password"},
		Validate: func(f Fields) error {
			if err := required(f, common.MsgEmailRequired, "email"); err != nil {
				return err
			}
			return required(f, common.MsgPasswordMissing, "password")
		},
		Submit: func(ctx context.Context, f Fields) (Success, error) {
			err := b.Login(ctx, models.Credentials{Email: f.Trimmed("email"), Password: f.Get("password")})
			if err != nil {
				return Success{}, err
			}
			return Success{Message: common.MsgLoginDone, NavigateTo: "/"}, nil
		},
		FailureMessage:   common.MsgLoginFailed,
		FixedFailure:     true,
		TransportMessage: common.MsgLoginFailed,
	}
}

// LoginNotice returns the notice for a login page opened with rawQuery,
// such as after the backend bounced an anonymous request.
func LoginNotice(rawQuery string) (string, bool) {
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", false
	}
	if q.Get("error") == common.LoginRequiredParam {
		return common.MsgLoginRequired, true
	}
	return "", false
}

// ForgotPasswordForm checks that the account exists, then has a new
// password mailed to it.
func ForgotPasswordForm(b Backend) Spec {
	return Spec{
		Name:   "forgot-password",
		Fields: []string{"email"},
		Validate: func(f Fields) error {
			return required(f, common.MsgEmailRequired, "email")
		},
		Confirm: common.MsgResetConfirm,
		Submit: func(ctx context.Context, f Fields) (Success, error) {
			email := f.Trimmed("email")
			if err := b.CheckEmailExists(ctx, email); err != nil {
				return Success{}, rejectWith(err, common.MsgEmailNotFound)
			}
			if _, err := b.RequestPasswordResetByEmail(ctx, email); err != nil {
				return Success{}, rejectWith(err, common.MsgResetFailed)
			}
			return Success{Message: common.MsgResetDone, NavigateTo: "/"}, nil
		},
		FailureMessage:   common.MsgResetFailed,
		FixedFailure:     true,
		TransportMessage: common.MsgResetError,
	}
}

// ProfilePasswordResetForm mails a new password to the signed-in user.
func ProfilePasswordResetForm(b Backend) Spec {
	return Spec{
		Name:    "profile-password-reset",
		Confirm: common.MsgResetConfirm,
		Submit: func(ctx context.Context, _ Fields) (Success, error) {
			if _, err := b.RequestPasswordReset(ctx); err != nil {
				return Success{}, err
			}
			return Success{Message: common.MsgResetDone}, nil
		},
		FailureMessage:   common.MsgResetFailed,
		FixedFailure:     true,
		TransportMessage: common.MsgResetMailError,
	}
}

// ResetPasswordForm submits the token from the mailed link with a new
// password, then sends the user to the login page.
func ResetPasswordForm(b Backend) Spec {
	return Spec{
		Name:   "reset-password",
		Fields: []string{"token", "newPassword", "confirmNewPassword"},
		Validate: func(f Fields) error {
			if err := required(f, common.MsgPasswordMissing, "newPassword"); err != nil {
				return err
			}
			if f.Get("newPassword") != f.Get("confirmNewPassword") {
				return &ValidationError{Field: "confirmNewPassword", Message: common.MsgPasswordMismatch}
			}
			return nil
		},
		Submit: func(ctx context.Context, f Fields) (Success, error) {
			msg, err := b.ResetPassword(ctx, models.ResetPasswordRequest{
				Token:       f.Get("token"),
				NewPassword: f.Get("newPassword"),
			})
			if err != nil {
				return Success{}, err
			}
			return Success{Message: orDefault(msg, common.MsgResetDone), NavigateTo: "/login"}, nil
		},
		FailureMessage:   common.MsgPasswordChangeErr,
		TransportMessage: common.MsgPasswordChangeErr,
	}
}

// SignupForm checks the password confirmation, checks the email is free,
// then registers. Failures show inline under the email field.
func SignupForm(b Backend) Spec {
	return Spec{
		Name:         "signup",
		Fields:       []string{"email", "password", "confirmPassword", "nickname", "role"},
		InlineFields: []string{FieldPasswordError, FieldDuplicatedEmailError},
		Validate: func(f Fields) error {
			if f.Get("password") != f.Get("confirmPassword") {
				return &ValidationError{Field: FieldPasswordError, Message: common.MsgPasswordMismatch, Inline: true}
			}
			if err := required(f, common.MsgEmailRequired, "email"); err != nil {
				return err
			}
			return required(f, common.MsgPasswordMissing, "password")
		},
		Submit: func(ctx context.Context, f Fields) (Success, error) {
			email := f.Trimmed("email")
			if err := b.CheckEmailDuplication(ctx, email); err != nil {
				return Success{}, duplicationError(err)
			}

			role := f.Trimmed("role")
			if role == "" {
				role = models.RoleBuyer
			}
			_, err := b.Register(ctx, models.SignupRequest{
				Email:           email,
				Password:        f.Get("password"),
				ConfirmPassword: f.Get("confirmPassword"),
				Nickname:        f.Trimmed("nickname"),
				Role:            role,
			})
			if err != nil {
				return Success{}, err
			}
			return Success{Message: common.MsgSignupDone, NavigateTo: "/login"}, nil
		},
		FailureMessage: common.MsgSignupFailed,
		FailureField:   FieldDuplicatedEmailError,
	}
}

// duplicationError keeps the server's message for a taken email and
// reports anything else as a server error.
func duplicationError(err error) error {
	if passThrough(err) {
		return err
	}
	if ae := asAPIError(err); ae != nil && ae.Status == http.StatusConflict {
		return err
	}
	return &FailureError{Message: common.MsgServerError, Err: err}
}
