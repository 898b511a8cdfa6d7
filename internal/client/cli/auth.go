package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/forms"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// getPassword is an indirection used to facilitate testing.
var getPassword = GetPassword

// submit copies values into the controller's store and runs it. The
// controller shows the outcome itself, so a failed outcome comes back as
// errReported and a declined confirmation as common.ErrCanceled.
func (a *App) submit(ctx context.Context, c *forms.Controller, values map[string]string) (forms.Outcome, error) {
	store := c.Store()
	for k, v := range values {
		store.Set(k, v)
	}
	out, err := c.Submit(ctx)
	switch {
	case errors.Is(err, common.ErrSubmitInFlight):
		return out, err
	case out.State == forms.Succeeded:
		return out, nil
	case out.State == forms.Canceled:
		return out, common.ErrCanceled
	}
	return out, errReported
}

// reportError shows an error that did not go through a form controller
// and returns errReported. A bounce to the login page is shown the way the
// login page shows it.
func (a *App) reportError(ctx context.Context, err error) error {
	if api.IsLoginRequired(err) || errors.Is(err, common.ErrUnauthorized) {
		query := "error=" + common.LoginRequiredParam
		a.ui.Navigate("/login?" + query)
		if msg, ok := forms.LoginNotice(query); ok {
			a.ui.Notify(msg)
		}
		return errReported
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		a.ui.Notify(apiErr.Message)
		return errReported
	}
	a.log.Warn(ctx, "command failed", "err", err)
	a.ui.Notify(common.MsgGenericError)
	return errReported
}

func argOrPrompt(a *App, args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return GetSimpleText(a.reader, prompt, a.out)
}

// Login prompts for credentials, signs in and saves the session cookies
// so the next run starts signed in.
func (a *App) Login(ctx context.Context, args []string) error {
	email, err := argOrPrompt(a, args, "Enter email")
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}

	_, err = a.submit(ctx, a.login, map[string]string{"email": email, "password": password})
	a.login.Store().Set("password", "")
	if err != nil {
		return err
	}

	if err := a.session.Save(ctx, a.client.Jar(), a.client.BaseURL()); err != nil {
		a.log.Warn(ctx, "session not saved", "err", err)
	}
	return nil
}

// Logout ends the server session and forgets the local one. The local
// session is cleared even when the server cannot be reached.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.client.Logout(ctx); err != nil {
		a.log.Warn(ctx, "server logout failed", "err", err)
	}
	session.Expire(a.client.Jar(), a.client.BaseURL())
	if err := a.session.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.ui.Notify(common.MsgLogoutDone)
	a.ui.Navigate("/")
	return nil
}

// WhoAmI prints the account the saved session belongs to.
func (a *App) WhoAmI(_ context.Context, _ []string) error {
	info, err := session.Current(a.client.Jar(), a.client.BaseURL())
	if errors.Is(err, common.ErrUnauthorized) {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Email:    %s\n", info.Email)
	if info.Nickname != "" {
		fmt.Fprintf(a.out, "Nickname: %s\n", info.Nickname)
	}
	if len(info.Roles) > 0 {
		fmt.Fprintf(a.out, "Roles:    %v\n", info.Roles)
	}
	if !info.ExpiresAt.IsZero() {
		state := ""
		if info.Expired(timeNow()) {
			state = " (expired)"
		}
		fmt.Fprintf(a.out, "Expires:  %s%s\n", info.ExpiresAt.Local().Format("2006-01-02 15:04"), state)
	}
	return nil
}

// Signup prompts for the account details and registers.
func (a *App) Signup(ctx context.Context, _ []string) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	nickname, err := GetSimpleText(a.reader, "Enter nickname", a.out)
	if err != nil {
		return err
	}
	role, err := GetWithDefault(a.reader, "Role (BUYER or SELLER)", models.RoleBuyer, a.out)
	if err != nil {
		return err
	}

	_, err = a.submit(ctx, a.signup, map[string]string{
		"email":           email,
		"password":        password,
		"confirmPassword": confirm,
		"nickname":        nickname,
		"role":            role,
	})
	return err
}

// ForgotPassword has a new password mailed to an account.
func (a *App) ForgotPassword(ctx context.Context, args []string) error {
	email, err := argOrPrompt(a, args, "Enter email")
	if err != nil {
		return err
	}
	_, err = a.submit(ctx, a.forgot, map[string]string{"email": email})
	return err
}

// ResetPassword sets a new password with the token from a mailed link.
func (a *App) ResetPassword(ctx context.Context, args []string) error {
	token, err := argOrPrompt(a, args, "Enter reset token")
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "New password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword(a.reader, "Confirm new password", a.out)
	if err != nil {
		return err
	}
	_, err = a.submit(ctx, a.resetPassword, map[string]string{
		"token":              token,
		"newPassword":        password,
		"confirmNewPassword": confirm,
	})
	return err
}

// ProfileReset mails a new password to the signed-in user.
func (a *App) ProfileReset(ctx context.Context, _ []string) error {
	_, err := a.submit(ctx, a.profileReset, nil)
	return err
}
