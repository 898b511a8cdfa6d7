package session

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// claims mirrors what the backend puts into its access token.
type claims struct {
	Email    string   `json:"email"`
	Nickname string   `json:"nickname"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// Inspect decodes an access token without verifying its signature. The
// client holds no key; the result is for display only and the backend stays
// the authority on whether the token is valid.
func Inspect(token string) (models.SessionInfo, error) {
	var c claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return models.SessionInfo{}, fmt.Errorf("decode session token: %w", err)
	}

	info := models.SessionInfo{
		Subject:  c.Subject,
		Email:    c.Email,
		Nickname: c.Nickname,
		Roles:    c.Roles,
	}
	if c.ExpiresAt != nil {
		info.ExpiresAt = c.ExpiresAt.Time
	}
	return info, nil
}

// Current reads the access token cookie from jar and inspects it.
// Without the cookie it returns common.ErrUnauthorized.
func Current(jar http.CookieJar, u *url.URL) (models.SessionInfo, error) {
	if jar == nil {
		return models.SessionInfo{}, common.ErrUnauthorized
	}
	for _, c := range jar.Cookies(u) {
		if c.Name == common.AccessTokenCookieName && c.Value != "" {
			return Inspect(c.Value)
		}
	}
	return models.SessionInfo{}, common.ErrUnauthorized
}
