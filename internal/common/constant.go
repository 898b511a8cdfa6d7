// Package common contains shared constants, user-facing messages and
// sentinel errors used across storefront components.
package common

// AccessTokenCookieName is the cookie the backend sets on a successful
// login; it carries the signed session token.
const AccessTokenCookieName = "access_token"

// RefreshTokenCookieName carries the refresh token next to the access token.
const RefreshTokenCookieName = "refresh_token"

// LoginRequiredParam is the query value the backend appends when it
// redirects an anonymous user to the login page (/login?error=needLogin).
const LoginRequiredParam = "needLogin"
