package models

import "time"

// Credentials is the login form payload. It is never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailRequest is the body of the email existence, duplication and reset
// request endpoints.
type EmailRequest struct {
	Email string `json:"email"`
}

// Roles a new account can be registered with.
const (
	RoleBuyer  = "BUYER"
	RoleSeller = "SELLER"
)

// SignupRequest is sent as JSON to the register endpoint.
type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Nickname        string `json:"nickname"`
	Role            string `json:"role"`
}

// ResetPasswordRequest is sent form-encoded with the token from the reset
// mail link.
type ResetPasswordRequest struct {
	Token       string
	NewPassword string
}

// MessageResponse is the backend's common {message} reply.
type MessageResponse struct {
	Message string `json:"message"`
}

// SessionInfo is what the session token says about the signed-in user.
// It is decoded without signature verification and is informational only.
type SessionInfo struct {
	Subject   string
	Email     string
	Nickname  string
	Roles     []string
	ExpiresAt time.Time
}

// Expired reports whether the token expiry lies before now. A zero expiry
// never expires.
func (s SessionInfo) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
