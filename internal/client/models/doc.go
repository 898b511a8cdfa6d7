// Package models defines the request and response shapes exchanged with the
// storefront backend, plus the client-only types built around them.
package models
