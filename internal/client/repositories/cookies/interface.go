// Package cookies persists the session cookies between CLI runs.
package cookies

import (
	"context"
	"time"
)

// Cookie is one stored session cookie. SavedAt is when the jar last held it.
type Cookie struct {
	Name    string
	Value   string
	SavedAt time.Time
}

type Repository interface {
	// ReplaceAll swaps the stored set for cs atomically.
	ReplaceAll(ctx context.Context, cs []Cookie) error
	List(ctx context.Context) ([]Cookie, error)
	Clear(ctx context.Context) error
}
