package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// ListAddresses returns the signed-in user's addresses. A JSON null yields
// a nil slice.
func (c *Client) ListAddresses(ctx context.Context) ([]models.Address, error) {
	var out []models.Address
	if err := c.sendJSON(ctx, request{method: http.MethodGet, path: "/api/address/list"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAddress(ctx context.Context, in models.AddressInput) (string, error) {
	return c.sendMessage(ctx, request{method: http.MethodPost, path: "/api/address/register", json: in})
}

func (c *Client) UpdateAddress(ctx context.Context, in models.AddressUpdate) (string, error) {
	return c.sendMessage(ctx, request{method: http.MethodPut, path: "/api/address/update", json: in})
}

func (c *Client) DeleteAddress(ctx context.Context, id int64) (string, error) {
	return c.sendMessage(ctx, request{method: http.MethodDelete, path: "/api/address/delete", json: models.AddressID{ID: id}})
}
