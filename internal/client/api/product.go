package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

var errEmptyPresignedURL = errors.New("backend returned an empty pre-signed url")

// GetPreSignedURL asks the origin for a write URL with a JSON body.
func (c *Client) GetPreSignedURL(ctx context.Context, fileName string) (string, error) {
	data, err := c.send(ctx, request{
		method: http.MethodPost,
		path:   "/getPreSignedUrl",
		json:   models.PresignRequest{FileName: fileName},
	})
	if err != nil {
		return "", err
	}
	return presignedURLFromBody(data)
}

// GetPreSignedURLByQuery asks the origin for a write URL with the file name
// in the query string. The reply may be {url} JSON or the bare URL.
func (c *Client) GetPreSignedURLByQuery(ctx context.Context, fileName string) (string, error) {
	data, err := c.send(ctx, request{
		method: http.MethodGet,
		path:   "/getPreSignedUrl",
		query:  url.Values{"filename": {fileName}},
	})
	if err != nil {
		return "", err
	}
	return presignedURLFromBody(data)
}

func presignedURLFromBody(data []byte) (string, error) {
	var resp models.PresignResponse
	if err := json.Unmarshal(data, &resp); err == nil && resp.URL != "" {
		return resp.URL, nil
	}
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" {
		return "", errEmptyPresignedURL
	}
	if _, err := url.ParseRequestURI(s); err != nil {
		return "", fmt.Errorf("backend returned an invalid pre-signed url: %w", err)
	}
	return s, nil
}

// RegisterProduct submits a product with its already uploaded images.
func (c *Client) RegisterProduct(ctx context.Context, p models.Product) (string, error) {
	return c.sendMessage(ctx, request{
		method:  http.MethodPost,
		path:    "/registerProduct",
		json:    p,
		headers: map[string]string{"Accept": "application/json"},
	})
}

// AddToCart puts a product into the signed-in user's cart.
func (c *Client) AddToCart(ctx context.Context, item models.CartItem) (string, error) {
	return c.sendMessage(ctx, request{method: http.MethodPost, path: "/cart/add", json: item})
}
