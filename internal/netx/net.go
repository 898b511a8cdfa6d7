// Package netx holds the storage-side half of the upload sequence: the
// direct PUT to a pre-signed URL and the derivation of the object key from
// that URL.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/common"
)

// UploadToPresignedURL PUTs the raw bytes from body to a pre-signed storage
// URL. A negative size means unknown and is sent chunked, which S3 refuses
// for presigned PUTs, so callers pass the real size whenever they have it.
// Any non-2xx response is reported as common.ErrUploadFailed with the
// status and response body attached.
func UploadToPresignedURL(ctx context.Context, client *http.Client, rawURL string, body io.Reader, size int64, contentType string) error {
	if size == 0 {
		// net/http treats a zero ContentLength with a body as unknown.
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, rawURL, body)
	if err != nil {
		return err
	}
	if size >= 0 {
		req.ContentLength = size
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s; body: %s", common.ErrUploadFailed, resp.Status, string(b))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// StripQuery returns rawURL without its query string and fragment. It is
// the public location of the stored object.
func StripQuery(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
			return rawURL[:i]
		}
		return rawURL
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// ObjectKeyFromURL derives a stable object key from a pre-signed URL: the
// unescaped path with the leading slash removed, query parameters dropped.
func ObjectKeyFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse storage url: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", fmt.Errorf("storage url %q has no object path", StripQuery(rawURL))
	}
	return key, nil
}
