package upload

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/netx"
)

// Transferer moves a file's bytes to a pre-signed URL.
type Transferer interface {
	Put(ctx context.Context, url string, f models.UploadFile) error
}

// NetTransferer PUTs directly to storage. The session cookie jar is not
// involved; the URL carries its own credentials.
type NetTransferer struct {
	Client *http.Client
}

func (t NetTransferer) Put(ctx context.Context, url string, f models.UploadFile) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	return netx.UploadToPresignedURL(ctx, t.Client, url, rc, f.Size, f.ContentType)
}
