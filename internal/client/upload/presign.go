package upload

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Presigned is a write URL and, when the signer chose it, the object key.
type Presigned struct {
	URL string
	// Key is empty when only the URL is known; the key is then derived
	// from the URL path.
	Key string
}

// Presigner hands out a time-limited URL that accepts a PUT of one file.
type Presigner interface {
	PresignPut(ctx context.Context, fileName string) (Presigned, error)
}

// originClient is the part of api.Client the origin presigner needs.
type originClient interface {
	GetPreSignedURL(ctx context.Context, fileName string) (string, error)
	GetPreSignedURLByQuery(ctx context.Context, fileName string) (string, error)
}

// OriginPresigner asks the backend for write URLs, so storage credentials
// never leave the server.
type OriginPresigner struct {
	client originClient
	method string
}

// NewOriginPresigner uses POST with a JSON body unless method is "GET",
// which sends the file name as a query parameter instead.
func NewOriginPresigner(c originClient, method string) *OriginPresigner {
	return &OriginPresigner{client: c, method: strings.ToUpper(method)}
}

func (p *OriginPresigner) PresignPut(ctx context.Context, fileName string) (Presigned, error) {
	var (
		url string
		err error
	)
	if p.method == "GET" {
		url, err = p.client.GetPreSignedURLByQuery(ctx, fileName)
	} else {
		url, err = p.client.GetPreSignedURL(ctx, fileName)
	}
	return Presigned{URL: url}, err
}

// newObjectID is a seam for tests.
var newObjectID = func() string { return uuid.NewString() }

// ObjectKey builds "prefix/yyyy/mm/dd/<uuid>-<name>" for locally presigned
// uploads. Path separators in name are dropped.
func ObjectKey(prefix, fileName string, now time.Time) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" {
		name = "file"
	}
	date := now.UTC().Format("2006/01/02")
	obj := fmt.Sprintf("%s/%s-%s", date, newObjectID(), name)

	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return obj
	}
	return prefix + "/" + obj
}
