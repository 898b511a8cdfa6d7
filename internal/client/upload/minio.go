package upload

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	sc "github.com/dmitrijs2005/storefront/internal/client/config"
)

// MinioPresigner signs PUT URLs locally for MinIO or any S3-compatible
// endpoint.
type MinioPresigner struct {
	client *minio.Client
	bucket string
	prefix string
	expiry time.Duration
	now    func() time.Time
}

// NewMinioPresigner builds the client only. Region is always set so signing
// never needs a bucket-location round trip.
func NewMinioPresigner(st sc.Storage) (*MinioPresigner, error) {
	region := st.Region
	if region == "" {
		region = "us-east-1"
	}
	host, secure, err := minioEndpoint(st.Endpoint, st.UseSSL)
	if err != nil {
		return nil, err
	}
	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(st.AccessKey, st.SecretKey, ""),
		Secure: secure,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}
	return &MinioPresigner{
		client: client,
		bucket: st.Bucket,
		prefix: st.KeyPrefix,
		expiry: st.Expiry,
		now:    time.Now,
	}, nil
}

func (p *MinioPresigner) PresignPut(ctx context.Context, fileName string) (Presigned, error) {
	key := ObjectKey(p.prefix, fileName, p.now())

	u, err := p.client.PresignedPutObject(ctx, p.bucket, key, p.expiry)
	if err != nil {
		return Presigned{}, fmt.Errorf("presign put %s: %w", key, err)
	}
	return Presigned{URL: u.String(), Key: key}, nil
}

// minioEndpoint turns an endpoint that may carry a scheme into the bare
// host minio.New wants. A scheme decides TLS; without one useSSL does.
func minioEndpoint(endpoint string, useSSL bool) (string, bool, error) {
	if !strings.Contains(endpoint, "://") {
		return strings.TrimRight(endpoint, "/"), useSSL, nil
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return "", false, fmt.Errorf("invalid storage endpoint %q", endpoint)
	}
	switch u.Scheme {
	case "http":
		return u.Host, false, nil
	case "https":
		return u.Host, true, nil
	}
	return "", false, fmt.Errorf("storage endpoint %q: unsupported scheme %q", endpoint, u.Scheme)
}
