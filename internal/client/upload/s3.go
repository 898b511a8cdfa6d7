package upload

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/dmitrijs2005/storefront/internal/client/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// S3Presigner signs PUT URLs locally with AWS SDK v2. It serves operators
// who hold storage credentials themselves, such as sellers uploading from a
// workstation or a dev setup without the origin endpoint.
type S3Presigner struct {
	pc     *s3.PresignClient
	bucket string
	prefix string
	expiry time.Duration
	now    func() time.Time
}

func NewS3Presigner(ctx context.Context, st sc.Storage) (*S3Presigner, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(st.Region)}
	if st.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(st.AccessKey, st.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if st.Endpoint != "" {
			o.BaseEndpoint = aws.String(st.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Presigner{
		pc:     newS3PresignClient(client),
		bucket: st.Bucket,
		prefix: st.KeyPrefix,
		expiry: st.Expiry,
		now:    time.Now,
	}, nil
}

func (p *S3Presigner) PresignPut(ctx context.Context, fileName string) (Presigned, error) {
	key := ObjectKey(p.prefix, fileName, p.now())

	req, err := presignPutObject(p.pc, ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return Presigned{}, fmt.Errorf("presign put %s: %w", key, err)
	}
	return Presigned{URL: req.URL, Key: key}, nil
}
