package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config describes an S3 or S3-compatible (MinIO, R2) bucket.
type S3Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the AWS endpoint; path-style addressing is used when set.
	Endpoint string
	// PublicURL is the base objects are served from, e.g. a CDN in front of the bucket.
	PublicURL string
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Uploader struct {
	client putObjectAPI
	cfg    S3Config
}

func NewS3Uploader(ctx context.Context, cfg S3Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, ErrNotConfigured
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	log.Printf("[Storage] S3 uploader ready (bucket=%s region=%s)", cfg.Bucket, cfg.Region)
	return &S3Uploader{client: client, cfg: cfg}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return u.ObjectURL(key), nil
}

// ObjectURL returns the public URL of key.
func (u *S3Uploader) ObjectURL(key string) string {
	switch {
	case u.cfg.PublicURL != "":
		return strings.TrimRight(u.cfg.PublicURL, "/") + "/" + key
	case u.cfg.Endpoint != "":
		return strings.TrimRight(u.cfg.Endpoint, "/") + "/" + u.cfg.Bucket + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
	}
}

// Disabled is used when no bucket is configured; every upload fails with ErrNotConfigured.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, string, io.Reader, int64) (string, error) {
	return "", ErrNotConfigured
}
