package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Uploader pins content images to an S3 bucket fronted by a CDN.
type S3Uploader struct {
	client  *s3.Client
	bucket  string
	region  string
	baseURL string
}

// NewS3Uploader creates an uploader for the given region and bucket.
// baseURL is the public prefix (CDN or bucket endpoint) for uploaded keys.
func NewS3Uploader(region, bucket, baseURL string) (*S3Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Uploader{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		region:  region,
		baseURL: baseURL,
	}, nil
}

// UploadImage validates and uploads image bytes, returning the public URL.
func (u *S3Uploader) UploadImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image payload")
	}
	if len(data) > MaxImageBytes {
		return "", fmt.Errorf("image is %d bytes, limit is %d", len(data), MaxImageBytes)
	}
	extension, ok := AllowedMimeTypes[mimeType]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", mimeType)
	}

	// Key layout: images/{year}/{month}/{uuid}{ext}
	now := time.Now()
	key := fmt.Sprintf("images/%d/%02d/%s%s", now.Year(), now.Month(), uuid.New().String(), extension)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),

		// Content images are immutable once pinned
		CacheControl: aws.String("max-age=86400"),

		Metadata: map[string]string{
			"upload-timestamp": now.Format(time.RFC3339),
			"file-type":        "content-image",
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", strings.TrimSuffix(u.baseURL, "/"), key), nil
}

// CheckBucketAccess verifies the bucket is reachable at startup.
func (u *S3Uploader) CheckBucketAccess(ctx context.Context) error {
	_, err := u.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(u.bucket),
	})
	if err != nil {
		return fmt.Errorf("cannot access bucket %s: %w", u.bucket, err)
	}
	return nil
}

var _ Uploader = (*S3Uploader)(nil)
