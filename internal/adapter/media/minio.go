package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/config"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/domain"
)

// MinioBackend stores audio objects in an S3-compatible bucket.
type MinioBackend struct {
	client  *minio.Client
	bucket  string
	baseURL string
	useSSL  bool
}

// NewMinioBackend connects to the object store and verifies the bucket
// exists, creating it if necessary.
func NewMinioBackend(ctx context.Context, cfg config.StorageConfig) (*MinioBackend, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &MinioBackend{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		useSSL:  cfg.UseSSL,
	}, nil
}

func (b *MinioBackend) Upload(ctx context.Context, key string, payload []byte, contentType string) (string, error) {
	_, err := b.client.PutObject(ctx, b.bucket, key,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return b.PublicURL(key), nil
}

func (b *MinioBackend) Copy(ctx context.Context, srcKey, dstKey string) (string, error) {
	_, err := b.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: b.bucket, Object: dstKey},
		minio.CopySrcOptions{Bucket: b.bucket, Object: srcKey})
	if err != nil {
		return "", fmt.Errorf("copy %s to %s: %w", srcKey, dstKey, err)
	}
	return b.PublicURL(dstKey), nil
}

func (b *MinioBackend) Delete(ctx context.Context, key string) error {
	err := b.client.RemoveObject(ctx, b.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (b *MinioBackend) Stat(ctx context.Context, key string) (int64, error) {
	info, err := b.client.StatObject(ctx, b.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return 0, fmt.Errorf("stat %s: %w", key, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("stat %s: %w", key, err)
	}
	return info.Size, nil
}

func (b *MinioBackend) SignedPutURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := b.client.PresignedPutObject(ctx, b.bucket, key, expiry)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return u.String(), nil
}

// PublicURL prefers the configured CDN/base URL and falls back to direct
// endpoint addressing (which may require a public-read bucket policy).
func (b *MinioBackend) PublicURL(key string) string {
	if b.baseURL != "" {
		return b.baseURL + "/" + key
	}
	scheme := "http"
	if b.useSSL {
		scheme = "https"
	}
	return scheme + "://" + b.client.EndpointURL().Host + "/" + b.bucket + "/" + key
}
