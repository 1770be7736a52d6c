package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	Region          string
	Prefix          string
}

// MinioStore keeps documents in any S3 compatible bucket and links to them
// with presigned URLs.
type MinioStore struct {
	raw    *minio.Client
	bucket string
	prefix string
	ttl    time.Duration
}

func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}
	return &MinioStore{
		raw:    client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		ttl:    7 * 24 * time.Hour,
	}, nil
}

func (c *MinioStore) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := c.prefix + path.Base(name)

	_, err := c.raw.PutObject(ctx, c.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %q failed: %w", key, err)
	}

	u, err := c.raw.PresignedGetObject(ctx, c.bucket, key, c.ttl, nil)
	if err != nil {
		return "", fmt.Errorf("presign get object %q failed: %w", key, err)
	}
	return u.String(), nil
}

func (c *MinioStore) Delete(ctx context.Context, fileURL string) error {
	u, err := url.Parse(fileURL)
	if err != nil {
		return fmt.Errorf("invalid file URL: %w", err)
	}
	// presigned URLs are path style: /<bucket>/<key>
	key := strings.TrimPrefix(strings.TrimPrefix(u.Path, "/"), c.bucket+"/")
	if err := c.raw.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %q failed: %w", key, err)
	}
	return nil
}
