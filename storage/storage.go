package storage

import (
	"context"
	"fmt"

	"pmis/config"
)

// ObjectStore keeps generated documents and hands back a URL for them.
type ObjectStore interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

// New picks the store named by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (ObjectStore, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStore(cfg.Dir, cfg.PublicPrefix, cfg.ExternalURL)
	case "r2":
		return NewR2Store(ctx, R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			Bucket:          cfg.R2Bucket,
			PublicURL:       cfg.R2PublicURL,
		})
	case "minio", "s3":
		return NewMinioStore(ctx, MinioConfig{
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Bucket:          cfg.S3Bucket,
			UseSSL:          cfg.S3UseSSL,
			Region:          cfg.S3Region,
			Prefix:          cfg.S3Prefix,
		})
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
