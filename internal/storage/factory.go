package storage

import (
	"context"
	"fmt"
)

type Config struct {
	Driver string

	LocalDir       string
	LocalURLPrefix string

	S3Region        string
	S3Bucket        string
	S3Prefix        string
	S3PublicBaseURL string
}

func New(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		baseDir := cfg.LocalDir
		if baseDir == "" {
			baseDir = "./storage/uploads"
		}
		urlPrefix := cfg.LocalURLPrefix
		if urlPrefix == "" {
			urlPrefix = "/uploads"
		}
		return NewLocal(baseDir, urlPrefix), nil

	case "s3":
		if cfg.S3Region == "" || cfg.S3Bucket == "" || cfg.S3PublicBaseURL == "" {
			return nil, fmt.Errorf("S3 config missing: S3_REGION, S3_BUCKET, S3_PUBLIC_BASE_URL required")
		}
		prefix := cfg.S3Prefix
		if prefix == "" {
			prefix = "products"
		}
		return NewS3(ctx, S3Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			Prefix:        prefix,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})

	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER: %s", cfg.Driver)
	}
}
