package storage

import (
	"context"
	"fmt"

	"p9e.in/lms/config"
)

// Upload folders created for the local backend.
const (
	FolderLogos     = "logos"
	FolderDocuments = "documents"
)

// NewBackend picks the backend named by STORAGE_TYPE.
func NewBackend(ctx context.Context, cfg config.Upload) (Backend, error) {
	switch cfg.StorageType {
	case "", "local":
		local, err := NewLocal(cfg.Dir, cfg.PublicPrefix)
		if err != nil {
			return nil, fmt.Errorf("local storage: %w", err)
		}
		if err := local.ensureFolders(FolderLogos, FolderDocuments); err != nil {
			return nil, fmt.Errorf("local storage: %w", err)
		}
		return local, nil
	case "s3":
		return NewS3(ctx, S3Config{
			Bucket:   cfg.S3.Bucket,
			Region:   cfg.S3.Region,
			Endpoint: cfg.S3.Endpoint,
			BaseURL:  cfg.S3.BaseURL,
		})
	case "gcs":
		return NewGCS(ctx, cfg.GCS.Bucket, cfg.GCS.BaseURL)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.StorageType)
	}
}

// ConfigFrom maps upload settings onto resolver limits.
func ConfigFrom(cfg config.Upload) Config {
	return Config{
		MaxImageSize:    cfg.MaxImageSize,
		MaxDocumentSize: cfg.MaxFileSize,
		ImageTypes:      cfg.ImageTypes,
		DocumentTypes:   cfg.DocumentTypes,
	}
}
