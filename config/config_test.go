package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "LMS Backend", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 10, cfg.Database.PoolSize)
	assert.Equal(t, 20, cfg.Database.MaxOverflow)
	assert.Equal(t, int64(2097152), cfg.Upload.MaxFileSize)
	assert.Equal(t, int64(1048576), cfg.Upload.MaxImageSize)
	assert.Equal(t, []string{"image/jpeg", "image/png", "image/jpg"}, cfg.Upload.ImageTypes)
	assert.Equal(t, []string{"application/pdf"}, cfg.Upload.DocumentTypes)
	assert.Equal(t, "local", cfg.Upload.StorageType)
	assert.Equal(t, "ap-south-1", cfg.Upload.S3.Region)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":            "9090",
		"CORS_ORIGINS":    "https://lms.example",
		"STORAGE_TYPE":    "s3",
		"AWS_BUCKET_NAME": "lms-uploads",
		"DB_POOL_SIZE":    "4",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://lms.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "lms-uploads", cfg.Upload.S3.Bucket)
	assert.Equal(t, 4, cfg.Database.PoolSize)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"s3 without bucket", map[string]string{"STORAGE_TYPE": "s3"}},
		{"gcs without bucket", map[string]string{"STORAGE_TYPE": "gcs"}},
		{"unknown storage", map[string]string{"STORAGE_TYPE": "ftp"}},
		{"zero pool", map[string]string{"DB_POOL_SIZE": "0"}},
		{"bad port", map[string]string{"PORT": "eighty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(context.Background(), envconfig.MapLookuper(tt.env))
			assert.Error(t, err)
		})
	}
}
