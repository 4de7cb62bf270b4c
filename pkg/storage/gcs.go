package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gcstorage "cloud.google.com/go/storage"
)

// GCS stores uploads in a Cloud Storage bucket using application default
// credentials.
type GCS struct {
	client  *gcstorage.Client
	bucket  string
	baseURL string
}

func NewGCS(ctx context.Context, bucket, baseURL string) (*GCS, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs bucket required")
	}
	client, err := gcstorage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	if baseURL == "" {
		baseURL = "https://storage.googleapis.com"
	}
	return &GCS{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/") + "/" + bucket,
	}, nil
}

func (g *GCS) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return g.baseURL + "/" + key, nil
}

func (g *GCS) Delete(ctx context.Context, key string) (bool, error) {
	err := g.client.Bucket(g.bucket).Object(key).Delete(ctx)
	if errors.Is(err, gcstorage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (g *GCS) KeyFromReference(ref string) (string, bool) {
	if !strings.HasPrefix(ref, g.baseURL+"/") {
		return "", false
	}
	key := strings.TrimPrefix(ref, g.baseURL+"/")
	return key, key != ""
}

func (g *GCS) Close() error { return g.client.Close() }
