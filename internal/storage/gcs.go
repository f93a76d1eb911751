package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCS struct {
	client *gcs.Client
	bucket string
	base   string
}

// NewGCS: явный JSON ключа, иначе ADC (GOOGLE_APPLICATION_CREDENTIALS / service account).
func NewGCS(ctx context.Context, c Config) (*GCS, error) {
	if c.Bucket == "" {
		return nil, errors.New("gcs: bucket is required")
	}
	var opts []option.ClientOption
	if js := strings.TrimSpace(c.GCSCredentialsJSON); js != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(js)))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	base := c.PublicBaseURL
	if base == "" {
		base = "https://storage.googleapis.com/" + c.Bucket
	}
	return &GCS{client: client, bucket: c.Bucket, base: base}, nil
}

func (g *GCS) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs upload %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs upload %s: %w", key, err)
	}
	return g.PublicURL(key), nil
}

func (g *GCS) PublicURL(key string) string { return joinURL(g.base, key) }

func (g *GCS) Close() error { return g.client.Close() }
