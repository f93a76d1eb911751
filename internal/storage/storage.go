// Package storage: загрузка вложений ledger-документов в объектное
// хранилище (GCS или S3/MinIO) и построение их публичных URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrDisabled = errors.New("document storage is not configured")

type Storage interface {
	// Upload кладёт объект по ключу и возвращает его публичный URL.
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	PublicURL(key string) string
}

type Config struct {
	Provider      string // none | gcs | s3
	Bucket        string
	PublicBaseURL string

	GCSCredentialsJSON string

	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

func New(ctx context.Context, c Config) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(c.Provider)) {
	case "", "none":
		return Disabled{}, nil
	case "gcs":
		return NewGCS(ctx, c)
	case "s3":
		return NewS3(ctx, c)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", c.Provider)
	}
}

// ObjectPath: <user_id>/<unix_millis>.<ext>. Без расширения — только millis.
func ObjectPath(userID uuid.UUID, fileName string, now time.Time) string {
	name := fmt.Sprintf("%s/%d", userID, now.UnixMilli())
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(fileName)), ".")
	if ext == "" {
		return name
	}
	return name + "." + ext
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

// Disabled: провайдер none. Документы без файла допустимы, загрузка нет.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, string, io.Reader) (string, error) {
	return "", ErrDisabled
}

func (Disabled) PublicURL(string) string { return "" }
