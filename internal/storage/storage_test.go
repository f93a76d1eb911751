package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectPath(t *testing.T) {
	id := uuid.MustParse("7d3f0c2e-1111-4222-8333-944445555666")
	at := time.UnixMilli(1707552000123)

	assert.Equal(t, "7d3f0c2e-1111-4222-8333-944445555666/1707552000123.pdf", ObjectPath(id, "Quote.PDF", at))
	assert.Equal(t, "7d3f0c2e-1111-4222-8333-944445555666/1707552000123", ObjectPath(id, "README", at))
}

func TestNewProviders(t *testing.T) {
	ctx := context.Background()

	st, err := New(ctx, Config{Provider: "none"})
	require.NoError(t, err)
	_, err = st.Upload(ctx, "k", "text/plain", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = New(ctx, Config{Provider: "ftp"})
	assert.Error(t, err)

	_, err = New(ctx, Config{Provider: "s3"})
	assert.Error(t, err, "bucket is required")

	st, err = New(ctx, Config{
		Provider:    "s3",
		Bucket:      "ledger",
		S3Region:    "us-east-1",
		S3Endpoint:  "http://127.0.0.1:9000/",
		S3AccessKey: "minio",
		S3SecretKey: "minio123",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/ledger/u/1.pdf", st.PublicURL("u/1.pdf"))
}

func TestS3Base(t *testing.T) {
	assert.Equal(t, "https://docs.s3.eu-west-1.amazonaws.com", s3Base(Config{Bucket: "docs", S3Region: "eu-west-1"}))
	assert.Equal(t, "https://cdn.example", s3Base(Config{Bucket: "docs", PublicBaseURL: "https://cdn.example"}))
	assert.Equal(t, "https://cdn.example/a/b.txt", joinURL("https://cdn.example/", "/a/b.txt"))
}
