package server

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"worktrack/config"
	"worktrack/internal/health"
	"worktrack/internal/session"
	"worktrack/internal/storage"
)

// sessionStore: реестр сессий по session.store; для redis отдаёт и проверку готовности.
func sessionStore(ctx context.Context, cfg *config.Config) (session.Store, []health.Check, error) {
	if cfg.Session.Store != "redis" {
		return session.NewMemoryStore(), nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Session.RedisAddr,
		Password: cfg.Session.RedisPassword,
		DB:       cfg.Session.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, fmt.Errorf("redis %s: %w", cfg.Session.RedisAddr, err)
	}
	rs := session.NewRedisStore(rdb)
	return rs, []health.Check{{Name: "redis", Ping: rs.Ping}}, nil
}

func objectStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	s := cfg.Storage
	return storage.New(ctx, storage.Config{
		Provider:           s.Provider,
		Bucket:             s.Bucket,
		PublicBaseURL:      s.PublicBaseURL,
		GCSCredentialsJSON: s.GCSCredentialsJSON,
		S3Region:           s.S3Region,
		S3Endpoint:         s.S3Endpoint,
		S3AccessKey:        s.S3AccessKey,
		S3SecretKey:        s.S3SecretKey,
	})
}
