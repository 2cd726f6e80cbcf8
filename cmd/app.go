package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"ishop/internal/caching"
	"ishop/internal/config"
	"ishop/internal/metrics"
	"ishop/internal/repositories"
	"ishop/internal/storage"
	"ishop/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// app holds the infrastructure shared by the serve and sweep commands.
type app struct {
	pool      *pgxpool.Pool
	cache     caching.CacheService
	store     storage.BlobStore
	imageRepo repositories.ImageRepository
	metrics   *metrics.Metrics
}

const (
	lruCacheSize = 10_000
	// short enough that a product created on another instance is seen quickly
	lruCacheTTL = time.Minute
)

func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger, m *metrics.Metrics) (*app, func(), error) {
	if cfg.Database.MigrateOnStart {
		if err := database.RunMigrate(log, cfg.Database.URL, database.MigrationsFS, "up", nil); err != nil {
			return nil, nil, err
		}
	}

	pool, err := database.NewPool(ctx, cfg.Database.URL, log)
	if err != nil {
		return nil, nil, err
	}

	store, err := newBlobStore(ctx, cfg.Storage, log)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	var cache caching.CacheService
	if cfg.Redis.Enabled {
		cache = caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
	} else {
		log.Info("redis disabled, using in-process metadata cache", zap.Int("size", lruCacheSize))
		cache = caching.NewLRUCacheService(lruCacheSize, lruCacheTTL)
	}

	a := &app{
		pool:      pool,
		cache:     cache,
		store:     store,
		imageRepo: repositories.NewImageRepo(pool),
		metrics:   m,
	}
	return a, pool.Close, nil
}

func newBlobStore(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (storage.BlobStore, error) {
	switch cfg.Driver {
	case "minio":
		store, err := storage.NewMinioStore(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.UseSSL)
		if err != nil {
			return nil, fmt.Errorf("init minio store: %w", err)
		}
		if err := store.EnsureBucketExists(ctx); err != nil {
			return nil, fmt.Errorf("ensure bucket %s: %w", cfg.Minio.Bucket, err)
		}
		log.Info("content store ready", zap.String("driver", "minio"), zap.String("bucket", cfg.Minio.Bucket))
		return store, nil
	default:
		store, err := storage.NewFilesystemStore(afero.NewOsFs(), cfg.RootPath, cfg.PublicBaseURL)
		if err != nil {
			return nil, err
		}
		root, _ := filepath.Abs(cfg.RootPath)
		log.Info("content store ready", zap.String("driver", "filesystem"), zap.String("root", root))
		return store, nil
	}
}
