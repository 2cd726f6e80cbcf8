package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ishop/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CacheService keeps read-mostly lookups of the image pipeline out of the
// catalog. A miss is reported as (nil, nil) or found == false, never as an error.
type CacheService interface {
	GetImage(ctx context.Context, imageID uuid.UUID) (*models.Image, error)
	SetImage(ctx context.Context, image *models.Image, ttl time.Duration) error
	DeleteImage(ctx context.Context, imageID uuid.UUID) error

	GetProductExists(ctx context.Context, productID uuid.UUID) (exists bool, found bool, err error)
	SetProductExists(ctx context.Context, productID uuid.UUID, exists bool, ttl time.Duration) error
	DeleteProduct(ctx context.Context, productID uuid.UUID) error

	Ping(ctx context.Context) error
}

func imageKey(id uuid.UUID) string {
	return fmt.Sprintf("ishop:image:%s", id.String())
}

func productExistsKey(id uuid.UUID) string {
	return fmt.Sprintf("ishop:product:exists:%s", id.String())
}

type redisCacheService struct {
	client *redis.Client
}

// NewRedisCacheService connects to addr, which may carry a redis:// or
// rediss:// scheme. A failed initial ping is logged, not fatal.
func NewRedisCacheService(addr, password string, db int, log *zap.Logger) CacheService {
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn("redis ping failed on initialization", zap.String("addr", parsedAddr), zap.Error(err))
	} else {
		log.Debug("redis connection established", zap.String("addr", parsedAddr))
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetImage(ctx context.Context, imageID uuid.UUID) (*models.Image, error) {
	data, err := r.client.Get(ctx, imageKey(imageID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var image models.Image
	if err := json.Unmarshal(data, &image); err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *redisCacheService) SetImage(ctx context.Context, image *models.Image, ttl time.Duration) error {
	data, err := json.Marshal(image)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, imageKey(image.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
	return r.client.Del(ctx, imageKey(imageID)).Err()
}

func (r *redisCacheService) GetProductExists(ctx context.Context, productID uuid.UUID) (bool, bool, error) {
	val, err := r.client.Get(ctx, productExistsKey(productID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, false, nil
		}
		return false, false, err
	}
	return val == "1", true, nil
}

func (r *redisCacheService) SetProductExists(ctx context.Context, productID uuid.UUID, exists bool, ttl time.Duration) error {
	val := "0"
	if exists {
		val = "1"
	}
	return r.client.Set(ctx, productExistsKey(productID), val, ttl).Err()
}

func (r *redisCacheService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	return r.client.Del(ctx, productExistsKey(productID)).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
