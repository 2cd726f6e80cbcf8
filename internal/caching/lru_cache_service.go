package caching

import (
	"context"
	"time"

	"ishop/internal/models"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

type lruCacheService struct {
	images   *expirable.LRU[uuid.UUID, models.Image]
	products *expirable.LRU[uuid.UUID, bool]
}

// NewLRUCacheService is the in-process cache used when Redis is disabled.
// Entries expire after ttl regardless of the ttl passed to the setters.
func NewLRUCacheService(size int, ttl time.Duration) CacheService {
	return &lruCacheService{
		images:   expirable.NewLRU[uuid.UUID, models.Image](size, nil, ttl),
		products: expirable.NewLRU[uuid.UUID, bool](size, nil, ttl),
	}
}

func (c *lruCacheService) GetImage(_ context.Context, imageID uuid.UUID) (*models.Image, error) {
	image, ok := c.images.Get(imageID)
	if !ok {
		return nil, nil
	}
	return &image, nil
}

func (c *lruCacheService) SetImage(_ context.Context, image *models.Image, _ time.Duration) error {
	c.images.Add(image.ID, *image)
	return nil
}

func (c *lruCacheService) DeleteImage(_ context.Context, imageID uuid.UUID) error {
	c.images.Remove(imageID)
	return nil
}

func (c *lruCacheService) GetProductExists(_ context.Context, productID uuid.UUID) (bool, bool, error) {
	exists, ok := c.products.Get(productID)
	return exists, ok, nil
}

func (c *lruCacheService) SetProductExists(_ context.Context, productID uuid.UUID, exists bool, _ time.Duration) error {
	c.products.Add(productID, exists)
	return nil
}

func (c *lruCacheService) DeleteProduct(_ context.Context, productID uuid.UUID) error {
	c.products.Remove(productID)
	return nil
}

func (c *lruCacheService) Ping(context.Context) error {
	return nil
}
