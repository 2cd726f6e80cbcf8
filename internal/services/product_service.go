package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"ishop/internal/caching"
	"ishop/internal/common"
	"ishop/internal/models"
	"ishop/internal/repositories"
	"ishop/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductService interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, limit, offset int) ([]*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	productRepo repositories.ProductRepository
	imageRepo   repositories.ImageRepository
	cache       caching.CacheService
	store       storage.BlobStore
	validate    *validator.Validate
	log         *zap.Logger
}

func NewProductService(productRepo repositories.ProductRepository, imageRepo repositories.ImageRepository, cache caching.CacheService, store storage.BlobStore, validate *validator.Validate, log *zap.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		imageRepo:   imageRepo,
		cache:       cache,
		store:       store,
		validate:    validate,
		log:         log.Named("products"),
	}
}

func (s *productService) Create(ctx context.Context, product *models.Product) error {
	const op = "productService.Create"

	product.Name = strings.TrimSpace(product.Name)
	if err := common.ValidateStruct(s.validate, op, product); err != nil {
		return err
	}

	now := time.Now().UTC()
	product.ID = uuid.New()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := s.productRepo.Create(ctx, product); err != nil {
		return catalogError(op, "product", product.ID, err)
	}
	if err := s.cache.SetProductExists(ctx, product.ID, true, cacheTTL); err != nil {
		s.log.Warn("failed to cache product", zap.String("product_id", product.ID.String()), zap.Error(err))
	}
	return nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, catalogError("productService.GetByID", "product", id, err)
	}
	return product, nil
}

func (s *productService) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	products, err := s.productRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, catalogError("productService.List", "product", nil, err)
	}
	return products, nil
}

// Delete removes the product. Its image rows go with it through the foreign
// key cascade; their blobs are deleted afterwards and any that fail are left
// to the orphan sweeper.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "productService.Delete"

	images, err := s.imageRepo.ListByProduct(ctx, id)
	if err != nil {
		return catalogError(op, "product", id, err)
	}
	fileNames, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return catalogError(op, "product", id, err)
	}

	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		s.log.Warn("failed to evict product", zap.String("product_id", id.String()), zap.Error(err))
	}
	for _, image := range images {
		_ = s.cache.DeleteImage(ctx, image.ID)
	}
	for _, name := range fileNames {
		key := storage.ImageKey(name)
		if err := s.store.Delete(context.WithoutCancel(ctx), key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("failed to delete image blob", zap.String("product_id", id.String()), zap.String("key", key), zap.Error(err))
		}
	}
	s.log.Info("product deleted", zap.String("product_id", id.String()), zap.Int("images", len(fileNames)))
	return nil
}
