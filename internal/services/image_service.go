package services

import (
	"context"
	"errors"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"ishop/internal/caching"
	"ishop/internal/common"
	"ishop/internal/metrics"
	"ishop/internal/models"
	"ishop/internal/repositories"
	"ishop/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const cacheTTL = 10 * time.Minute

// ImageService ingests product images into the blob store and the catalog.
// Upload and Remove report through *models.ServiceResult; the read
// operations return *common.Error values.
type ImageService interface {
	Upload(ctx context.Context, productID string, file *models.FileUpload) *models.ServiceResult
	Remove(ctx context.Context, imageID string) *models.ServiceResult
	Get(ctx context.Context, imageID uuid.UUID) (*models.Image, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Image, error)
	Open(ctx context.Context, imageID uuid.UUID) (*models.Image, io.ReadCloser, error)
	URL(ctx context.Context, imageID uuid.UUID, expiry time.Duration) (string, error)
}

type imageService struct {
	imageRepo   repositories.ImageRepository
	productRepo repositories.ProductRepository
	cache       caching.CacheService
	store       storage.BlobStore
	policy      ImagePolicy
	log         *zap.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

func NewImageService(imageRepo repositories.ImageRepository, productRepo repositories.ProductRepository, cache caching.CacheService, store storage.BlobStore, policy ImagePolicy, log *zap.Logger, m *metrics.Metrics) ImageService {
	return &imageService{
		imageRepo:   imageRepo,
		productRepo: productRepo,
		cache:       cache,
		store:       store,
		policy:      policy,
		log:         log.Named("images"),
		metrics:     m,
		now:         time.Now,
	}
}

func (s *imageService) Upload(ctx context.Context, productID string, file *models.FileUpload) *models.ServiceResult {
	start := time.Now()
	image, err := s.upload(ctx, productID, file)
	s.metrics.ObserveImageOp("upload", time.Since(start), err)
	if err != nil {
		s.logFor(ctx).Info("image upload rejected",
			zap.String("product_id", productID),
			zap.String("kind", string(common.KindOf(err))),
			zap.Error(err))
		return models.Failed(err)
	}
	return models.OK(image)
}

func (s *imageService) upload(ctx context.Context, rawProductID string, file *models.FileUpload) (*models.Image, error) {
	const op = "imageService.Upload"

	productID, err := uuid.Parse(strings.TrimSpace(rawProductID))
	if err != nil {
		return nil, common.NotFound(op, "product", rawProductID)
	}
	if err := s.requireProduct(ctx, op, productID); err != nil {
		return nil, err
	}

	if file == nil || file.Reader == nil {
		return nil, common.E(common.KindEmptyInput, op, "no file was uploaded", nil)
	}
	if err := s.policy.Validate(file.Size, file.Name); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	fileName := GenerateFileName(file.Name, now)
	key := storage.ImageKey(fileName)
	contentType := detectContentType(file)

	written, err := s.store.Put(ctx, key, file.Reader, file.Size, contentType)
	if err != nil {
		return nil, common.E(common.KindIOFailure, op, "failed to write image", err)
	}

	image := &models.Image{
		ID:           uuid.New(),
		ProductID:    productID,
		FileName:     fileName,
		OriginalName: filepath.Base(file.Name),
		ContentType:  contentType,
		SizeBytes:    written,
		CreatedAt:    now,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		s.discardBlob(ctx, key)
		if errors.Is(err, repositories.ErrForeignKey) {
			// the product was deleted after the existence check
			_ = s.cache.DeleteProduct(ctx, productID)
			return nil, common.NotFound(op, "product", productID)
		}
		return nil, common.E(common.KindPersistenceFailure, op, "failed to record image", err)
	}

	if err := s.cache.SetImage(ctx, image, cacheTTL); err != nil {
		s.log.Warn("failed to cache image metadata", zap.String("image_id", image.ID.String()), zap.Error(err))
	}
	s.metrics.AddUploadedBytes(written)
	s.logFor(ctx).Info("image stored",
		zap.String("image_id", image.ID.String()),
		zap.String("product_id", productID.String()),
		zap.String("file_name", fileName),
		zap.Int64("size_bytes", written))
	return image, nil
}

// logFor tags entries with the id of the request that triggered them.
func (s *imageService) logFor(ctx context.Context) *zap.Logger {
	if id, ok := common.GetRequestIDFromContext(ctx); ok && id != "" {
		return s.log.With(zap.String("request_id", id))
	}
	return s.log
}

// discardBlob removes a blob whose catalog row could not be written. When
// that fails too the orphan sweeper picks it up.
func (s *imageService) discardBlob(ctx context.Context, key string) {
	if err := s.store.Delete(context.WithoutCancel(ctx), key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.log.Error("failed to discard unrecorded blob", zap.String("key", key), zap.Error(err))
	}
}

func (s *imageService) Remove(ctx context.Context, imageID string) *models.ServiceResult {
	start := time.Now()
	image, err := s.remove(ctx, imageID)
	s.metrics.ObserveImageOp("remove", time.Since(start), err)
	if err != nil {
		s.logFor(ctx).Info("image removal failed",
			zap.String("image_id", imageID),
			zap.String("kind", string(common.KindOf(err))),
			zap.Error(err))
		return models.Failed(err)
	}
	result := models.OK(image)
	result.Message = "image removed"
	return result
}

func (s *imageService) remove(ctx context.Context, rawID string) (*models.Image, error) {
	const op = "imageService.Remove"

	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, common.NotFound(op, "image", rawID)
	}
	image, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.NotFound(op, "image", id)
		}
		return nil, common.E(common.KindPersistenceFailure, op, "failed to load image", err)
	}

	if err := s.imageRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.NotFound(op, "image", id)
		}
		return nil, common.E(common.KindPersistenceFailure, op, "failed to delete image", err)
	}

	if err := s.cache.DeleteImage(ctx, id); err != nil {
		s.log.Warn("failed to evict image metadata", zap.String("image_id", id.String()), zap.Error(err))
	}

	// The row is gone, so the catalog is consistent. A blob left behind here
	// is reclaimed by the orphan sweeper.
	key := storage.ImageKey(image.FileName)
	if err := s.store.Delete(context.WithoutCancel(ctx), key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.log.Warn("failed to delete image blob", zap.String("image_id", id.String()), zap.String("key", key), zap.Error(err))
	}

	s.logFor(ctx).Info("image removed", zap.String("image_id", id.String()), zap.String("file_name", image.FileName))
	return image, nil
}

func (s *imageService) Get(ctx context.Context, imageID uuid.UUID) (*models.Image, error) {
	const op = "imageService.Get"

	if cached, err := s.cache.GetImage(ctx, imageID); err != nil {
		s.log.Warn("image cache lookup failed", zap.String("image_id", imageID.String()), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	image, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.NotFound(op, "image", imageID)
		}
		return nil, common.E(common.KindPersistenceFailure, op, "failed to load image", err)
	}
	if err := s.cache.SetImage(ctx, image, cacheTTL); err != nil {
		s.log.Warn("failed to cache image metadata", zap.String("image_id", imageID.String()), zap.Error(err))
	}
	return image, nil
}

func (s *imageService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Image, error) {
	const op = "imageService.ListByProduct"

	if err := s.requireProduct(ctx, op, productID); err != nil {
		return nil, err
	}
	images, err := s.imageRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, common.E(common.KindPersistenceFailure, op, "failed to list images", err)
	}
	return images, nil
}

func (s *imageService) Open(ctx context.Context, imageID uuid.UUID) (*models.Image, io.ReadCloser, error) {
	const op = "imageService.Open"

	image, err := s.Get(ctx, imageID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(ctx, storage.ImageKey(image.FileName))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, common.E(common.KindNotFound, op, "image content is missing", err)
		}
		return nil, nil, common.E(common.KindIOFailure, op, "failed to open image", err)
	}
	return image, rc, nil
}

func (s *imageService) URL(ctx context.Context, imageID uuid.UUID, expiry time.Duration) (string, error) {
	const op = "imageService.URL"

	image, err := s.Get(ctx, imageID)
	if err != nil {
		return "", err
	}
	url, err := s.store.URL(ctx, storage.ImageKey(image.FileName), expiry)
	if err != nil {
		return "", common.E(common.KindIOFailure, op, "failed to build image URL", err)
	}
	return url, nil
}

// requireProduct fails with NotFound unless the product exists. Positive and
// negative answers are both cached.
func (s *imageService) requireProduct(ctx context.Context, op string, productID uuid.UUID) error {
	exists, found, err := s.cache.GetProductExists(ctx, productID)
	if err != nil {
		s.log.Warn("product cache lookup failed", zap.String("product_id", productID.String()), zap.Error(err))
	}
	if !found {
		exists, err = s.productRepo.Exists(ctx, productID)
		if err != nil {
			return common.E(common.KindPersistenceFailure, op, "failed to look up product", err)
		}
		if err := s.cache.SetProductExists(ctx, productID, exists, time.Minute); err != nil {
			s.log.Warn("failed to cache product lookup", zap.String("product_id", productID.String()), zap.Error(err))
		}
	}
	if !exists {
		return common.NotFound(op, "product", productID)
	}
	return nil
}

// detectContentType derives the stored type from the extension the policy
// accepted. The type declared by the client is ignored since it is served
// back from the API origin.
func detectContentType(file *models.FileUpload) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(file.Name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
