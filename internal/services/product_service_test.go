package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ishop/internal/caching"
	"ishop/internal/common"
	"ishop/internal/models"
	"ishop/internal/repositories"
	"ishop/internal/storage"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type ProductServiceTestSuite struct {
	suite.Suite
	productRepo *MockProductRepository
	imageRepo   *MockImageRepository
	cache       caching.CacheService
	store       storage.BlobStore
	service     ProductService
	ctx         context.Context
}

func (s *ProductServiceTestSuite) SetupTest() {
	s.productRepo = new(MockProductRepository)
	s.imageRepo = new(MockImageRepository)
	s.cache = caching.NewLRUCacheService(16, time.Minute)
	store, err := storage.NewFilesystemStore(afero.NewMemMapFs(), "/wwwroot", "")
	require.NoError(s.T(), err)
	s.store = store
	s.service = NewProductService(s.productRepo, s.imageRepo, s.cache, s.store, common.NewValidator(), zap.NewNop())
	s.ctx = context.Background()
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func (s *ProductServiceTestSuite) TestCreate_Success() {
	product := &models.Product{Name: "  Green tea ", UnitPrice: 3.2}
	s.productRepo.On("Create", mock.Anything, product).Return(nil).Once()

	err := s.service.Create(s.ctx, product)
	require.NoError(s.T(), err)
	assert.NotEqual(s.T(), uuid.Nil, product.ID)
	assert.Equal(s.T(), "Green tea", product.Name)
	assert.False(s.T(), product.CreatedAt.IsZero())

	exists, found, _ := s.cache.GetProductExists(s.ctx, product.ID)
	assert.True(s.T(), found)
	assert.True(s.T(), exists)
}

func (s *ProductServiceTestSuite) TestCreate_NameRequired() {
	err := s.service.Create(s.ctx, &models.Product{Name: "   "})
	assert.Equal(s.T(), common.KindInvalidInput, common.KindOf(err))
	assert.Contains(s.T(), common.DetailsOf(err), "name")
	s.productRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *ProductServiceTestSuite) TestCreate_NegativePrice() {
	err := s.service.Create(s.ctx, &models.Product{Name: "Tea", UnitPrice: -1})
	assert.Equal(s.T(), common.KindInvalidInput, common.KindOf(err))
}

func (s *ProductServiceTestSuite) TestGetByID_NotFound() {
	id := uuid.New()
	s.productRepo.On("GetByID", mock.Anything, id).Return(nil, repositories.ErrNotFound)

	_, err := s.service.GetByID(s.ctx, id)
	assert.Equal(s.T(), common.KindNotFound, common.KindOf(err))
}

func (s *ProductServiceTestSuite) TestList_ClampsPagination() {
	s.productRepo.On("List", mock.Anything, 100, 0).Return([]*models.Product{}, nil).Once()

	_, err := s.service.List(s.ctx, 1000, -3)
	assert.NoError(s.T(), err)
	s.productRepo.AssertExpectations(s.T())
}

func (s *ProductServiceTestSuite) TestDelete_RemovesBlobs() {
	id := uuid.New()
	image := &models.Image{ID: uuid.New(), ProductID: id, FileName: "a.png"}
	_, err := s.store.Put(s.ctx, storage.ImageKey("a.png"), strings.NewReader("abc"), 3, "image/png")
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.cache.SetImage(s.ctx, image, time.Minute))
	require.NoError(s.T(), s.cache.SetProductExists(s.ctx, id, true, time.Minute))

	s.imageRepo.On("ListByProduct", mock.Anything, id).Return([]*models.Image{image}, nil).Once()
	s.productRepo.On("Delete", mock.Anything, id).Return([]string{"a.png", "already-gone.png"}, nil).Once()

	require.NoError(s.T(), s.service.Delete(s.ctx, id))

	_, err = s.store.Stat(s.ctx, storage.ImageKey("a.png"))
	assert.ErrorIs(s.T(), err, storage.ErrNotFound)
	cached, _ := s.cache.GetImage(s.ctx, image.ID)
	assert.Nil(s.T(), cached)
	_, found, _ := s.cache.GetProductExists(s.ctx, id)
	assert.False(s.T(), found)
}

func (s *ProductServiceTestSuite) TestDelete_Missing() {
	id := uuid.New()
	s.imageRepo.On("ListByProduct", mock.Anything, id).Return([]*models.Image{}, nil).Once()
	s.productRepo.On("Delete", mock.Anything, id).Return(nil, repositories.ErrNotFound).Once()

	err := s.service.Delete(s.ctx, id)
	assert.Equal(s.T(), common.KindNotFound, common.KindOf(err))
}

func (s *ProductServiceTestSuite) TestDelete_CatalogFailure() {
	id := uuid.New()
	s.imageRepo.On("ListByProduct", mock.Anything, id).Return(nil, errors.New("timeout")).Once()

	err := s.service.Delete(s.ctx, id)
	assert.Equal(s.T(), common.KindPersistenceFailure, common.KindOf(err))
	s.productRepo.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything)
}
