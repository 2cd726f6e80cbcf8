package handlers

import (
	"context"
	"io"
	"time"

	"ishop/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Upload(ctx context.Context, productID string, file *models.FileUpload) *models.ServiceResult {
	args := m.Called(ctx, productID, file)
	return args.Get(0).(*models.ServiceResult)
}

func (m *MockImageService) Remove(ctx context.Context, imageID string) *models.ServiceResult {
	args := m.Called(ctx, imageID)
	return args.Get(0).(*models.ServiceResult)
}

func (m *MockImageService) Get(ctx context.Context, imageID uuid.UUID) (*models.Image, error) {
	args := m.Called(ctx, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *MockImageService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Image, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Image), args.Error(1)
}

func (m *MockImageService) Open(ctx context.Context, imageID uuid.UUID) (*models.Image, io.ReadCloser, error) {
	args := m.Called(ctx, imageID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Image), args.Get(1).(io.ReadCloser), args.Error(2)
}

func (m *MockImageService) URL(ctx context.Context, imageID uuid.UUID, expiry time.Duration) (string, error) {
	args := m.Called(ctx, imageID, expiry)
	return args.String(0), args.Error(1)
}

type MockSupplierService struct {
	mock.Mock
}

func (m *MockSupplierService) Create(ctx context.Context, supplier *models.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *MockSupplierService) GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Supplier), args.Error(1)
}

func (m *MockSupplierService) Update(ctx context.Context, supplier *models.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *MockSupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSupplierService) List(ctx context.Context, limit, offset int) ([]*models.Supplier, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Supplier), args.Error(1)
}

type MockShippingService struct {
	mock.Mock
}

func (m *MockShippingService) Create(ctx context.Context, req *models.CreateShippingRequest) (*models.Shipping, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shipping), args.Error(1)
}

func (m *MockShippingService) GetByID(ctx context.Context, id uuid.UUID) (*models.Shipping, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shipping), args.Error(1)
}

func (m *MockShippingService) UpdateState(ctx context.Context, id uuid.UUID, next models.ShippingState) (*models.Shipping, error) {
	args := m.Called(ctx, id, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shipping), args.Error(1)
}

func (m *MockShippingService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockShippingService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.Shipping, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Shipping), args.Error(1)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Save(ctx context.Context, req *models.SaveShoppingCartRequest) (*models.SavedShoppingCart, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavedShoppingCart), args.Error(1)
}

func (m *MockCartService) GetByID(ctx context.Context, id uuid.UUID) (*models.SavedShoppingCart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavedShoppingCart), args.Error(1)
}

func (m *MockCartService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.SavedShoppingCart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SavedShoppingCart), args.Error(1)
}

func (m *MockCartService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
