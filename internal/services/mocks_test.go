package services

import (
	"context"
	"io"

	"ishop/internal/models"
	"ishop/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) Create(ctx context.Context, image *models.Image) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockImageRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *MockImageRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Image, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Image), args.Error(1)
}

func (m *MockImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockImageRepository) ExistingFileNames(ctx context.Context, fileNames []string) (map[string]bool, error) {
	args := m.Called(ctx, fileNames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) ([]string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) Create(ctx context.Context, supplier *models.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Update(ctx context.Context, supplier *models.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) List(ctx context.Context, limit, offset int) ([]*models.Supplier, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) GetByName(ctx context.Context, name string) (*models.Supplier, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Supplier), args.Error(1)
}

type MockShippingRepository struct {
	mock.Mock
}

func (m *MockShippingRepository) Create(ctx context.Context, shipping *models.Shipping) error {
	args := m.Called(ctx, shipping)
	return args.Error(0)
}

func (m *MockShippingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Shipping, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shipping), args.Error(1)
}

func (m *MockShippingRepository) UpdateState(ctx context.Context, id uuid.UUID, from, to models.ShippingState) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockShippingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShippingRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.Shipping, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]*models.Shipping), args.Error(1)
}

type MockSavedCartRepository struct {
	mock.Mock
}

func (m *MockSavedCartRepository) Save(ctx context.Context, cart *models.SavedShoppingCart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockSavedCartRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SavedShoppingCart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavedShoppingCart), args.Error(1)
}

func (m *MockSavedCartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.SavedShoppingCart, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.SavedShoppingCart), args.Error(1)
}

func (m *MockSavedCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// faultyStore wraps a real store and fails selected operations.
type faultyStore struct {
	storage.BlobStore
	putErr    error
	deleteErr error
}

func (f *faultyStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (int64, error) {
	if f.putErr != nil {
		return 0, f.putErr
	}
	return f.BlobStore.Put(ctx, key, r, size, contentType)
}

func (f *faultyStore) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.BlobStore.Delete(ctx, key)
}
