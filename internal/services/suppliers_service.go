package services

import (
	"context"
	"errors"
	"strings"

	"ishop/internal/common"
	"ishop/internal/models"
	"ishop/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type SupplierService interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Supplier, error)
}

type supplierService struct {
	supplierRepo repositories.SupplierRepository
	validate     *validator.Validate
}

func NewSupplierService(supplierRepo repositories.SupplierRepository, validate *validator.Validate) SupplierService {
	return &supplierService{
		supplierRepo: supplierRepo,
		validate:     validate,
	}
}

func (s *supplierService) Create(ctx context.Context, supplier *models.Supplier) error {
	const op = "supplierService.Create"

	supplier.Name = strings.TrimSpace(supplier.Name)
	if err := common.ValidateStruct(s.validate, op, supplier); err != nil {
		return err
	}
	if err := s.ensureNameFree(ctx, op, supplier.Name, uuid.Nil); err != nil {
		return err
	}

	supplier.ID = uuid.New()
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return catalogError(op, "supplier", supplier.ID, err)
	}
	return nil
}

func (s *supplierService) GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, catalogError("supplierService.GetByID", "supplier", id, err)
	}
	return supplier, nil
}

func (s *supplierService) Update(ctx context.Context, supplier *models.Supplier) error {
	const op = "supplierService.Update"

	supplier.Name = strings.TrimSpace(supplier.Name)
	if err := common.ValidateStruct(s.validate, op, supplier); err != nil {
		return err
	}
	if err := s.ensureNameFree(ctx, op, supplier.Name, supplier.ID); err != nil {
		return err
	}
	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return catalogError(op, "supplier", supplier.ID, err)
	}
	return nil
}

func (s *supplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return catalogError("supplierService.Delete", "supplier", id, err)
	}
	return nil
}

func (s *supplierService) List(ctx context.Context, limit, offset int) ([]*models.Supplier, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	suppliers, err := s.supplierRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, catalogError("supplierService.List", "supplier", nil, err)
	}
	return suppliers, nil
}

// ensureNameFree rejects a name already used by a supplier other than self.
func (s *supplierService) ensureNameFree(ctx context.Context, op, name string, self uuid.UUID) error {
	existing, err := s.supplierRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return catalogError(op, "supplier", name, err)
	}
	if existing.ID != self {
		return common.E(common.KindConflict, op, "supplier with this name already exists", nil)
	}
	return nil
}
