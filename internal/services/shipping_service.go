package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ishop/internal/common"
	"ishop/internal/models"
	"ishop/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShippingService interface {
	Create(ctx context.Context, req *models.CreateShippingRequest) (*models.Shipping, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Shipping, error)
	UpdateState(ctx context.Context, id uuid.UUID, next models.ShippingState) (*models.Shipping, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.Shipping, error)
}

type shippingService struct {
	shippingRepo repositories.ShippingRepository
	validate     *validator.Validate
	log          *zap.Logger
}

func NewShippingService(shippingRepo repositories.ShippingRepository, validate *validator.Validate, log *zap.Logger) ShippingService {
	return &shippingService{
		shippingRepo: shippingRepo,
		validate:     validate,
		log:          log.Named("shippings"),
	}
}

func (s *shippingService) Create(ctx context.Context, req *models.CreateShippingRequest) (*models.Shipping, error) {
	const op = "shippingService.Create"

	if err := common.ValidateStruct(s.validate, op, req); err != nil {
		return nil, err
	}
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, common.Invalid(op, map[string]string{"order_id": "order_id must be a valid UUID"})
	}

	now := time.Now().UTC()
	shipping := &models.Shipping{
		ID:            uuid.New(),
		OrderID:       orderID,
		ShippingDate:  now,
		ShippingState: models.ShippingStateNone,
		Charge:        *req.Charge,
		Ward:          req.Ward,
		District:      req.District,
		City:          req.City,
		PhoneNumber:   req.PhoneNumber,
		UserName:      req.UserName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.ShippingDate != nil {
		shipping.ShippingDate = req.ShippingDate.UTC()
	}

	if err := s.shippingRepo.Create(ctx, shipping); err != nil {
		return nil, catalogError(op, "shipping", shipping.ID, err)
	}
	s.log.Info("shipping created", zap.String("shipping_id", shipping.ID.String()), zap.String("order_id", orderID.String()))
	return shipping, nil
}

func (s *shippingService) GetByID(ctx context.Context, id uuid.UUID) (*models.Shipping, error) {
	shipping, err := s.shippingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, catalogError("shippingService.GetByID", "shipping", id, err)
	}
	return shipping, nil
}

// UpdateState applies one step of None -> Pending -> Shipped -> Delivered, or
// cancels a shipment that has not reached a final state.
func (s *shippingService) UpdateState(ctx context.Context, id uuid.UUID, next models.ShippingState) (*models.Shipping, error) {
	const op = "shippingService.UpdateState"

	if !next.Valid() {
		return nil, common.Invalid(op, map[string]string{"shipping_state": fmt.Sprintf("unknown shipping state %q", next)})
	}
	shipping, err := s.shippingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, catalogError(op, "shipping", id, err)
	}
	if !shipping.ShippingState.CanTransitionTo(next) {
		return nil, common.E(common.KindConflict, op,
			fmt.Sprintf("cannot move shipping from %s to %s", shipping.ShippingState, next), nil)
	}

	if err := s.shippingRepo.UpdateState(ctx, id, shipping.ShippingState, next); err != nil {
		if errors.Is(err, repositories.ErrStaleState) {
			return nil, common.E(common.KindConflict, op, "shipping was modified concurrently", err)
		}
		return nil, catalogError(op, "shipping", id, err)
	}
	s.log.Info("shipping state changed",
		zap.String("shipping_id", id.String()),
		zap.String("from", string(shipping.ShippingState)),
		zap.String("to", string(next)))

	shipping.ShippingState = next
	shipping.UpdatedAt = time.Now().UTC()
	return shipping, nil
}

func (s *shippingService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.shippingRepo.Delete(ctx, id); err != nil {
		return catalogError("shippingService.Delete", "shipping", id, err)
	}
	return nil
}

func (s *shippingService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.Shipping, error) {
	shippings, err := s.shippingRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, catalogError("shippingService.ListByOrder", "shipping", orderID, err)
	}
	return shippings, nil
}
