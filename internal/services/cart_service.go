package services

import (
	"context"
	"time"

	"ishop/internal/common"
	"ishop/internal/models"
	"ishop/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CartService interface {
	Save(ctx context.Context, req *models.SaveShoppingCartRequest) (*models.SavedShoppingCart, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.SavedShoppingCart, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.SavedShoppingCart, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type cartService struct {
	cartRepo repositories.SavedCartRepository
	validate *validator.Validate
}

func NewCartService(cartRepo repositories.SavedCartRepository, validate *validator.Validate) CartService {
	return &cartService{cartRepo: cartRepo, validate: validate}
}

func (s *cartService) Save(ctx context.Context, req *models.SaveShoppingCartRequest) (*models.SavedShoppingCart, error) {
	const op = "cartService.Save"

	if err := common.ValidateStruct(s.validate, op, req); err != nil {
		return nil, err
	}

	cart := &models.SavedShoppingCart{
		ID:        uuid.New(),
		UserID:    uuid.MustParse(req.UserID),
		CreatedAt: time.Now().UTC(),
		Carts:     make([]*models.CartItem, 0, len(req.Carts)),
	}
	for _, item := range req.Carts {
		cart.Carts = append(cart.Carts, &models.CartItem{
			ID:        uuid.New(),
			CartID:    cart.ID,
			ProductID: uuid.MustParse(item.ProductID),
			Quantity:  item.Quantity,
		})
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, catalogError(op, "cart", cart.ID, err)
	}
	return cart, nil
}

func (s *cartService) GetByID(ctx context.Context, id uuid.UUID) (*models.SavedShoppingCart, error) {
	cart, err := s.cartRepo.GetByID(ctx, id)
	if err != nil {
		return nil, catalogError("cartService.GetByID", "cart", id, err)
	}
	return cart, nil
}

func (s *cartService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.SavedShoppingCart, error) {
	carts, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, catalogError("cartService.ListByUser", "cart", userID, err)
	}
	return carts, nil
}

func (s *cartService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.cartRepo.Delete(ctx, id); err != nil {
		return catalogError("cartService.Delete", "cart", id, err)
	}
	return nil
}
