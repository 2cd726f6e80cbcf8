package models

import (
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CartID    uuid.UUID `json:"cart_id" db:"cart_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// SavedShoppingCart is a cart persisted for later checkout.
type SavedShoppingCart struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	UserID    uuid.UUID   `json:"user_id" db:"user_id"`
	Carts     []*CartItem `json:"carts"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

type CartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// SaveShoppingCartRequest is the payload for saving a cart.
type SaveShoppingCartRequest struct {
	UserID string            `json:"user_id" validate:"required,guid"`
	Carts  []CartItemRequest `json:"carts" validate:"required,min=1,dive"`
}

// FieldMessages overrides the messages reported for the top-level fields.
func (SaveShoppingCartRequest) FieldMessages() map[string]string {
	return map[string]string{
		"user_id": "The User Id is missing or not in format.",
		"carts":   "Must contain at least 1 cart item.",
	}
}
