package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is the parent record images are attached to.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" validate:"required,max=200"`
	Description *string   `json:"description" db:"description"`
	UnitPrice   float64   `json:"unit_price" db:"unit_price" validate:"gte=0"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
