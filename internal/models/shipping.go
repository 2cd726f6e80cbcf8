package models

import (
	"time"

	"github.com/google/uuid"
)

// ShippingState is the delivery progress of a shipment.
type ShippingState string

const (
	ShippingStateNone      ShippingState = "none"
	ShippingStatePending   ShippingState = "pending"
	ShippingStateShipped   ShippingState = "shipped"
	ShippingStateDelivered ShippingState = "delivered"
	ShippingStateCancelled ShippingState = "cancelled"
)

// Valid reports whether s is a known state.
func (s ShippingState) Valid() bool {
	switch s {
	case ShippingStateNone, ShippingStatePending, ShippingStateShipped, ShippingStateDelivered, ShippingStateCancelled:
		return true
	}
	return false
}

// Final reports whether no further transition is allowed from s.
func (s ShippingState) Final() bool {
	return s == ShippingStateDelivered || s == ShippingStateCancelled
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s ShippingState) CanTransitionTo(next ShippingState) bool {
	if s.Final() || !next.Valid() {
		return false
	}
	if next == ShippingStateCancelled {
		return true
	}
	switch s {
	case ShippingStateNone:
		return next == ShippingStatePending
	case ShippingStatePending:
		return next == ShippingStateShipped
	case ShippingStateShipped:
		return next == ShippingStateDelivered
	}
	return false
}

// Shipping stores where and how an order is delivered. Charge, Ward,
// District, City and PhoneNumber are required.
type Shipping struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	OrderID       uuid.UUID     `json:"order_id" db:"order_id"`
	ShippingDate  time.Time     `json:"shipping_date" db:"shipping_date"`
	ShippingState ShippingState `json:"shipping_state" db:"shipping_state"`
	Charge        float64       `json:"charge" db:"charge"`
	Ward          string        `json:"ward" db:"ward"`
	District      string        `json:"district" db:"district"`
	City          string        `json:"city" db:"city"`
	PhoneNumber   string        `json:"phone_number" db:"phone_number"`
	UserName      *string       `json:"user_name" db:"user_name"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// CreateShippingRequest is the validated payload for a new shipment.
// Charge is a pointer so a missing value can be told apart from zero.
type CreateShippingRequest struct {
	OrderID      string     `json:"order_id" validate:"required,uuid"`
	ShippingDate *time.Time `json:"shipping_date"`
	Charge       *float64   `json:"charge" validate:"required,gte=0"`
	Ward         string     `json:"ward" validate:"required"`
	District     string     `json:"district" validate:"required"`
	City         string     `json:"city" validate:"required"`
	PhoneNumber  string     `json:"phone_number" validate:"required,max=20"`
	UserName     *string    `json:"user_name"`
}
