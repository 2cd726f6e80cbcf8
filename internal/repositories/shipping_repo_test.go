package repositories

import (
	"context"
	"testing"
	"time"

	"ishop/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShippingRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id, orderID := uuid.New(), uuid.New()
	now := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM shippings WHERE id = \$1`).WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "order_id", "shipping_date", "shipping_state", "charge", "ward", "district", "city", "phone_number", "user_name", "created_at", "updated_at"}).
			AddRow(id, orderID, now, "pending", 4.99, "Ward 7", "District 1", "Hanoi", "0900000000", stringPtr("linh"), now, now))

	shipping, err := NewShippingRepo(mock).GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.ShippingStatePending, shipping.ShippingState)
	assert.Equal(t, orderID, shipping.OrderID)
	assert.Equal(t, 4.99, shipping.Charge)
	assert.Equal(t, "linh", *shipping.UserName)
}

func TestShippingRepo_UpdateState(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	repo := NewShippingRepo(mock)

	mock.ExpectExec(`UPDATE shippings`).WithArgs("shipped", id, "pending").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE shippings`).WithArgs("delivered", id, "pending").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.NoError(t, repo.UpdateState(context.Background(), id, models.ShippingStatePending, models.ShippingStateShipped))
	assert.ErrorIs(t, repo.UpdateState(context.Background(), id, models.ShippingStatePending, models.ShippingStateDelivered), ErrStaleState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShippingRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	shipping := &models.Shipping{
		ID:            uuid.New(),
		OrderID:       uuid.New(),
		ShippingDate:  now,
		ShippingState: models.ShippingStateNone,
		Charge:        2,
		Ward:          "W",
		District:      "D",
		City:          "C",
		PhoneNumber:   "123",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	mock.ExpectExec(`INSERT INTO shippings`).
		WithArgs(shipping.ID, shipping.OrderID, now, "none", 2.0, "W", "D", "C", "123", shipping.UserName, now, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, NewShippingRepo(mock).Create(context.Background(), shipping))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShippingRepo_DeleteMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM shippings`).WithArgs(id).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, NewShippingRepo(mock).Delete(context.Background(), id), ErrNotFound)
}
