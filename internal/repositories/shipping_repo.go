package repositories

import (
	"context"
	"errors"

	"ishop/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrStaleState is returned by UpdateState when the row left the expected
// state before the update ran.
var ErrStaleState = errors.New("shipping state changed concurrently")

type ShippingRepository interface {
	Create(ctx context.Context, shipping *models.Shipping) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Shipping, error)
	UpdateState(ctx context.Context, id uuid.UUID, from, to models.ShippingState) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.Shipping, error)
}

type shippingRepo struct {
	db DBTX
}

func NewShippingRepo(db DBTX) ShippingRepository {
	return &shippingRepo{db: db}
}

const shippingColumns = `id, order_id, shipping_date, shipping_state, charge, ward, district, city, phone_number, user_name, created_at, updated_at`

func scanShipping(row pgx.Row) (*models.Shipping, error) {
	s := &models.Shipping{}
	var state string
	if err := row.Scan(&s.ID, &s.OrderID, &s.ShippingDate, &state, &s.Charge, &s.Ward, &s.District, &s.City, &s.PhoneNumber, &s.UserName, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.ShippingState = models.ShippingState(state)
	return s, nil
}

func (r *shippingRepo) Create(ctx context.Context, shipping *models.Shipping) error {
	query := `
		INSERT INTO shippings (` + shippingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(ctx, query,
		shipping.ID, shipping.OrderID, shipping.ShippingDate, string(shipping.ShippingState), shipping.Charge,
		shipping.Ward, shipping.District, shipping.City, shipping.PhoneNumber, shipping.UserName,
		shipping.CreatedAt, shipping.UpdatedAt)
	return mapError(err)
}

func (r *shippingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Shipping, error) {
	shipping, err := scanShipping(r.db.QueryRow(ctx, `SELECT `+shippingColumns+` FROM shippings WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return shipping, nil
}

// UpdateState moves the shipment from one state to another. The WHERE
// clause on the current state makes concurrent transitions fail with
// ErrStaleState instead of overwriting each other.
func (r *shippingRepo) UpdateState(ctx context.Context, id uuid.UUID, from, to models.ShippingState) error {
	query := `
		UPDATE shippings
		SET shipping_state = $1, updated_at = NOW()
		WHERE id = $2 AND shipping_state = $3
	`
	tag, err := r.db.Exec(ctx, query, string(to), id, string(from))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStaleState
	}
	return nil
}

func (r *shippingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM shippings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *shippingRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.Shipping, error) {
	rows, err := r.db.Query(ctx, `SELECT `+shippingColumns+` FROM shippings WHERE order_id = $1 ORDER BY created_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shippings := []*models.Shipping{}
	for rows.Next() {
		shipping, err := scanShipping(rows)
		if err != nil {
			return nil, err
		}
		shippings = append(shippings, shipping)
	}
	return shippings, rows.Err()
}
