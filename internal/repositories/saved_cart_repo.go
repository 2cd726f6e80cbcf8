package repositories

import (
	"context"

	"ishop/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SavedCartRepository interface {
	Save(ctx context.Context, cart *models.SavedShoppingCart) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SavedShoppingCart, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.SavedShoppingCart, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type savedCartRepo struct {
	db DB
}

func NewSavedCartRepo(db DB) SavedCartRepository {
	return &savedCartRepo{db: db}
}

// Save writes the cart header and all of its items atomically.
func (r *savedCartRepo) Save(ctx context.Context, cart *models.SavedShoppingCart) error {
	return WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO saved_shopping_carts (id, user_id, created_at) VALUES ($1, $2, $3)`,
			cart.ID, cart.UserID, cart.CreatedAt)
		if err != nil {
			return mapError(err)
		}
		for _, item := range cart.Carts {
			_, err := tx.Exec(ctx,
				`INSERT INTO cart_items (id, cart_id, product_id, quantity) VALUES ($1, $2, $3, $4)`,
				item.ID, cart.ID, item.ProductID, item.Quantity)
			if err != nil {
				return mapError(err)
			}
		}
		return nil
	})
}

func (r *savedCartRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.SavedShoppingCart, error) {
	cart := &models.SavedShoppingCart{}
	err := r.db.QueryRow(ctx, `SELECT id, user_id, created_at FROM saved_shopping_carts WHERE id = $1`, id).
		Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	items, err := r.items(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Carts = items
	return cart, nil
}

func (r *savedCartRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.SavedShoppingCart, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, created_at FROM saved_shopping_carts WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	carts := []*models.SavedShoppingCart{}
	for rows.Next() {
		cart := &models.SavedShoppingCart{}
		if err := rows.Scan(&cart.ID, &cart.UserID, &cart.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		carts = append(carts, cart)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, cart := range carts {
		items, err := r.items(ctx, cart.ID)
		if err != nil {
			return nil, err
		}
		cart.Carts = items
	}
	return carts, nil
}

func (r *savedCartRepo) items(ctx context.Context, cartID uuid.UUID) ([]*models.CartItem, error) {
	rows, err := r.db.Query(ctx, `SELECT id, cart_id, product_id, quantity FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*models.CartItem{}
	for rows.Next() {
		item := &models.CartItem{}
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *savedCartRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM saved_shopping_carts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
