package repositories

import (
	"context"

	"ishop/internal/models"

	"github.com/google/uuid"
)

type SupplierRepository interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Supplier, error)
	GetByName(ctx context.Context, name string) (*models.Supplier, error)
}

type supplierRepo struct {
	db DBTX
}

func NewSupplierRepository(db DBTX) SupplierRepository {
	return &supplierRepo{db: db}
}

func (r *supplierRepo) Create(ctx context.Context, supplier *models.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, contact_email, contact_phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, supplier.ID, supplier.Name, supplier.ContactEmail, supplier.ContactPhone, supplier.Address)
	return mapError(err)
}

func (r *supplierRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	supplier := &models.Supplier{}
	query := `
		SELECT id, name, contact_email, contact_phone, address, created_at, updated_at
		FROM suppliers
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&supplier.ID, &supplier.Name, &supplier.ContactEmail, &supplier.ContactPhone, &supplier.Address, &supplier.CreatedAt, &supplier.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return supplier, nil
}

func (r *supplierRepo) GetByName(ctx context.Context, name string) (*models.Supplier, error) {
	supplier := &models.Supplier{}
	query := `
		SELECT id, name, contact_email, contact_phone, address, created_at, updated_at
		FROM suppliers
		WHERE name = $1
	`
	err := r.db.QueryRow(ctx, query, name).Scan(&supplier.ID, &supplier.Name, &supplier.ContactEmail, &supplier.ContactPhone, &supplier.Address, &supplier.CreatedAt, &supplier.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return supplier, nil
}

func (r *supplierRepo) Update(ctx context.Context, supplier *models.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $1, contact_email = $2, contact_phone = $3, address = $4, updated_at = NOW()
		WHERE id = $5
	`
	tag, err := r.db.Exec(ctx, query, supplier.Name, supplier.ContactEmail, supplier.ContactPhone, supplier.Address, supplier.ID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *supplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *supplierRepo) List(ctx context.Context, limit, offset int) ([]*models.Supplier, error) {
	query := `
		SELECT id, name, contact_email, contact_phone, address, created_at, updated_at
		FROM suppliers
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suppliers := []*models.Supplier{}
	for rows.Next() {
		supplier := &models.Supplier{}
		if err := rows.Scan(&supplier.ID, &supplier.Name, &supplier.ContactEmail, &supplier.ContactPhone, &supplier.Address, &supplier.CreatedAt, &supplier.UpdatedAt); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, rows.Err()
}
