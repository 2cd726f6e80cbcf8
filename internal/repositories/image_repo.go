package repositories

import (
	"context"

	"ishop/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Image, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Image, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistingFileNames(ctx context.Context, fileNames []string) (map[string]bool, error)
}

type imageRepo struct {
	db DB
}

func NewImageRepo(db DB) ImageRepository {
	return &imageRepo{db: db}
}

const imageColumns = `id, product_id, file_name, original_name, content_type, size_bytes, created_at`

// Create inserts the row in its own transaction. A failing COMMIT is
// reported as *CommitError.
func (r *imageRepo) Create(ctx context.Context, image *models.Image) error {
	query := `
		INSERT INTO images (id, product_id, file_name, original_name, content_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	return WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query, image.ID, image.ProductID, image.FileName, image.OriginalName, image.ContentType, image.SizeBytes, image.CreatedAt)
		return mapError(err)
	})
}

func (r *imageRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE id = $1`
	image := &models.Image{}
	err := r.db.QueryRow(ctx, query, id).Scan(&image.ID, &image.ProductID, &image.FileName, &image.OriginalName, &image.ContentType, &image.SizeBytes, &image.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return image, nil
}

func (r *imageRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE product_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []*models.Image{}
	for rows.Next() {
		image := &models.Image{}
		if err := rows.Scan(&image.ID, &image.ProductID, &image.FileName, &image.OriginalName, &image.ContentType, &image.SizeBytes, &image.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

// Delete removes the row in its own transaction and returns ErrNotFound when
// no row matched.
func (r *imageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM images WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ExistingFileNames reports which of fileNames have a catalog row.
func (r *imageRepo) ExistingFileNames(ctx context.Context, fileNames []string) (map[string]bool, error) {
	found := make(map[string]bool, len(fileNames))
	if len(fileNames) == 0 {
		return found, nil
	}
	rows, err := r.db.Query(ctx, `SELECT file_name FROM images WHERE file_name = ANY($1)`, fileNames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		found[name] = true
	}
	return found, rows.Err()
}
