package testhelpers

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"ishop/internal/models"
	"ishop/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap/zaptest"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB connects to TEST_DATABASE_URL and migrates it to the latest
// schema. The test is skipped in -short mode or when the variable is unset.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	log := zaptest.NewLogger(t)
	if err := database.RunMigrate(log, connString, database.MigrationsFS, "up", nil); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := database.NewPool(ctx, connString, log)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
}

// SetupTestProduct creates a product to attach images to.
func SetupTestProduct(t *testing.T, db *TestDB) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	query := `
		INSERT INTO products (id, name, description, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`
	_, err := db.Pool.Exec(context.Background(), query, productID, "Test Product "+productID.String()[:8], "Test description", 9.99, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}

	t.Cleanup(func() {
		_, _ = db.Pool.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, productID)
	})
	return productID
}

// CountImages returns the number of catalog rows for productID.
func CountImages(t *testing.T, db *TestDB, productID uuid.UUID) int {
	t.Helper()

	var n int
	if err := db.Pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM images WHERE product_id = $1`, productID).Scan(&n); err != nil {
		t.Fatalf("Failed to count images: %v", err)
	}
	return n
}

// PNGUpload returns an upload of size bytes with a PNG signature.
func PNGUpload(name string, size int) *models.FileUpload {
	data := make([]byte, size)
	copy(data, "\x89PNG\r\n\x1a\n")
	return &models.FileUpload{Name: name, Size: int64(size), Reader: bytes.NewReader(data)}
}
