package testhelpers

import (
	"context"
	"io"
	"sync"
	"testing"

	"ishop/internal/caching"
	"ishop/internal/common"
	"ishop/internal/models"
	"ishop/internal/repositories"
	"ishop/internal/services"
	"ishop/internal/storage"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newImageService(t *testing.T, db *TestDB) (services.ImageService, storage.BlobStore) {
	t.Helper()

	store, err := storage.NewFilesystemStore(afero.NewMemMapFs(), "/wwwroot", "")
	require.NoError(t, err)

	svc := services.NewImageService(
		repositories.NewImageRepo(db.Pool),
		repositories.NewProductRepo(db.Pool),
		caching.NewLRUCacheService(100, 0),
		store,
		services.NewImagePolicy(2*1024*1024, []string{".png", ".jpg"}),
		zaptest.NewLogger(t),
		nil,
	)
	return svc, store
}

func TestImageIngestion(t *testing.T) {
	testDB := SetupTestDB(t)
	defer testDB.Cleanup()

	ctx := context.Background()
	svc, store := newImageService(t, testDB)

	t.Run("UploadRoundTrip", func(t *testing.T) {
		productID := SetupTestProduct(t, testDB)

		result := svc.Upload(ctx, productID.String(), PNGUpload("photo.png", 500*1024))
		require.True(t, result.Success, result.Message)

		image := result.Payload.(*models.Image)
		assert.Equal(t, productID, image.ProductID)
		assert.Equal(t, 1, CountImages(t, testDB, productID))

		info, err := store.Stat(ctx, storage.ImageKey(image.FileName))
		require.NoError(t, err)
		assert.Equal(t, int64(500*1024), info.Size)
	})

	t.Run("RejectedUploadWritesNothing", func(t *testing.T) {
		productID := SetupTestProduct(t, testDB)

		result := svc.Upload(ctx, productID.String(), PNGUpload("doc.pdf", 10*1024))
		assert.False(t, result.Success)
		assert.Equal(t, common.KindUnsupportedType, result.Kind)
		assert.Equal(t, 0, CountImages(t, testDB, productID))
	})

	t.Run("ConcurrentUploads", func(t *testing.T) {
		productID := SetupTestProduct(t, testDB)

		var wg sync.WaitGroup
		results := make([]*models.ServiceResult, 2)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = svc.Upload(ctx, productID.String(), PNGUpload("photo.png", 1024))
			}(i)
		}
		wg.Wait()

		require.True(t, results[0].Success)
		require.True(t, results[1].Success)
		assert.NotEqual(t,
			results[0].Payload.(*models.Image).FileName,
			results[1].Payload.(*models.Image).FileName)
		assert.Equal(t, 2, CountImages(t, testDB, productID))
	})

	t.Run("RemoveDeletesRowAndBlob", func(t *testing.T) {
		productID := SetupTestProduct(t, testDB)
		image := svc.Upload(ctx, productID.String(), PNGUpload("photo.jpg", 2048)).Payload.(*models.Image)

		result := svc.Remove(ctx, image.ID.String())
		require.True(t, result.Success, result.Message)
		assert.Equal(t, 0, CountImages(t, testDB, productID))

		_, err := store.Open(ctx, storage.ImageKey(image.FileName))
		assert.ErrorIs(t, err, storage.ErrNotFound)

		again := svc.Remove(ctx, image.ID.String())
		assert.Equal(t, common.KindNotFound, again.Kind)
	})

	t.Run("OpenReturnsContent", func(t *testing.T) {
		productID := SetupTestProduct(t, testDB)
		image := svc.Upload(ctx, productID.String(), PNGUpload("photo.png", 4096)).Payload.(*models.Image)

		_, rc, err := svc.Open(ctx, image.ID)
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Len(t, data, 4096)
	})
}
