package jobs

import (
	"context"
	"errors"
	"strings"
	"time"

	"ishop/internal/metrics"
	"ishop/internal/storage"

	"go.uber.org/zap"
)

const sweepBatchSize = 500

// FileNameLookup reports which blob file names have a catalog row.
type FileNameLookup interface {
	ExistingFileNames(ctx context.Context, fileNames []string) (map[string]bool, error)
}

// OrphanSweeper deletes image blobs that have no catalog row. Blobs younger
// than the grace period are skipped so uploads still between write and
// commit are not touched.
type OrphanSweeper struct {
	store   storage.BlobStore
	catalog FileNameLookup
	grace   time.Duration
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewOrphanSweeper(store storage.BlobStore, catalog FileNameLookup, grace time.Duration, log *zap.Logger, m *metrics.Metrics) *OrphanSweeper {
	return &OrphanSweeper{
		store:   store,
		catalog: catalog,
		grace:   grace,
		log:     log.Named("orphan-sweeper"),
		metrics: m,
		now:     time.Now,
	}
}

// Sweep runs one reconciliation pass and returns the number of blobs removed.
// Individual delete failures are logged and do not stop the pass.
func (s *OrphanSweeper) Sweep(ctx context.Context) (int, error) {
	prefix := storage.ImagesPrefix + "/"
	objects, err := s.store.List(ctx, prefix)
	if err != nil {
		return 0, err
	}

	// catalog file names are keys relative to the images folder
	cutoff := s.now().Add(-s.grace)
	keys := make(map[string]string)
	var candidates []string
	for _, obj := range objects {
		if obj.ModTime.After(cutoff) || !strings.HasPrefix(obj.Key, prefix) {
			continue
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		keys[name] = obj.Key
		candidates = append(candidates, name)
	}

	removed := 0
	for start := 0; start < len(candidates); start += sweepBatchSize {
		end := min(start+sweepBatchSize, len(candidates))
		batch := candidates[start:end]

		known, err := s.catalog.ExistingFileNames(ctx, batch)
		if err != nil {
			return removed, err
		}
		for _, name := range batch {
			if known[name] {
				continue
			}
			key := keys[name]
			if err := s.store.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
				s.log.Warn("failed to delete orphan blob", zap.String("key", key), zap.Error(err))
				continue
			}
			removed++
			s.log.Info("orphan blob deleted", zap.String("key", key))
		}
	}

	s.metrics.AddOrphansRemoved(removed)
	s.log.Info("orphan sweep finished", zap.Int("scanned", len(objects)), zap.Int("candidates", len(candidates)), zap.Int("removed", removed))
	return removed, nil
}
