package background

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ishop/internal/jobs"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// JobScheduler runs the periodic maintenance jobs of the service.
type JobScheduler struct {
	scheduler gocron.Scheduler
	sweeper   *jobs.OrphanSweeper
	interval  time.Duration
	log       *zap.Logger
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates the scheduler and registers its jobs. Nothing runs
// until Start is called.
func NewJobScheduler(sweeper *jobs.OrphanSweeper, sweepInterval time.Duration, log *zap.Logger) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		sweeper:   sweeper,
		interval:  sweepInterval,
		log:       log.Named("scheduler"),
		jobs:      make(map[string]gocron.Job),
	}
	if err := js.registerJobs(); err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) Start() {
	js.log.Info("starting background job scheduler", zap.Int("jobs", len(js.jobs)))
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	js.log.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// JobNames lists the registered jobs.
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()
	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return names
}

func (js *JobScheduler) registerJobs() error {
	sweepJob, err := js.scheduler.NewJob(
		gocron.DurationJob(js.interval),
		gocron.NewTask(js.sweepOrphans, context.Background()),
		gocron.WithName("orphan-blob-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("create orphan sweep job: %w", err)
	}

	js.mu.Lock()
	js.jobs["orphan-blob-sweep"] = sweepJob
	js.mu.Unlock()
	return nil
}

func (js *JobScheduler) sweepOrphans(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, js.interval)
	defer cancel()

	if _, err := js.sweeper.Sweep(ctx); err != nil {
		js.log.Error("orphan sweep failed", zap.Error(err))
	}
}
