package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const (
	// CategoryWarmInterval keeps the cached category list fresh well inside its TTL
	CategoryWarmInterval = 5 * time.Minute
	categoryWarmTimeout  = 30 * time.Second
)

// CategoryWarmer reloads the active category list into the cache
type CategoryWarmer interface {
	WarmCache(ctx context.Context) error
}

// Scheduler runs the periodic maintenance jobs
type Scheduler struct {
	scheduler gocron.Scheduler
	warmer    CategoryWarmer
	log       *zap.Logger
}

// NewScheduler creates the scheduler and registers its jobs. Nothing runs
// until Start is called.
func NewScheduler(warmer CategoryWarmer, interval time.Duration, log *zap.Logger) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	s := &Scheduler{
		scheduler: scheduler,
		warmer:    warmer,
		log:       log,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.warmCategories),
		gocron.WithName("category-cache-warmup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("failed to create category warm-up job: %w", err)
	}

	return s, nil
}

// JobNames lists the registered jobs
func (s *Scheduler) JobNames() []string {
	jobs := s.scheduler.Jobs()
	names := make([]string, 0, len(jobs))
	for _, job := range jobs {
		names = append(names, job.Name())
	}
	return names
}

func (s *Scheduler) Start() {
	s.log.Info("Starting background job scheduler", zap.Int("jobs", len(s.scheduler.Jobs())))
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	s.log.Info("Stopping background job scheduler")
	return s.scheduler.Shutdown()
}

// warmCategories is the task body; failures are logged and retried on the next tick
func (s *Scheduler) warmCategories() {
	ctx, cancel := context.WithTimeout(context.Background(), categoryWarmTimeout)
	defer cancel()

	start := time.Now()
	if err := s.warmer.WarmCache(ctx); err != nil {
		s.log.Warn("Category cache warm-up failed", zap.Error(err))
		return
	}
	s.log.Debug("Category cache warmed", zap.Duration("took", time.Since(start)))
}
