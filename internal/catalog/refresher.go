package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amartov/kinolog/internal/metrics"
	"github.com/amartov/kinolog/internal/repository"
	"github.com/robfig/cron/v3"
)

// Refresher periodically folds user watched ratings back into the catalog's
// movie ratings. It is the only writer the catalog has after seeding.
type Refresher struct {
	movies repository.MovieRepository
	logger *slog.Logger
	cron   *cron.Cron
}

func NewRefresher(movies repository.MovieRepository, logger *slog.Logger) *Refresher {
	return &Refresher{
		movies: movies,
		logger: logger.With("component", "rating_refresher"),
		cron:   cron.New(),
	}
}

// Start registers the refresh job with the given cron spec (standard
// 5-field format) and starts the scheduler in its own goroutine.
func (r *Refresher) Start(spec string) error {
	if _, err := r.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := r.RunOnce(ctx); err != nil {
			r.logger.Error("rating refresh", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule rating refresh: %w", err)
	}
	r.cron.Start()
	r.logger.Info("rating refresher started", "cron", spec)
	return nil
}

// Stop halts the scheduler and waits for a running cycle to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}

// RunOnce executes a single refresh cycle.
func (r *Refresher) RunOnce(ctx context.Context) error {
	start := time.Now()
	updated, err := r.movies.RefreshRatings(ctx)
	if err != nil {
		return err
	}

	metrics.RatingRefreshDuration.Observe(time.Since(start).Seconds())
	metrics.RatingRefreshUpdatedTotal.Add(float64(updated))
	r.logger.Info("rating refresh complete", "updated", updated, "took", time.Since(start))
	return nil
}
