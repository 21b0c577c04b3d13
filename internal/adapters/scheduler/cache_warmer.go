// Package scheduler runs the background jobs that keep the forecast cache warm
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"weatherdialog.app/internal/ports"
	"weatherdialog.app/pkg/errors"
)

const (
	defaultPrimeInterval = 10 * time.Minute
	purgeInterval        = time.Hour
	jobTimeout           = 30 * time.Second
)

// ForecastRefresher refreshes the cached forecast of the device location
type ForecastRefresher interface {
	RefreshDeviceForecast(ctx context.Context) error
}

// ExpiredEntryPurger deletes cache entries that outlived their TTL. Only
// backends that keep expired rows around need it.
type ExpiredEntryPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// WarmupRecorder counts warm-up runs
type WarmupRecorder interface {
	RecordWarmup(success bool)
}

// CacheWarmer primes the device forecast on an interval so the first
// question after an idle period is answered from cache
type CacheWarmer struct {
	scheduler *gocron.Scheduler
	refresher ForecastRefresher
	purger    ExpiredEntryPurger
	recorder  WarmupRecorder
	logger    ports.Logger
	interval  time.Duration
}

// CacheWarmerOptions holds the dependencies of a CacheWarmer. Purger and
// Recorder are optional.
type CacheWarmerOptions struct {
	Refresher ForecastRefresher
	Purger    ExpiredEntryPurger
	Recorder  WarmupRecorder
	Logger    ports.Logger
	Interval  time.Duration
}

// NewCacheWarmer creates a new cache warmer
func NewCacheWarmer(opts CacheWarmerOptions) (*CacheWarmer, error) {
	if opts.Refresher == nil {
		return nil, errors.NewValidationError("forecast refresher is required")
	}
	if opts.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultPrimeInterval
	}

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	return &CacheWarmer{
		scheduler: s,
		refresher: opts.Refresher,
		purger:    opts.Purger,
		recorder:  opts.Recorder,
		logger:    opts.Logger,
		interval:  interval,
	}, nil
}

// Start schedules the jobs and starts the underlying scheduler. The first
// warm-up runs right away.
func (w *CacheWarmer) Start() error {
	minutes := int(w.interval.Minutes())
	if minutes <= 0 {
		minutes = 1
	}

	if _, err := w.scheduler.Every(minutes).Minutes().Do(w.Warm); err != nil {
		return errors.NewConfigurationError("failed to schedule cache warm-up", err)
	}
	if w.purger != nil {
		if _, err := w.scheduler.Every(int(purgeInterval.Minutes())).Minutes().Do(w.Purge); err != nil {
			return errors.NewConfigurationError("failed to schedule cache purge", err)
		}
	}

	w.logger.Info("Cache warmer started",
		ports.F("interval_minutes", minutes),
		ports.F("purge", w.purger != nil))
	w.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs
func (w *CacheWarmer) Stop() {
	if w.scheduler != nil {
		w.scheduler.Stop()
	}
}

// Warm refreshes the device forecast once
func (w *CacheWarmer) Warm() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	err := w.refresher.RefreshDeviceForecast(ctx)
	if w.recorder != nil {
		w.recorder.RecordWarmup(err == nil)
	}
	if err != nil {
		w.logger.Warn("Cache warm-up failed", ports.F("error", err))
		return
	}
	w.logger.Debug("Cache warm-up completed", ports.F("duration_ms", time.Since(start).Milliseconds()))
}

// Purge deletes expired cache entries once
func (w *CacheWarmer) Purge() {
	if w.purger == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	removed, err := w.purger.PurgeExpired(ctx)
	if err != nil {
		w.logger.Warn("Expired cache purge failed", ports.F("error", err))
		return
	}
	if removed > 0 {
		w.logger.Info("Expired cache entries purged", ports.F("removed", removed))
	}
}
