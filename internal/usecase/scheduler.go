package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ReviewScanner/internal/logging"
	"ReviewScanner/internal/ports"
)

// ResultHandler receives every successful scrape of a watched product.
type ResultHandler func(ctx context.Context, result Result) error

// Scheduler wires an interval driver with the pipeline to re-scrape one product.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	rawURL   string
	handle   ResultHandler
	logger   *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring scrapes of rawURL.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, rawURL string, handle ResultHandler, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Scheduler{driver: driver, pipeline: pipeline, rawURL: rawURL, handle: handle, logger: logger}
}

// Start validates the URL once and registers the scrape job with the driver.
// Failed runs are logged and the next tick tries again.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	if _, err := s.pipeline.Resolve(s.rawURL); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	job := func(trigger time.Time) {
		result, err := s.pipeline.Scrape(ctx, s.rawURL)
		if err != nil {
			s.logger.WarnContext(ctx, "scheduled scrape failed", "trigger", trigger, "error", err)
			return
		}
		if s.handle == nil {
			return
		}
		if err := s.handle(ctx, result); err != nil {
			s.logger.ErrorContext(ctx, "handle scrape result", "run_id", result.RunID, "error", err)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
