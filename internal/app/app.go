package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"ReviewScanner/internal/config"
	"ReviewScanner/internal/infrastructure/fetcher"
	"ReviewScanner/internal/infrastructure/httpapi"
	"ReviewScanner/internal/infrastructure/parser"
	"ReviewScanner/internal/infrastructure/scheduler"
	"ReviewScanner/internal/logging"
	"ReviewScanner/internal/observability"
	"ReviewScanner/internal/resolver"
	"ReviewScanner/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
}

// New validates cfg and builds the pipeline with its adapters.
// opts may override fetcher options before the client is built (tests point Transport at a local server).
func New(cfg config.Config, baseLogger *slog.Logger, opts ...func(*fetcher.Options)) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	res, err := resolver.New(cfg.Resolver)
	if err != nil {
		return nil, fmt.Errorf("build resolver: %w", err)
	}

	extractor, err := parser.NewReviewExtractor(cfg.Selectors, baseLogger.With("component", "extractor"))
	if err != nil {
		return nil, fmt.Errorf("build extractor: %w", err)
	}

	fetchOpts := fetcher.OptionsFromConfig(cfg.Fetcher, baseLogger.With("component", "fetcher"))
	for _, opt := range opts {
		opt(&fetchOpts)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Resolver:  res,
		Fetcher:   fetcher.New(fetchOpts),
		Extractor: extractor,
		Logger:    baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, logger: baseLogger, pipeline: pipeline}, nil
}

func (a *Application) Pipeline() *usecase.Pipeline { return a.pipeline }

func (a *Application) Config() config.Config { return a.cfg }

func (a *Application) Logger() *slog.Logger { return a.logger }

// Scrape performs a single pipeline execution.
func (a *Application) Scrape(ctx context.Context, rawURL string) (usecase.Result, error) {
	return a.pipeline.Scrape(ctx, rawURL)
}

// Handler returns the HTTP API including /metrics.
func (a *Application) Handler() http.Handler {
	srv := httpapi.New(a.logger.With("component", "http"), a.cfg.Server.RequestTimeout)
	srv.MountHandlers(&httpapi.Handlers{Scraper: a.pipeline, Logger: a.logger.With("component", "http")})
	srv.Mount("/metrics", observability.MetricsHandler(observability.Registry()))
	return srv.Mux()
}

// Watcher re-scrapes rawURL every interval and hands each result to handle.
// A non-positive interval falls back to watch.interval from the config.
func (a *Application) Watcher(rawURL string, interval time.Duration, handle usecase.ResultHandler) *usecase.Scheduler {
	if interval <= 0 {
		interval = a.cfg.Watch.Interval
	}
	return usecase.NewScheduler(
		scheduler.NewIntervalScheduler(interval),
		a.pipeline,
		rawURL,
		handle,
		a.logger.With("component", "watch"),
	)
}
