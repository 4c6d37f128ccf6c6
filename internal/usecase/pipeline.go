package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/logging"
	"ReviewScanner/internal/ports"
)

var tracer = otel.Tracer("reviewscanner/usecase")

// PipelineDeps wires all driven adapters into the scraping pipeline.
type PipelineDeps struct {
	Resolver  ports.URLResolver
	Fetcher   ports.PageFetcher
	Extractor ports.ReviewExtractor
	Logger    *slog.Logger
}

// Pipeline implements the resolve -> fetch -> extract -> assemble workflow.
// It keeps no state between calls and is safe for concurrent use.
type Pipeline struct {
	resolver  ports.URLResolver
	fetcher   ports.PageFetcher
	extractor ports.ReviewExtractor
	logger    *slog.Logger
}

// Result is the outcome of one scrape. Records keeps every extracted field;
// Table is the single-column projection consumed by sentiment analysis.
type Result struct {
	RunID       string
	Target      domain.Target
	PageTitle   string
	Records     []domain.ReviewRecord
	Table       domain.ReviewTable
	Diagnostics []domain.Diagnostic
}

// HasDiagnostic reports whether d was raised during the run.
func (r Result) HasDiagnostic(d domain.Diagnostic) bool {
	for _, got := range r.Diagnostics {
		if got == d {
			return true
		}
	}
	return false
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Pipeline{
		resolver:  deps.Resolver,
		fetcher:   deps.Fetcher,
		extractor: deps.Extractor,
		logger:    logger,
	}
}

// Resolve validates rawURL without touching the network.
func (p *Pipeline) Resolve(rawURL string) (domain.Target, error) {
	if p.resolver == nil {
		return domain.Target{}, fmt.Errorf("pipeline has no resolver")
	}
	return p.resolver.Resolve(rawURL)
}

// Scrape runs the pipeline for one product URL.
// Errors wrap domain.ErrInvalidURL or *domain.FetchError; an empty page is not an error
// and is reported through domain.DiagnosticNoReviews.
func (p *Pipeline) Scrape(ctx context.Context, rawURL string) (Result, error) {
	if p.fetcher == nil || p.extractor == nil {
		return Result{}, fmt.Errorf("pipeline is not configured")
	}

	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)

	ctx, span := tracer.Start(ctx, "pipeline:Scrape")
	defer span.End()
	span.SetAttributes(attribute.String("run_id", runID))

	target, err := p.Resolve(rawURL)
	if err != nil {
		span.SetStatus(codes.Error, "invalid product url")
		logger.WarnContext(ctx, "invalid product url format", "url", rawURL)
		return Result{}, fmt.Errorf("resolve: %w", err)
	}
	span.SetAttributes(attribute.String("product_id", target.Product.ProductID))
	logger.InfoContext(ctx, "fetching reviews", "reviews_url", target.ReviewsURL)

	page, err := p.fetcher.Fetch(ctx, target.ReviewsURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return Result{}, fmt.Errorf("fetch reviews page: %w", err)
	}

	records := p.extractor.Extract(page.Document)

	result := Result{
		RunID:       runID,
		Target:      target,
		PageTitle:   page.Title,
		Records:     records,
		Table:       Assemble(records),
		Diagnostics: append([]domain.Diagnostic(nil), page.Diagnostics...),
	}
	if len(records) == 0 {
		result.Diagnostics = append(result.Diagnostics, domain.DiagnosticNoReviews)
	}

	logger.InfoContext(ctx, "scrape finished",
		"product_id", target.Product.ProductID,
		"reviews", len(result.Table),
		"diagnostics", result.Diagnostics)

	return result, nil
}
