package ports

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ReviewScanner/internal/domain"
)

// Page is a fetched and parsed reviews listing.
type Page struct {
	Document    *goquery.Document
	Title       string
	StatusCode  int
	Diagnostics []domain.Diagnostic
}

// URLResolver turns user input into a fetchable reviews endpoint.
type URLResolver interface {
	Resolve(raw string) (domain.Target, error)
}

// PageFetcher performs one best-effort GET of a reviews page.
type PageFetcher interface {
	Fetch(ctx context.Context, reviewsURL string) (Page, error)
}

// ReviewExtractor walks a parsed document and pulls out review records in document order.
type ReviewExtractor interface {
	Extract(doc *goquery.Document) []domain.ReviewRecord
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
