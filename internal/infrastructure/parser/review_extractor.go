package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/logging"
	"ReviewScanner/internal/observability"
	"ReviewScanner/internal/ports"
)

// starRatingCut marks where the descriptive tail of a rating starts ("4.0 out of 5 stars").
const starRatingCut = " out"

// ReviewExtractor pulls review records out of a listing page using a selector table.
type ReviewExtractor struct {
	selectors map[domain.Field][]string
	logger    *slog.Logger
}

var _ ports.ReviewExtractor = (*ReviewExtractor)(nil)

// NewReviewExtractor validates the selector table. Every field maps to candidate selectors
// tried in order; the "review" entry locates the review containers and is required.
func NewReviewExtractor(selectors map[string][]string, logger *slog.Logger) (*ReviewExtractor, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	table := make(map[domain.Field][]string, len(selectors))
	for name, candidates := range selectors {
		for _, sel := range candidates {
			if _, err := cascadia.Compile(sel); err != nil {
				return nil, fmt.Errorf("selector %s %q: %w", name, sel, err)
			}
		}
		table[domain.Field(name)] = append([]string(nil), candidates...)
	}

	if len(table[domain.FieldReview]) == 0 {
		return nil, fmt.Errorf("selector table has no %q entry", domain.FieldReview)
	}

	return &ReviewExtractor{selectors: table, logger: logger}, nil
}

// Extract returns one record per review container in document order.
// An empty slice (never nil) means the page had no reviews.
func (e *ReviewExtractor) Extract(doc *goquery.Document) []domain.ReviewRecord {
	records := []domain.ReviewRecord{}
	if doc == nil {
		return records
	}

	boxes := e.containers(doc.Selection)
	if boxes.Length() == 0 {
		e.logger.Info("no reviews found on the page")
		return records
	}

	boxes.Each(func(_ int, box *goquery.Selection) {
		records = append(records, e.parseReview(box))
	})

	observability.ObserveExtracted(len(records))
	e.logger.Debug("extracted reviews", "count", len(records))
	return records
}

func (e *ReviewExtractor) containers(root *goquery.Selection) *goquery.Selection {
	for _, sel := range e.selectors[domain.FieldReview] {
		if found := root.Find(sel); found.Length() > 0 {
			return found
		}
	}
	return root.Find(e.selectors[domain.FieldReview][0])
}

// parseReview looks every field up independently; a missing one never affects the others.
func (e *ReviewExtractor) parseReview(box *goquery.Selection) domain.ReviewRecord {
	record := domain.ReviewRecord{
		ReviewerName: domain.NotAvailable,
		StarRating:   domain.NotAvailable,
		ReviewDate:   domain.NotAvailable,
	}

	if name, ok := e.lookup(box, domain.FieldReviewerName); ok {
		record.ReviewerName = name
	}

	if stars, ok := e.lookup(box, domain.FieldStarRating); ok {
		record.StarRating, _, _ = strings.Cut(stars, starRatingCut)
	}

	if title, ok := e.lookup(box, domain.FieldTitle); ok {
		record.Title = title
	}

	if date, ok := e.lookup(box, domain.FieldReviewDate); ok {
		record.ReviewDate = NormalizeDate(date)
	}

	if body, ok := e.lookup(box, domain.FieldBody); ok {
		record.Body = body
	}

	return record
}

func (e *ReviewExtractor) lookup(box *goquery.Selection, field domain.Field) (string, bool) {
	for _, sel := range e.selectors[field] {
		if match := box.Find(sel).First(); match.Length() > 0 {
			return strings.TrimSpace(match.Text()), true
		}
	}
	observability.ObserveFieldDefault(string(field))
	return "", false
}
