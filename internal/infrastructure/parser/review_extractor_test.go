package parser

import (
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"ReviewScanner/internal/config"
	"ReviewScanner/internal/domain"
)

func newDocument(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func newExtractor(t *testing.T) *ReviewExtractor {
	t.Helper()

	e, err := NewReviewExtractor(config.DefaultSelectors(), nil)
	require.NoError(t, err)
	return e
}

func TestExtractListingPage(t *testing.T) {
	t.Parallel()

	raw, err := os.ReadFile("testdata/reviews.html")
	require.NoError(t, err)

	records := newExtractor(t).Extract(newDocument(t, string(raw)))

	want := []domain.ReviewRecord{
		{
			ReviewerName: "Ravi Kumar",
			StarRating:   "5.0",
			Title:        "Excellent battery life",
			ReviewDate:   "14/03/2024",
			Body:         "Lasts two days on a single charge.",
		},
		{
			ReviewerName: "Anita",
			StarRating:   "2.0",
			Title:        "Stopped working",
			ReviewDate:   "02/01/2023",
			Body:         "Died after a week.",
		},
		{
			ReviewerName: domain.NotAvailable,
			StarRating:   domain.NotAvailable,
			Title:        "",
			ReviewDate:   domain.NotAvailable,
			Body:         "Okay for the price.",
		},
	}

	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("unexpected records (-want +got):\n%s", diff)
	}
}

func TestExtractMissingFieldsUseDefaults(t *testing.T) {
	t.Parallel()

	doc := newDocument(t, `
	<div data-hook="review">
	  <span class="a-profile-name">Only Name</span>
	</div>
	<div data-hook="review">
	  <i data-hook="review-star-rating"><span>4.0 out of 5 stars</span></i>
	  <span data-hook="review-title">Title only</span>
	</div>`)

	records := newExtractor(t).Extract(doc)
	require.Len(t, records, 2)

	require.Equal(t, domain.ReviewRecord{
		ReviewerName: "Only Name",
		StarRating:   domain.NotAvailable,
		ReviewDate:   domain.NotAvailable,
	}, records[0])

	require.Equal(t, domain.ReviewRecord{
		ReviewerName: domain.NotAvailable,
		StarRating:   "4.0",
		Title:        "Title only",
		ReviewDate:   domain.NotAvailable,
	}, records[1])
}

func TestExtractPrefersFirstStarMarker(t *testing.T) {
	t.Parallel()

	doc := newDocument(t, `
	<div data-hook="review">
	  <i data-hook="cmps-review-star-rating">1.0 out of 5 stars</i>
	  <i data-hook="review-star-rating">3.0 out of 5 stars</i>
	</div>`)

	records := newExtractor(t).Extract(doc)
	require.Len(t, records, 1)
	require.Equal(t, "3.0", records[0].StarRating)
}

func TestExtractNoReviews(t *testing.T) {
	t.Parallel()

	e := newExtractor(t)

	records := e.Extract(newDocument(t, `<html><head><title>Robot Check</title></head><body></body></html>`))
	require.NotNil(t, records)
	require.Empty(t, records)

	require.Empty(t, e.Extract(nil))
}

func TestExtractCustomSelectorTable(t *testing.T) {
	t.Parallel()

	selectors := config.DefaultSelectors()
	selectors["review"] = []string{"li.customer-review", `div[data-hook="review"]`}
	selectors["body"] = []string{"p.text"}

	e, err := NewReviewExtractor(selectors, nil)
	require.NoError(t, err)

	records := e.Extract(newDocument(t, `
	<ul>
	  <li class="customer-review"><p class="text">New layout body</p></li>
	  <li class="customer-review"><p class="text">Second body</p></li>
	</ul>`))

	require.Len(t, records, 2)
	require.Equal(t, "New layout body", records[0].Body)
	require.Equal(t, "Second body", records[1].Body)
}

func TestNewReviewExtractorValidation(t *testing.T) {
	t.Parallel()

	_, err := NewReviewExtractor(map[string][]string{"body": {"p"}}, nil)
	require.Error(t, err)

	_, err = NewReviewExtractor(map[string][]string{"review": {"div[data-hook="}}, nil)
	require.Error(t, err)
}
