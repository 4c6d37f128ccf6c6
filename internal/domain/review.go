package domain

// NotAvailable is the placeholder for an absent or unparseable metadata field.
// It is distinct from an empty string, which means the field was present but blank.
const NotAvailable = "N/A"

// ReviewColumn is the only column of the assembled output table.
const ReviewColumn = "Review"

// ProductURL is a product page address that matched the recognized site pattern.
type ProductURL struct {
	Raw       string
	Base      string
	ProductID string
}

// Target is the result of resolving a product URL: the product and its reviews listing endpoint.
type Target struct {
	Product    ProductURL
	ReviewsURL string
}

// ReviewRecord holds the fields extracted from one review region.
type ReviewRecord struct {
	ReviewerName string `json:"reviewerName"`
	StarRating   string `json:"starRating"`
	Title        string `json:"title"`
	ReviewDate   string `json:"reviewDate"`
	Body         string `json:"body"`
}

// ReviewOutputRow is a single row of the sentiment-analysis table.
type ReviewOutputRow struct {
	Review string `json:"Review"`
}

// ReviewTable keeps rows in document order; duplicates are preserved.
type ReviewTable []ReviewOutputRow

// Field names a review attribute located through the selector table.
type Field string

const (
	FieldReview       Field = "review"
	FieldReviewerName Field = "reviewerName"
	FieldStarRating   Field = "starRating"
	FieldTitle        Field = "title"
	FieldReviewDate   Field = "reviewDate"
	FieldBody         Field = "body"
)

// RecordFields lists the per-review fields in extraction order.
var RecordFields = []Field{FieldReviewerName, FieldStarRating, FieldTitle, FieldReviewDate, FieldBody}

// Diagnostic is a non-fatal signal raised while fetching or extracting a page.
type Diagnostic string

const (
	// DiagnosticMissingTitle marks a document without a page title (blocked or wrong page).
	DiagnosticMissingTitle Diagnostic = "missing_page_title"
	// DiagnosticBlocked marks a page whose title looks like a bot check.
	DiagnosticBlocked Diagnostic = "blocked_page"
	// DiagnosticNoReviews marks a page with zero review regions.
	DiagnosticNoReviews Diagnostic = "no_reviews"
)
