package parser

import (
	"strings"
	"time"

	"ReviewScanner/internal/domain"
)

const (
	reviewDateLayout = "2 January 2006"
	outputDateLayout = "02/01/2006"
	// Review dates may carry a location prefix, e.g. "Reviewed in India on 14 March 2024".
	locationSeparator = " on "
)

// NormalizeDate converts review date text to DD/MM/YYYY.
// Anything that is not a "day month-name year" date yields domain.NotAvailable.
func NormalizeDate(raw string) string {
	text := strings.TrimSpace(raw)
	if i := strings.LastIndex(text, locationSeparator); i >= 0 {
		text = strings.TrimSpace(text[i+len(locationSeparator):])
	}

	parsed, err := time.Parse(reviewDateLayout, text)
	if err != nil {
		return domain.NotAvailable
	}
	return parsed.Format(outputDateLayout)
}
