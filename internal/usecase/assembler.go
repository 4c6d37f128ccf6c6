package usecase

import "ReviewScanner/internal/domain"

// Assemble projects records onto the single-column review table.
// Review is title and body joined by one space, so an empty part leaves a leading or
// trailing space behind.
func Assemble(records []domain.ReviewRecord) domain.ReviewTable {
	table := make(domain.ReviewTable, 0, len(records))
	for _, r := range records {
		table = append(table, domain.ReviewOutputRow{Review: r.Title + " " + r.Body})
	}
	return table
}
