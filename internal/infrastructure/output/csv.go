package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"ReviewScanner/internal/domain"
)

// RecordColumns is the header of the full-record view.
var RecordColumns = []string{"Name", "Stars", "Title", "Date", "Description"}

// WriteCSV writes the single-column review table with a "Review" header.
func WriteCSV(w io.Writer, table domain.ReviewTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{domain.ReviewColumn}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range table {
		if err := cw.Write([]string{row.Review}); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRecordsCSV writes every extracted field, one review per line.
func WriteRecordsCSV(w io.Writer, records []domain.ReviewRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RecordColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(recordRow(r)); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func recordRow(r domain.ReviewRecord) []string {
	return []string{r.ReviewerName, r.StarRating, r.Title, r.ReviewDate, r.Body}
}
