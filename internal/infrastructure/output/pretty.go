package output

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"ReviewScanner/internal/domain"
)

const maxCellWidth = 80

// RenderTable prints the review table for a terminal.
func RenderTable(w io.Writer, rows domain.ReviewTable) {
	t := newWriter(w)
	t.AppendHeader(table.Row{"#", domain.ReviewColumn})
	for i, row := range rows {
		t.AppendRow(table.Row{i + 1, row.Review})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Name: domain.ReviewColumn, WidthMax: maxCellWidth}})
	t.Render()
}

// RenderRecords prints the full-record view for a terminal.
func RenderRecords(w io.Writer, records []domain.ReviewRecord) {
	t := newWriter(w)
	header := table.Row{"#"}
	for _, c := range RecordColumns {
		header = append(header, c)
	}
	t.AppendHeader(header)
	for i, r := range records {
		row := table.Row{i + 1}
		for _, v := range recordRow(r) {
			row = append(row, v)
		}
		t.AppendRow(row)
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Title", WidthMax: maxCellWidth / 2},
		{Name: "Description", WidthMax: maxCellWidth},
	})
	t.Render()
}

func newWriter(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}
