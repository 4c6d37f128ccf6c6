package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ReviewScanner/internal/infrastructure/output"
	"ReviewScanner/internal/usecase"
)

var (
	scrapeOut  string
	scrapeFull bool
)

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeOut, "out", "o", "", "write CSV to this file instead of printing a table")
	scrapeCmd.Flags().BoolVar(&scrapeFull, "full", false, "emit every record field, not only the Review column")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <product-url> [--out <file.csv>] [--full]",
	Short: "Fetches the first reviews page of a product and prints its reviews.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := loadApp()
		if err != nil {
			return err
		}

		result, err := application.Scrape(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		printTitle(cmd.ErrOrStderr(), result)

		if scrapeOut != "" {
			if err := writeSnapshot(scrapeOut, result, scrapeFull); err != nil {
				return err
			}
		} else if len(result.Table) > 0 {
			if scrapeFull {
				output.RenderRecords(cmd.OutOrStdout(), result.Records)
			} else {
				output.RenderTable(cmd.OutOrStdout(), result.Table)
			}
		}

		if len(result.Table) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no reviews found")
		}
		return nil
	},
}

func printTitle(w io.Writer, result usecase.Result) {
	if result.PageTitle == "" {
		fmt.Fprintln(w, "Could not fetch page title, possibly blocked or wrong page")
		return
	}
	fmt.Fprintf(w, "Page title: %s\n", result.PageTitle)
}

// writeSnapshot replaces path atomically with the CSV rendering of result.
func writeSnapshot(path string, result usecase.Result, full bool) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".reviews-*.csv")
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if full {
		err = output.WriteRecordsCSV(tmp, result.Records)
	} else {
		err = output.WriteCSV(tmp, result.Table)
	}
	if err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
