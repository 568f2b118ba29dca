package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bookid/internal/batch"
	"github.com/lehigh-university-libraries/bookid/internal/config"
	"github.com/lehigh-university-libraries/bookid/internal/dataset"
	"github.com/lehigh-university-libraries/bookid/internal/report"
)

func newVerifyCmd(configPath *string) *cobra.Command {
	var input string
	var output string
	var reportPath string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Reconcile claimed book metadata against canonical records",
		Long: `Reads a book list with columns isbn10, isbn13, title, pubdate, publisher,
author, price; fetches the canonical record for each row's isbn13; and writes
two extra columns: a verdict (match, mismatch, cannot_search, search_failed)
and the comma-joined list of mismatched fields.

Rows without a full-length identifier are marked cannot_search without any
lookup.`,
		Example: `  # Verify a CSV list
  bookid verify --input books.csv --output books_verified.csv

  # Keep a YAML report next to the output
  bookid verify --input books.jsonl --output verified.jsonl --report run.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if err := cfg.RequireCredentials(); err != nil {
				return err
			}

			rows, err := dataset.LoadVerify(input)
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}
			slog.Info("Dataset loaded", "input", input, "rows", len(rows))

			runner := batch.NewVerifyRunner(newSearchClient(cfg), cfg.PacingDelay())
			verified, summary := runner.Run(cmd.Context(), rows)

			if err := dataset.SaveVerify(output, verified); err != nil {
				return fmt.Errorf("failed to save results: %w", err)
			}

			fmt.Println(report.VerifyTable(summary))
			fmt.Printf("\nResults saved to: %s\n", output)

			if reportPath != "" {
				info := report.NewRunInfo("verify", input, output)
				if err := report.SaveVerifyYAML(reportPath, info, summary); err != nil {
					return err
				}
				fmt.Printf("Report saved to: %s\n", reportPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Path to the input book list (.csv, .jsonl, .parquet)")
	cmd.Flags().StringVar(&output, "output", "", "Path for the verified book list")
	cmd.Flags().StringVar(&reportPath, "report", "", "Optional path for a YAML run report")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
