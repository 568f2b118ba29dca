package cmd

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bookid/internal/batch"
	"github.com/lehigh-university-libraries/bookid/internal/config"
	"github.com/lehigh-university-libraries/bookid/internal/dataset"
	"github.com/lehigh-university-libraries/bookid/internal/naver"
	"github.com/lehigh-university-libraries/bookid/internal/report"
)

func newConvertCmd(configPath *string) *cobra.Command {
	var input string
	var output string
	var reportPath string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Resolve 13-digit identifiers for partial book records",
		Long: `Reads a book list with columns title, author, publisher, pub_year, isbn and
overwrites the isbn column with the resolved 13-digit identifier.

Rows without a title are marked "no title"; rows the index cannot resolve are
marked "not found". Identical records are resolved once per run.`,
		Example: `  # Resolve a CSV list
  bookid convert --input books.csv --output books_resolved.csv

  # Keep a YAML report next to the output
  bookid convert --input books.parquet --output resolved.parquet --report run.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if err := cfg.RequireCredentials(); err != nil {
				return err
			}

			rows, err := dataset.LoadConvert(input)
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}
			slog.Info("Dataset loaded", "input", input, "rows", len(rows))

			runner := batch.NewConvertRunner(newSearchClient(cfg), cfg.PacingDelay())
			resolved, summary := runner.Run(cmd.Context(), rows)

			if err := dataset.SaveConvert(output, resolved); err != nil {
				return fmt.Errorf("failed to save results: %w", err)
			}

			fmt.Println(report.ConvertTable(summary))
			fmt.Printf("\nResults saved to: %s\n", output)

			if reportPath != "" {
				info := report.NewRunInfo("convert", input, output)
				if err := report.SaveConvertYAML(reportPath, info, summary); err != nil {
					return err
				}
				fmt.Printf("Report saved to: %s\n", reportPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Path to the input book list (.csv, .jsonl, .parquet)")
	cmd.Flags().StringVar(&output, "output", "", "Path for the updated book list")
	cmd.Flags().StringVar(&reportPath, "report", "", "Optional path for a YAML run report")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// newSearchClient builds the API client shared by both workflows.
func newSearchClient(cfg config.Config) *naver.Client {
	return naver.NewClient(cfg.ClientID, cfg.ClientSecret,
		naver.WithBaseURL(cfg.Search.BaseURL),
		naver.WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
		naver.WithRetryPolicy(cfg.Search.RetryMaxAttempts, cfg.RetryInterval()),
	)
}
