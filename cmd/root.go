package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var configPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "bookid",
		Short: "Resolve and verify 13-digit book identifiers via the Naver Book Search API",
		Long: `Bookid works through tabular book lists (CSV, JSONL, or Parquet) in two ways.

The convert workflow resolves a canonical 13-digit identifier for records that
only carry partial metadata (title, author, publisher, year). The verify
workflow fetches the canonical record for each row's identifier and reconciles
the claimed metadata against it, field by field.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML configuration file")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(newConvertCmd(&configPath))
	cmd.AddCommand(newVerifyCmd(&configPath))

	return cmd
}
