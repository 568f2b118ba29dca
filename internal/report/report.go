// Package report renders batch run summaries: a YAML file for the records
// kept next to the output dataset, and a terminal table for the operator.
package report

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/bookid/internal/batch"
)

// RunInfo echoes what a run operated on.
type RunInfo struct {
	Workflow  string `yaml:"workflow"`
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	Timestamp string `yaml:"timestamp"`
}

// NewRunInfo stamps a RunInfo for the given workflow.
func NewRunInfo(workflow, input, output string) RunInfo {
	return RunInfo{
		Workflow:  workflow,
		Input:     input,
		Output:    output,
		Timestamp: time.Now().Format("2006-01-02_15-04-05"),
	}
}

type convertReport struct {
	Config  RunInfo        `yaml:"config"`
	Summary convertSummary `yaml:"summary"`
}

type convertSummary struct {
	Rows            int `yaml:"rows"`
	Resolved        int `yaml:"resolved"`
	NotFound        int `yaml:"not_found"`
	NoTitle         int `yaml:"no_title"`
	LookupErrors    int `yaml:"lookup_errors"`
	DistinctRecords int `yaml:"distinct_records"`
}

type verifyReport struct {
	Config  RunInfo       `yaml:"config"`
	Summary verifySummary `yaml:"summary"`
}

type verifySummary struct {
	Rows         int `yaml:"rows"`
	Matches      int `yaml:"matches"`
	Mismatches   int `yaml:"mismatches"`
	SearchFailed int `yaml:"search_failed"`
	CannotSearch int `yaml:"cannot_search"`
	LookupErrors int `yaml:"lookup_errors"`
}

// SaveConvertYAML writes the convert run report to path.
func SaveConvertYAML(path string, info RunInfo, summary batch.ConvertSummary) error {
	return saveYAML(path, convertReport{
		Config: info,
		Summary: convertSummary{
			Rows:            summary.Rows,
			Resolved:        summary.Resolved,
			NotFound:        summary.NotFound,
			NoTitle:         summary.NoTitle,
			LookupErrors:    summary.LookupErrors,
			DistinctRecords: summary.DistinctRecords,
		},
	})
}

// SaveVerifyYAML writes the verify run report to path.
func SaveVerifyYAML(path string, info RunInfo, summary batch.VerifySummary) error {
	return saveYAML(path, verifyReport{
		Config: info,
		Summary: verifySummary{
			Rows:         summary.Rows,
			Matches:      summary.Matches,
			Mismatches:   summary.Mismatches,
			SearchFailed: summary.SearchFailed,
			CannotSearch: summary.CannotSearch,
			LookupErrors: summary.LookupErrors,
		},
	})
}

func saveYAML(path string, report any) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// ConvertTable renders the convert summary as a terminal table.
func ConvertTable(summary batch.ConvertSummary) string {
	return renderCounts([][2]string{
		{"rows", strconv.Itoa(summary.Rows)},
		{"resolved", strconv.Itoa(summary.Resolved)},
		{"not found", strconv.Itoa(summary.NotFound)},
		{"no title", strconv.Itoa(summary.NoTitle)},
		{"lookup errors", strconv.Itoa(summary.LookupErrors)},
		{"distinct records", strconv.Itoa(summary.DistinctRecords)},
	})
}

// VerifyTable renders the verify summary as a terminal table.
func VerifyTable(summary batch.VerifySummary) string {
	return renderCounts([][2]string{
		{"rows", strconv.Itoa(summary.Rows)},
		{"match", strconv.Itoa(summary.Matches)},
		{"mismatch", strconv.Itoa(summary.Mismatches)},
		{"search failed", strconv.Itoa(summary.SearchFailed)},
		{"cannot search", strconv.Itoa(summary.CannotSearch)},
		{"lookup errors", strconv.Itoa(summary.LookupErrors)},
	})
}
