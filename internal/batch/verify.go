package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lehigh-university-libraries/bookid/internal/dataset"
	"github.com/lehigh-university-libraries/bookid/internal/reconcile"
)

// VerifySummary counts the outcomes of one verify run. LookupErrors rows are
// also included in SearchFailed, since that is the verdict written for them.
type VerifySummary struct {
	Rows         int
	Matches      int
	Mismatches   int
	SearchFailed int
	CannotSearch int
	LookupErrors int
}

// VerifyRunner reconciles every row of a verify dataset against the index.
type VerifyRunner struct {
	comparator *reconcile.Comparator
	pacing     time.Duration
	sleeper    func(time.Duration)
}

// NewVerifyRunner builds a runner over the supplied fetcher.
func NewVerifyRunner(fetcher reconcile.Fetcher, pacing time.Duration, opts ...Option) *VerifyRunner {
	o := buildOptions(opts)
	return &VerifyRunner{
		comparator: reconcile.NewComparator(fetcher),
		pacing:     pacing,
		sleeper:    o.sleeper,
	}
}

// Run processes the rows in order, filling the verdict and mismatched-fields
// columns, and returns the updated copy plus a summary. Hard lookup failures
// are recorded as search_failed on their own row; the batch continues.
func (r *VerifyRunner) Run(ctx context.Context, rows []dataset.VerifyRow) ([]dataset.VerifyRow, VerifySummary) {
	runID := uuid.NewString()
	slog.Info("Starting verify run", "run_id", runID, "rows", len(rows))

	out := make([]dataset.VerifyRow, len(rows))
	copy(out, rows)

	summary := VerifySummary{Rows: len(rows)}
	for i := range out {
		row := &out[i]
		slog.Debug("Processing row", "run_id", runID, "progress", fmt.Sprintf("%d/%d", i+1, len(out)), "isbn13", row.ISBN13)

		rec := reconcile.Record{
			ISBN10:    row.ISBN10,
			ISBN13:    row.ISBN13,
			Title:     row.Title,
			Author:    row.Author,
			Publisher: row.Publisher,
			Price:     row.Price,
			Pubdate:   row.Pubdate,
		}

		result, err := r.comparator.Reconcile(ctx, rec)
		if err != nil {
			slog.Warn("Reconciliation failed", "run_id", runID, "isbn13", row.ISBN13, "err", err)
			row.Verdict = reconcile.VerdictSearchFailed.String()
			row.MismatchedFields = ""
			summary.SearchFailed++
			summary.LookupErrors++
			r.sleeper(r.pacing)
			continue
		}

		row.Verdict = result.Verdict.String()
		row.MismatchedFields = result.MismatchList()

		switch result.Verdict {
		case reconcile.VerdictMatch:
			summary.Matches++
		case reconcile.VerdictMismatch:
			summary.Mismatches++
		case reconcile.VerdictSearchFailed:
			summary.SearchFailed++
		case reconcile.VerdictCannotSearch:
			summary.CannotSearch++
			// No lookup happened, so no pacing either.
			continue
		}

		r.sleeper(r.pacing)
	}

	slog.Info("Verify run finished", "run_id", runID,
		"matches", summary.Matches, "mismatches", summary.Mismatches,
		"search_failed", summary.SearchFailed, "cannot_search", summary.CannotSearch)
	return out, summary
}
