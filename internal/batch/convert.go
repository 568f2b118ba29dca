// Package batch drives the two row-by-row workflows over a loaded dataset:
// resolving identifiers for partial records and verifying claimed metadata.
// Rows are processed sequentially in input order; no failure crosses a row
// boundary.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lehigh-university-libraries/bookid/internal/dataset"
	"github.com/lehigh-university-libraries/bookid/internal/extract"
	"github.com/lehigh-university-libraries/bookid/internal/resolve"
)

// Sentinel values written to the isbn column when no identifier could be
// attached to a row.
const (
	SentinelNoTitle  = "no title"
	SentinelNotFound = "not found"
)

// Option customizes a runner.
type Option func(*options)

type options struct {
	sleeper func(time.Duration)
}

// WithSleeper overrides how pacing sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(o *options) {
		if sleeper != nil {
			o.sleeper = sleeper
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{sleeper: time.Sleep}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ConvertSummary counts the outcomes of one convert run.
type ConvertSummary struct {
	Rows            int
	Resolved        int
	NotFound        int
	NoTitle         int
	LookupErrors    int
	DistinctRecords int
}

// ConvertRunner resolves the isbn column for every row of a convert dataset.
// Each runner owns a fresh resolution cache, so identical rows inside one run
// trigger exactly one cascade and nothing leaks across runs.
type ConvertRunner struct {
	resolver *resolve.Resolver
	cache    *resolve.Cache
	pacing   time.Duration
	sleeper  func(time.Duration)
}

// NewConvertRunner builds a runner over the supplied searcher. pacing is the
// fixed sleep after each row that needed remote lookups, keeping the batch
// under the service's rate quota.
func NewConvertRunner(searcher resolve.Searcher, pacing time.Duration, opts ...Option) *ConvertRunner {
	o := buildOptions(opts)
	cache := resolve.NewCache()
	return &ConvertRunner{
		resolver: resolve.NewResolver(searcher, cache),
		cache:    cache,
		pacing:   pacing,
		sleeper:  o.sleeper,
	}
}

// Run processes the rows in order and returns the updated copy plus a
// summary. A hard lookup failure marks only its own row and the batch
// continues.
func (r *ConvertRunner) Run(ctx context.Context, rows []dataset.ConvertRow) ([]dataset.ConvertRow, ConvertSummary) {
	runID := uuid.NewString()
	slog.Info("Starting convert run", "run_id", runID, "rows", len(rows))

	out := make([]dataset.ConvertRow, len(rows))
	copy(out, rows)

	summary := ConvertSummary{Rows: len(rows)}
	for i := range out {
		row := &out[i]
		slog.Debug("Processing row", "run_id", runID, "progress", fmt.Sprintf("%d/%d", i+1, len(out)), "title", row.Title)

		rec := resolve.PartialRecord{
			Title:     strings.TrimSpace(row.Title),
			Author:    strings.TrimSpace(row.Author),
			Publisher: strings.TrimSpace(row.Publisher),
			Year:      extract.Year(row.PubYear),
		}

		if rec.Title == "" {
			row.ISBN = SentinelNoTitle
			summary.NoTitle++
			continue
		}

		_, cached := r.cache.Lookup(rec)

		isbn, err := r.resolver.Resolve(ctx, rec)
		switch {
		case err != nil:
			slog.Warn("Resolution failed", "run_id", runID, "title", rec.Title, "err", err)
			row.ISBN = SentinelNotFound
			summary.LookupErrors++
		case isbn == "":
			row.ISBN = SentinelNotFound
			summary.NotFound++
		default:
			row.ISBN = isbn
			summary.Resolved++
		}

		// Cache hits made no network call and need no pacing.
		if !cached {
			r.sleeper(r.pacing)
		}
	}

	summary.DistinctRecords = r.cache.Len()
	slog.Info("Convert run finished", "run_id", runID,
		"resolved", summary.Resolved, "not_found", summary.NotFound,
		"no_title", summary.NoTitle, "lookup_errors", summary.LookupErrors)
	return out, summary
}
