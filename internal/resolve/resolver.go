package resolve

import (
	"context"
	"log/slog"

	"github.com/lehigh-university-libraries/bookid/internal/extract"
	"github.com/lehigh-university-libraries/bookid/internal/naver"
)

// resolveDisplay is how many candidates each cascade query requests.
const resolveDisplay = 5

// Searcher is the slice of the search client the resolver needs.
type Searcher interface {
	Search(ctx context.Context, query string, display int) ([]naver.Book, error)
}

// Resolver drives the query cascade for one record. An optional cache
// guarantees at most one cascade per record fingerprint per batch run.
type Resolver struct {
	searcher Searcher
	cache    *Cache
}

// NewResolver constructs a resolver. cache may be nil to disable memoization.
func NewResolver(searcher Searcher, cache *Cache) *Resolver {
	return &Resolver{searcher: searcher, cache: cache}
}

// Resolve returns the 13-digit identifier for the record, or "" when the
// index yields nothing usable. A hard lookup failure aborts resolution for
// this record immediately; it is not cached, so a later identical record gets
// a fresh attempt.
//
// The cascade tries four queries, loosest last: title+author+publisher+year,
// title+author, title+publisher, title. The first query returning any items
// terminates the cascade: the first item matching the original full record
// wins, otherwise the first item's identifier is kept as a best-effort
// fallback.
func (r *Resolver) Resolve(ctx context.Context, rec PartialRecord) (string, error) {
	rec = rec.Normalized()

	if r.cache != nil {
		if isbn, ok := r.cache.Lookup(rec); ok {
			slog.Debug("resolution cache hit", "title", rec.Title, "isbn13", isbn)
			return isbn, nil
		}
	}

	isbn, err := r.runCascade(ctx, rec)
	if err != nil {
		return "", err
	}

	if r.cache != nil {
		r.cache.Store(rec, isbn)
	}
	return isbn, nil
}

func (r *Resolver) runCascade(ctx context.Context, rec PartialRecord) (string, error) {
	for _, query := range rec.queries() {
		books, err := r.searcher.Search(ctx, query, resolveDisplay)
		if err != nil {
			return "", err
		}
		if len(books) == 0 {
			slog.Debug("no results, loosening query", "query", query)
			continue
		}

		for _, b := range books {
			if !rec.Matches(b) {
				continue
			}
			if isbn := extract.ISBN13(b.ISBN); isbn != "" {
				slog.Debug("matched candidate", "query", query, "title", b.Title, "isbn13", isbn)
				return isbn, nil
			}
		}

		// No candidate matched: keep the first item's identifier anyway
		// and stop the cascade. May be empty when the item carries no
		// 13-digit token.
		isbn := extract.ISBN13(books[0].ISBN)
		slog.Debug("no matching candidate, using first result", "query", query, "title", books[0].Title, "isbn13", isbn)
		return isbn, nil
	}
	return "", nil
}
