// Package reconcile checks a record's claimed metadata against the canonical
// record the book index holds for its 13-digit identifier.
package reconcile

import (
	"context"
	"strings"

	"github.com/lehigh-university-libraries/bookid/internal/extract"
	"github.com/lehigh-university-libraries/bookid/internal/naver"
)

// Verdict classifies the outcome of reconciling one record.
type Verdict int

const (
	// VerdictCannotSearch means the record carries no usable 13-digit
	// identifier, so no lookup was attempted.
	VerdictCannotSearch Verdict = iota
	// VerdictSearchFailed means the index returned no record for the
	// identifier.
	VerdictSearchFailed
	// VerdictMatch means every compared field agreed.
	VerdictMatch
	// VerdictMismatch means at least one compared field disagreed.
	VerdictMismatch
)

func (v Verdict) String() string {
	switch v {
	case VerdictCannotSearch:
		return "cannot_search"
	case VerdictSearchFailed:
		return "search_failed"
	case VerdictMatch:
		return "match"
	case VerdictMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// Record is the original row being verified. Pubdate is free-form; only its
// extracted 4-digit year is compared.
type Record struct {
	ISBN10    string
	ISBN13    string
	Title     string
	Author    string
	Publisher string
	Price     string
	Pubdate   string
}

// Result is the verdict plus, for mismatches, the disagreeing field names in
// fixed order: title, author, publisher, year, price.
type Result struct {
	Verdict          Verdict
	MismatchedFields []string
}

// MismatchList renders the mismatched field names as one comma-joined cell.
func (r Result) MismatchList() string {
	return strings.Join(r.MismatchedFields, ",")
}

// Fetcher is the slice of the search client the comparator needs.
type Fetcher interface {
	LookupISBN13(ctx context.Context, isbn13 string) (*naver.Book, error)
}

// Comparator reconciles records against the index one identifier lookup at a
// time. There is no cascade here; the identifier either resolves or it does
// not.
type Comparator struct {
	fetcher Fetcher
}

// NewComparator constructs a comparator over the supplied fetcher.
func NewComparator(fetcher Fetcher) *Comparator {
	return &Comparator{fetcher: fetcher}
}

// Reconcile produces a verdict for one record. Records without a full-length
// identifier short-circuit to cannot_search before any network call. A hard
// lookup failure is returned as an error for the caller to record row-scoped;
// an empty lookup result is the search_failed verdict, not an error.
//
// Field rules, all case-insensitive and trimmed: title, author, and publisher
// use bidirectional substring containment; year compares the extracted
// 4-digit years of both pubdates; price is exact string equality. A field is
// skipped when the original side is empty.
func (c *Comparator) Reconcile(ctx context.Context, rec Record) (Result, error) {
	isbn13 := strings.TrimSpace(rec.ISBN13)
	if len(isbn13) < 13 {
		return Result{Verdict: VerdictCannotSearch}, nil
	}

	book, err := c.fetcher.LookupISBN13(ctx, isbn13)
	if err != nil {
		return Result{}, err
	}
	if book == nil {
		return Result{Verdict: VerdictSearchFailed}, nil
	}

	mismatched := compareFields(rec, *book)
	if len(mismatched) == 0 {
		return Result{Verdict: VerdictMatch}, nil
	}
	return Result{Verdict: VerdictMismatch, MismatchedFields: mismatched}, nil
}

func compareFields(rec Record, book naver.Book) []string {
	var mismatched []string

	if field := strings.TrimSpace(rec.Title); field != "" && !containsEither(field, book.Title) {
		mismatched = append(mismatched, "title")
	}
	if field := strings.TrimSpace(rec.Author); field != "" && !containsEither(field, book.Author) {
		mismatched = append(mismatched, "author")
	}
	if field := strings.TrimSpace(rec.Publisher); field != "" && !containsEither(field, book.Publisher) {
		mismatched = append(mismatched, "publisher")
	}
	if year := extract.Year(rec.Pubdate); year != "" && year != extract.Year(book.Pubdate) {
		mismatched = append(mismatched, "year")
	}
	if price := strings.TrimSpace(rec.Price); price != "" && price != strings.TrimSpace(book.Price) {
		mismatched = append(mismatched, "price")
	}

	return mismatched
}

func containsEither(a, b string) bool {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	return strings.Contains(lb, la) || strings.Contains(la, lb)
}
