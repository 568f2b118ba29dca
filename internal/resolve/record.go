// Package resolve finds the canonical 13-digit identifier for a partial
// bibliographic record by cascading progressively looser search queries
// against the book index.
package resolve

import (
	"strings"

	"github.com/lehigh-university-libraries/bookid/internal/extract"
	"github.com/lehigh-university-libraries/bookid/internal/naver"
)

// PartialRecord carries the metadata a record offers in place of an
// identifier. Title is required for resolution; the other fields tighten the
// search when present. Year is a bare 4-digit string or empty.
type PartialRecord struct {
	Title     string
	Author    string
	Publisher string
	Year      string
}

// Normalized returns a copy with every field trimmed, so logically identical
// rows share one cache fingerprint.
func (r PartialRecord) Normalized() PartialRecord {
	return PartialRecord{
		Title:     strings.TrimSpace(r.Title),
		Author:    strings.TrimSpace(r.Author),
		Publisher: strings.TrimSpace(r.Publisher),
		Year:      strings.TrimSpace(r.Year),
	}
}

// Matches reports whether a fetched candidate plausibly is this record.
// Title, author, and publisher use bidirectional substring containment so
// truncation on either side still matches; author and publisher are skipped
// when the record leaves them empty. Year must equal the 4-digit year
// extracted from the candidate's raw pubdate, skipped when empty.
func (r PartialRecord) Matches(b naver.Book) bool {
	if !containsEither(r.Title, b.Title) {
		return false
	}
	if r.Author != "" && !containsEither(r.Author, b.Author) {
		return false
	}
	if r.Publisher != "" && !containsEither(r.Publisher, b.Publisher) {
		return false
	}
	if r.Year != "" && r.Year != extract.Year(b.Pubdate) {
		return false
	}
	return true
}

// queries returns the cascade in fixed priority order, tightest first. Empty
// fields drop out of the joined query string.
func (r PartialRecord) queries() []string {
	return []string{
		joinTerms(r.Title, r.Author, r.Publisher, r.Year),
		joinTerms(r.Title, r.Author),
		joinTerms(r.Title, r.Publisher),
		r.Title,
	}
}

func joinTerms(terms ...string) string {
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		if term != "" {
			parts = append(parts, term)
		}
	}
	return strings.Join(parts, " ")
}

func containsEither(a, b string) bool {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	return strings.Contains(lb, la) || strings.Contains(la, lb)
}
