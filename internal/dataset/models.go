// Package dataset reads and writes the tabular book lists the two workflows
// operate on. CSV, JSONL, and Parquet are supported, picked by file extension.
package dataset

import "fmt"

// ConvertRow is one record of the convert workflow: partial metadata in, the
// isbn column overwritten with the resolved 13-digit identifier (or a
// sentinel marker) on the way out.
type ConvertRow struct {
	Title     string `json:"title" parquet:"title"`
	Author    string `json:"author" parquet:"author"`
	Publisher string `json:"publisher" parquet:"publisher"`
	PubYear   string `json:"pub_year" parquet:"pub_year"`
	ISBN      string `json:"isbn" parquet:"isbn"`
}

// VerifyRow is one record of the verify workflow. Verdict and
// MismatchedFields start empty and are filled by the runner.
type VerifyRow struct {
	ISBN10           string `json:"isbn10" parquet:"isbn10"`
	ISBN13           string `json:"isbn13" parquet:"isbn13"`
	Title            string `json:"title" parquet:"title"`
	Pubdate          string `json:"pubdate" parquet:"pubdate"`
	Publisher        string `json:"publisher" parquet:"publisher"`
	Author           string `json:"author" parquet:"author"`
	Price            string `json:"price" parquet:"price"`
	Verdict          string `json:"verdict,omitempty" parquet:"verdict"`
	MismatchedFields string `json:"mismatched_fields,omitempty" parquet:"mismatched_fields"`
}

var (
	convertColumns = []string{"title", "author", "publisher", "pub_year", "isbn"}
	verifyColumns  = []string{"isbn10", "isbn13", "title", "pubdate", "publisher", "author", "price"}
)

// MissingColumnError reports a schema violation in the input file. It aborts
// the whole run before any network call is made.
type MissingColumnError struct {
	Column string
	Path   string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("dataset %s: missing required column %q", e.Path, e.Column)
}
