package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadConvertCSV(t *testing.T) {
	path := writeTempFile(t, "books.csv",
		"title,author,publisher,pub_year,isbn\n"+
			"The Vegetarian,Han Kang,Changbi,2007,\n"+
			"Human Acts,Han Kang,Changbi,2014,9788936434120\n")

	rows, err := LoadConvert(path)
	if err != nil {
		t.Fatalf("LoadConvert returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Title != "The Vegetarian" || rows[0].PubYear != "2007" || rows[0].ISBN != "" {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[1].ISBN != "9788936434120" {
		t.Errorf("isbn = %q, want existing value preserved", rows[1].ISBN)
	}
}

func TestLoadConvertCSVColumnOrderIndependent(t *testing.T) {
	path := writeTempFile(t, "books.csv",
		"isbn,pub_year,publisher,author,title\n"+
			"x,2007,Changbi,Han Kang,The Vegetarian\n")

	rows, err := LoadConvert(path)
	if err != nil {
		t.Fatalf("LoadConvert returned error: %v", err)
	}
	if rows[0].Title != "The Vegetarian" || rows[0].ISBN != "x" {
		t.Errorf("unexpected row with shuffled columns: %+v", rows[0])
	}
}

func TestLoadConvertMissingColumn(t *testing.T) {
	path := writeTempFile(t, "books.csv",
		"title,author,publisher,isbn\n"+
			"The Vegetarian,Han Kang,Changbi,\n")

	_, err := LoadConvert(path)
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want *MissingColumnError", err)
	}
	if missing.Column != "pub_year" {
		t.Errorf("missing column = %q, want pub_year", missing.Column)
	}
}

func TestLoadVerifyMissingColumn(t *testing.T) {
	path := writeTempFile(t, "books.csv",
		"isbn10,isbn13,title,publisher,author,price\n")

	_, err := LoadVerify(path)
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want *MissingColumnError", err)
	}
	if missing.Column != "pubdate" {
		t.Errorf("missing column = %q, want pubdate", missing.Column)
	}
}

func TestSaveConvertCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	rows := []ConvertRow{
		{Title: "The Vegetarian", Author: "Han Kang", Publisher: "Changbi", PubYear: "2007", ISBN: "9788936433598"},
		{Title: "No Title Match", ISBN: "not found"},
	}

	if err := SaveConvert(path, rows); err != nil {
		t.Fatalf("SaveConvert returned error: %v", err)
	}

	loaded, err := LoadConvert(path)
	if err != nil {
		t.Fatalf("LoadConvert returned error: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("got %d rows, want 2", len(loaded))
	}
	if loaded[0] != rows[0] {
		t.Errorf("row 0 = %+v, want %+v", loaded[0], rows[0])
	}
	if loaded[1].ISBN != "not found" {
		t.Errorf("sentinel = %q, want preserved", loaded[1].ISBN)
	}
}

func TestSaveVerifyCSVAddsVerdictColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	rows := []VerifyRow{
		{
			ISBN13:  "9788936433598",
			Title:   "The Vegetarian",
			Verdict: "mismatch", MismatchedFields: "price",
		},
	}

	if err := SaveVerify(path, rows); err != nil {
		t.Fatalf("SaveVerify returned error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	got := string(content)
	wantHeader := "isbn10,isbn13,title,pubdate,publisher,author,price,verdict,mismatched_fields"
	if got[:len(wantHeader)] != wantHeader {
		t.Errorf("header = %q, want %q", got[:len(wantHeader)], wantHeader)
	}
}

func TestJSONLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	rows := []VerifyRow{
		{ISBN13: "9788936433598", Title: "The Vegetarian", Price: "12000"},
		{ISBN13: "9788936434120", Title: "Human Acts", Verdict: "match"},
	}

	if err := SaveVerify(path, rows); err != nil {
		t.Fatalf("SaveVerify returned error: %v", err)
	}

	loaded, err := LoadVerify(path)
	if err != nil {
		t.Fatalf("LoadVerify returned error: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("got %d rows, want 2", len(loaded))
	}
	for i := range rows {
		if loaded[i] != rows[i] {
			t.Errorf("row %d = %+v, want %+v", i, loaded[i], rows[i])
		}
	}
}

func TestParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.parquet")
	rows := []ConvertRow{
		{Title: "The Vegetarian", Author: "Han Kang", Publisher: "Changbi", PubYear: "2007", ISBN: "9788936433598"},
	}

	if err := SaveConvert(path, rows); err != nil {
		t.Fatalf("SaveConvert returned error: %v", err)
	}

	loaded, err := LoadConvert(path)
	if err != nil {
		t.Fatalf("LoadConvert returned error: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != rows[0] {
		t.Errorf("loaded = %+v, want %+v", loaded, rows)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := LoadConvert("books.xlsx"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if err := SaveVerify("books.xlsx", nil); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
