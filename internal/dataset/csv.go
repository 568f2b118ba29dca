package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// readCSVTable reads a headered CSV file and verifies the required columns
// are present before any row is handed back. Column order is not assumed.
func readCSVTable(path string, required []string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s: empty file, header row required", path)
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range required {
		if _, ok := header[col]; !ok {
			return nil, &MissingColumnError{Column: col, Path: path}
		}
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for name, idx := range header {
			if idx < len(record) {
				row[name] = record[idx]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func writeCSVTable(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for i, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func loadConvertCSV(path string) ([]ConvertRow, error) {
	table, err := readCSVTable(path, convertColumns)
	if err != nil {
		return nil, err
	}

	rows := make([]ConvertRow, 0, len(table))
	for _, cells := range table {
		rows = append(rows, ConvertRow{
			Title:     cells["title"],
			Author:    cells["author"],
			Publisher: cells["publisher"],
			PubYear:   cells["pub_year"],
			ISBN:      cells["isbn"],
		})
	}
	return rows, nil
}

func saveConvertCSV(path string, rows []ConvertRow) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{row.Title, row.Author, row.Publisher, row.PubYear, row.ISBN})
	}
	return writeCSVTable(path, convertColumns, records)
}

func loadVerifyCSV(path string) ([]VerifyRow, error) {
	table, err := readCSVTable(path, verifyColumns)
	if err != nil {
		return nil, err
	}

	rows := make([]VerifyRow, 0, len(table))
	for _, cells := range table {
		rows = append(rows, VerifyRow{
			ISBN10:    cells["isbn10"],
			ISBN13:    cells["isbn13"],
			Title:     cells["title"],
			Pubdate:   cells["pubdate"],
			Publisher: cells["publisher"],
			Author:    cells["author"],
			Price:     cells["price"],
		})
	}
	return rows, nil
}

func saveVerifyCSV(path string, rows []VerifyRow) error {
	header := append(append([]string{}, verifyColumns...), "verdict", "mismatched_fields")
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.ISBN10, row.ISBN13, row.Title, row.Pubdate,
			row.Publisher, row.Author, row.Price,
			row.Verdict, row.MismatchedFields,
		})
	}
	return writeCSVTable(path, header, records)
}
