package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// LoadConvert loads the convert-workflow input file.
func LoadConvert(path string) ([]ConvertRow, error) {
	switch ext(path) {
	case ".csv":
		return loadConvertCSV(path)
	case ".jsonl", ".json":
		return loadJSONL[ConvertRow](path)
	case ".parquet":
		return loadParquet[ConvertRow](path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .csv, .jsonl, .parquet)", ext(path))
	}
}

// SaveConvert writes the updated convert rows, format chosen by extension.
func SaveConvert(path string, rows []ConvertRow) error {
	switch ext(path) {
	case ".csv":
		return saveConvertCSV(path, rows)
	case ".jsonl", ".json":
		return saveJSONL(path, rows)
	case ".parquet":
		return saveParquet(path, rows)
	default:
		return fmt.Errorf("unsupported file format: %s (supported: .csv, .jsonl, .parquet)", ext(path))
	}
}

// LoadVerify loads the verify-workflow input file.
func LoadVerify(path string) ([]VerifyRow, error) {
	switch ext(path) {
	case ".csv":
		return loadVerifyCSV(path)
	case ".jsonl", ".json":
		return loadJSONL[VerifyRow](path)
	case ".parquet":
		return loadParquet[VerifyRow](path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .csv, .jsonl, .parquet)", ext(path))
	}
}

// SaveVerify writes the verify rows with their verdict columns filled in.
func SaveVerify(path string, rows []VerifyRow) error {
	switch ext(path) {
	case ".csv":
		return saveVerifyCSV(path, rows)
	case ".jsonl", ".json":
		return saveJSONL(path, rows)
	case ".parquet":
		return saveParquet(path, rows)
	default:
		return fmt.Errorf("unsupported file format: %s (supported: .csv, .jsonl, .parquet)", ext(path))
	}
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func loadJSONL[T any](path string) ([]T, error) {
	slog.Debug("Opening JSONL file", "path", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	var rows []T
	scanner := bufio.NewScanner(file)

	// Room for long lines
	const maxCapacity = 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var row T
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	slog.Debug("Finished reading JSONL file", "total_rows", len(rows))
	return rows, nil
}

func saveJSONL[T any](path string, rows []T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	for i, row := range rows {
		if err := encoder.Encode(row); err != nil {
			return fmt.Errorf("failed to encode row %d: %w", i+1, err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func loadParquet[T any](path string) ([]T, error) {
	slog.Debug("Opening Parquet file", "path", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[T](pf)
	defer reader.Close()

	var rows []T
	batch := make([]T, 128)
	for {
		n, err := reader.Read(batch)
		if n > 0 {
			rows = append(rows, batch[:n]...)
		}
		if err != nil {
			break
		}
	}

	slog.Debug("Finished reading Parquet file", "total_rows", len(rows))
	return rows, nil
}

func saveParquet[T any](path string, rows []T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
