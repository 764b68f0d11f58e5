package fileloader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"gridsift/app/interfaces"
)

// CSV file reading and ingestion functions
// This file contains all CSV-specific operations for reading headers,
// parsing records, and creating readers for delimited text.

// ReadCSVHeader reads and returns only the header row from a CSV file using
// default options. This is a convenience wrapper around
// ReadCSVHeaderWithOptions.
func ReadCSVHeader(filePath string) ([]string, error) {
	return ReadCSVHeaderWithOptions(filePath, DefaultFileOptions())
}

// ReadCSVHeaderWithOptions reads and returns the header row from a CSV file
// with parsing options. If options.NoHeaderRow is true, the first row is
// treated as data and synthetic headers are generated. Empty column names are
// normalized to Unnamed_A, Unnamed_B, etc.
func ReadCSVHeaderWithOptions(filePath string, options FileOptions) ([]string, error) {
	if filePath == "" {
		return nil, fmt.Errorf("file path is empty")
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = delimiterRune(options)
	firstRow, err := reader.Read()
	if err != nil {
		return nil, err
	}

	if options.NoHeaderRow {
		return SyntheticHeaders(len(firstRow)), nil
	}
	return NormalizeHeaders(firstRow), nil
}

// GetCSVReader returns a CSV reader for the specified file.
// The caller is responsible for closing the returned file handle.
func GetCSVReader(filePath string, options FileOptions) (*csv.Reader, *os.File, error) {
	if filePath == "" {
		return nil, nil, fmt.Errorf("file path is empty")
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, nil, err
	}

	reader := csv.NewReader(f)
	reader.Comma = delimiterRune(options)
	// Allow variable number of fields per record to handle corrupted CSV files
	reader.FieldsPerRecord = -1
	return reader, f, nil
}

// GetCSVReaderFromBytes returns a CSV reader for CSV data in memory.
// Unlike GetCSVReader, this does not return a file handle since data is in memory.
func GetCSVReaderFromBytes(data []byte, options FileOptions) (*csv.Reader, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("data is empty")
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiterRune(options)
	reader.FieldsPerRecord = -1
	return reader, nil
}

// ReadCSVRecords parses CSV data in memory into a header plus Row objects.
// Malformed rows that the csv package cannot recover a record from are
// skipped rather than surfaced as errors; RowIndex preserves the order of
// appearance of the rows that did parse.
func ReadCSVRecords(data []byte, options FileOptions) (*interfaces.StageResult, error) {
	reader, err := GetCSVReaderFromBytes(data, options)
	if err != nil {
		return nil, err
	}

	firstRow, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("no rows in CSV data")
		}
		return nil, err
	}

	var header []string
	var rows []*interfaces.Row
	rowIndex := 0

	if options.NoHeaderRow {
		header = SyntheticHeaders(len(firstRow))
		rows = append(rows, &interfaces.Row{RowIndex: rowIndex, DisplayIndex: -1, Data: firstRow})
		rowIndex++
	} else {
		header = NormalizeHeaders(firstRow)
	}

	for {
		rec, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			// Parse error on a single line; skip the row and keep going
			if rec == nil {
				continue
			}
		}
		if rec == nil {
			continue
		}
		rows = append(rows, &interfaces.Row{RowIndex: rowIndex, DisplayIndex: -1, Data: rec})
		rowIndex++
	}

	return &interfaces.StageResult{Header: header, Rows: rows}, nil
}

// GetCSVRowCount returns the total number of data rows from CSV data in
// memory. If options.NoHeaderRow is true, all rows are counted.
func GetCSVRowCount(data []byte, options FileOptions) (int, error) {
	reader, err := GetCSVReaderFromBytes(data, options)
	if err != nil {
		return 0, err
	}

	if !options.NoHeaderRow {
		if _, err := reader.Read(); err != nil {
			if err == io.EOF {
				return 0, nil
			}
			return 0, err
		}
	}

	count := 0
	for {
		rec, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			if rec == nil {
				break
			}
		}
		if rec != nil {
			count++
		}
	}
	return count, nil
}
