package fileloader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"gridsift/app/interfaces"
)

// CSV serialization - the inverse of ReadCSVRecords. Output written here must
// round-trip: parsing it again yields the same header order and record values.

// WriteCSV serializes a header row plus records to w as delimited text.
// The header is written verbatim in its original order; each row is written
// in header order, with rows shorter than the header padded with empty
// fields so the output stays rectangular.
func WriteCSV(w io.Writer, header []string, rows []*interfaces.Row, options FileOptions) error {
	writer := csv.NewWriter(w)
	writer.Comma = delimiterRune(options)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(header))
	for _, row := range rows {
		for i := range header {
			record[i] = row.Value(i)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row.RowIndex, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCSVFile serializes header plus rows to a file at path, creating or
// truncating it.
func WriteCSVFile(path string, header []string, rows []*interfaces.Row, options FileOptions) error {
	if path == "" {
		return fmt.Errorf("output path is empty")
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteCSV(f, header, rows, options); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
