package fileloader

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"gridsift/app/interfaces"
)

// XLSX (Excel) file reading and ingestion functions
// Worksheet rows are converted to the same header + Row shape as CSV input,
// so everything downstream of the loader is format-agnostic.

// xlsxSheetRows opens XLSX data in memory and returns all rows of the
// selected sheet. options.SheetName selects a worksheet; empty means the
// first sheet in the workbook.
func xlsxSheetRows(data []byte, options FileOptions) ([][]string, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("data is empty")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := options.SheetName
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("no sheets found in XLSX data")
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows found in sheet %q", sheetName)
	}

	return rows, nil
}

// ReadXLSXHeader reads and returns the header row from XLSX data in memory.
// If options.NoHeaderRow is true, synthetic headers are generated from the
// first row's column count. Empty column names are normalized to Unnamed_A,
// Unnamed_B, etc.
func ReadXLSXHeader(data []byte, options FileOptions) ([]string, error) {
	rows, err := xlsxSheetRows(data, options)
	if err != nil {
		return nil, err
	}

	if options.NoHeaderRow {
		return SyntheticHeaders(len(rows[0])), nil
	}
	return NormalizeHeaders(rows[0]), nil
}

// ReadXLSXRecords parses XLSX data in memory into a header plus Row objects,
// mirroring ReadCSVRecords for Excel input. excelize already tolerates ragged
// sheets, so rows shorter than the header are kept as-is and read back as
// empty cells.
func ReadXLSXRecords(data []byte, options FileOptions) (*interfaces.StageResult, error) {
	sheetRows, err := xlsxSheetRows(data, options)
	if err != nil {
		return nil, err
	}

	var header []string
	var dataRows [][]string

	if options.NoHeaderRow {
		header = SyntheticHeaders(len(sheetRows[0]))
		dataRows = sheetRows
	} else {
		header = NormalizeHeaders(sheetRows[0])
		dataRows = sheetRows[1:]
	}

	rows := make([]*interfaces.Row, 0, len(dataRows))
	for i, rec := range dataRows {
		rows = append(rows, &interfaces.Row{RowIndex: i, DisplayIndex: -1, Data: rec})
	}

	return &interfaces.StageResult{Header: header, Rows: rows}, nil
}

// ListXLSXSheets returns the worksheet names of XLSX data in workbook order,
// for sheet selection in the file picker.
func ListXLSXSheets(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("data is empty")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetSheetList(), nil
}
