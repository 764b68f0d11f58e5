package fileloader

import (
	"strings"
)

// excelColumnName converts a 0-based index to an Excel-style column name.
// Examples: 0 -> A, 1 -> B, 25 -> Z, 26 -> AA, 27 -> AB
func excelColumnName(index int) string {
	result := ""
	index++ // 1-based for the algorithm

	for index > 0 {
		index--
		result = string(rune('A'+index%26)) + result
		index /= 26
	}

	return result
}

// NormalizeHeaders replaces empty or whitespace-only column names with
// Excel-style placeholders (Unnamed_A, Unnamed_B, ...). All file format
// readers go through this function so column naming stays consistent across
// formats; non-empty names are preserved verbatim.
//
// Example:
//
//	Input:  ["name", "", "age"]
//	Output: ["name", "Unnamed_A", "age"]
func NormalizeHeaders(header []string) []string {
	normalized := make([]string, len(header))
	emptyCount := 0

	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			normalized[i] = "Unnamed_" + excelColumnName(emptyCount)
			emptyCount++
		} else {
			normalized[i] = h
		}
	}

	return normalized
}

// SyntheticHeaders generates placeholder column names for files loaded with
// the NoHeaderRow option, one per column of the first data row.
func SyntheticHeaders(columnCount int) []string {
	return NormalizeHeaders(make([]string, columnCount))
}

// ResolveColumn returns the index of the named column in header using
// case-insensitive matching, or -1 when the column does not exist.
func ResolveColumn(header []string, name string) int {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range header {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return i
		}
	}
	return -1
}
