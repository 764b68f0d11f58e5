package fileloader

import (
	"gridsift/types"
)

// Package fileloader provides centralized dataset reading and serialization
// for all supported file formats (CSV, XLSX, JSON). It abstracts file type
// detection, decompression, header reading, and record parsing, and performs
// the inverse operation of serializing records back to delimited text.

// FileType represents the type of data file being processed
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeCSV
	FileTypeXLSX
	FileTypeJSON
)

// String returns the string representation of FileType
func (ft FileType) String() string {
	switch ft {
	case FileTypeCSV:
		return "CSV"
	case FileTypeXLSX:
		return "XLSX"
	case FileTypeJSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// FileOptions is an alias to the shared type.
// Use types.FileOptions directly for new code.
type FileOptions = types.FileOptions

// DefaultFileOptions returns the default parsing options
func DefaultFileOptions() FileOptions {
	return types.DefaultFileOptions()
}

// delimiterRune resolves the effective field separator from options.
func delimiterRune(options FileOptions) rune {
	if options.Delimiter == "" {
		return ','
	}
	return []rune(options.Delimiter)[0]
}
