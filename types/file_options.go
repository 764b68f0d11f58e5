// Package types provides shared type definitions used across the gridsift
// application (fileloader, query pipeline, TUI).
package types

// FileOptions contains all options that define a virtual file variant.
// Two files with the same content hash but different options are considered
// different virtual files, so every option must participate in Key().
type FileOptions struct {
	// Delimiter overrides the field separator for delimited text files.
	// Empty means comma.
	Delimiter string `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`

	// NoHeaderRow treats the first row as data; synthetic column names are
	// generated instead.
	NoHeaderRow bool `json:"noHeaderRow,omitempty" yaml:"noHeaderRow,omitempty"`

	// SheetName selects a worksheet for XLSX files. Empty means first sheet.
	SheetName string `json:"sheetName,omitempty" yaml:"sheetName,omitempty"`

	// Directory loading options
	IsDirectory bool   `json:"isDirectory,omitempty" yaml:"isDirectory,omitempty"`
	FilePattern string `json:"filePattern,omitempty" yaml:"filePattern,omitempty"`
}

// Key returns a unique string key for this options combination.
// Used for composite cache keys and map lookups.
func (fo FileOptions) Key() string {
	delim := fo.Delimiter
	if delim == "" {
		delim = ","
	}
	noHeaderStr := "false"
	if fo.NoHeaderRow {
		noHeaderStr = "true"
	}
	sheetStr := fo.SheetName
	if sheetStr == "" {
		sheetStr = "default"
	}
	dirStr := "file"
	if fo.IsDirectory {
		dirStr = "dir"
		if fo.FilePattern != "" {
			dirStr += ":" + fo.FilePattern
		}
	}
	return delim + "::" + noHeaderStr + "::" + sheetStr + "::" + dirStr
}

// IsEmpty returns true if all options are at default values.
func (fo FileOptions) IsEmpty() bool {
	return fo.Delimiter == "" && !fo.NoHeaderRow && fo.SheetName == "" &&
		!fo.IsDirectory && fo.FilePattern == ""
}

// Equals returns true if two FileOptions are equivalent.
func (fo FileOptions) Equals(other FileOptions) bool {
	return fo.Key() == other.Key()
}

// DefaultFileOptions returns the default file options.
func DefaultFileOptions() FileOptions {
	return FileOptions{
		NoHeaderRow: false,
	}
}
