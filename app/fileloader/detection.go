package fileloader

import (
	"strings"
)

// compressionExtensions maps compression extensions to their CompressionType
var compressionExtensions = map[string]CompressionType{
	".gz":  CompressionGzip,
	".bz2": CompressionBzip2,
	".xz":  CompressionXZ,
}

// DetectFileType determines the file type based on the file extension.
//
// Supported file types:
//   - CSV (.csv, .tsv, .txt)
//   - XLSX (.xlsx)
//   - JSON (.json)
//
// Returns FileTypeCSV as default for backwards compatibility.
// Note: This function does NOT handle compressed files. Use
// DetectFileTypeAndCompression instead.
func DetectFileType(filePath string) FileType {
	if filePath == "" {
		return FileTypeUnknown
	}
	return detectFileTypeFromPath(strings.ToLower(filePath))
}

// DetectFileTypeAndCompression determines both the file type and compression
// type. It checks for double extensions (e.g., .csv.gz) first, then falls
// back to the extension alone.
//
// Supported compression formats: gzip (.gz), bzip2 (.bz2), xz (.xz).
func DetectFileTypeAndCompression(filePath string) (FileType, CompressionType) {
	if filePath == "" {
		return FileTypeUnknown, CompressionNone
	}

	lower := strings.ToLower(filePath)

	compressionType := CompressionNone
	innerPath := lower
	for ext, ct := range compressionExtensions {
		if strings.HasSuffix(lower, ext) {
			compressionType = ct
			innerPath = strings.TrimSuffix(lower, ext)
			break
		}
	}

	return detectFileTypeFromPath(innerPath), compressionType
}

// detectFileTypeFromPath determines file type from a path without a
// compression extension.
func detectFileTypeFromPath(path string) FileType {
	switch {
	case strings.HasSuffix(path, ".csv"),
		strings.HasSuffix(path, ".tsv"),
		strings.HasSuffix(path, ".txt"):
		return FileTypeCSV
	case strings.HasSuffix(path, ".xlsx"):
		return FileTypeXLSX
	case strings.HasSuffix(path, ".json"):
		return FileTypeJSON
	default:
		// Default to CSV for backwards compatibility
		return FileTypeCSV
	}
}

// IsCompressedFile checks if a file is compressed based on its extension
func IsCompressedFile(filePath string) bool {
	_, compression := DetectFileTypeAndCompression(filePath)
	return compression != CompressionNone
}
