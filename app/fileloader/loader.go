package fileloader

import (
	"fmt"
	"log"
	"os"

	"gridsift/app/interfaces"
)

// Top-level load entry points. Load turns a file (or raw bytes) into a
// parsed dataset: header plus records, with compression and format handled
// transparently. This is the only way datasets enter the application.

// LoadResult carries a parsed dataset plus any non-fatal warning raised
// while reading it (e.g. truncated compressed input).
type LoadResult struct {
	Header  []string
	Rows    []*interfaces.Row
	Warning string
}

// Load reads and parses the file at path according to options.
// The file type and compression are detected from the path; the decompressed
// content is then dispatched to the format-specific reader.
func Load(path string, options FileOptions) (*LoadResult, error) {
	if path == "" {
		return nil, fmt.Errorf("file path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fileType, compression := DetectFileTypeAndCompression(path)
	return loadData(data, fileType, compression, options)
}

// LoadBytes parses raw in-memory bytes as a dataset. The name is only used
// for type detection, so callers that already know the content came from a
// ".csv" can pass any plausible name.
func LoadBytes(name string, data []byte, options FileOptions) (*LoadResult, error) {
	fileType, compression := DetectFileTypeAndCompression(name)
	if compression == CompressionNone {
		// Name had no compression extension; fall back to magic bytes
		compression = DetectCompressionByMagic(data)
	}
	return loadData(data, fileType, compression, options)
}

func loadData(data []byte, fileType FileType, compression CompressionType, options FileOptions) (*LoadResult, error) {
	warning := ""
	if compression != CompressionNone {
		decompressed, err := Decompress(data, compression)
		if err != nil {
			return nil, err
		}
		data = decompressed.Data
		warning = decompressed.Warning
		if warning != "" {
			log.Printf("[LOAD_WARN] %s", warning)
		}
	}

	var result *interfaces.StageResult
	var err error

	switch fileType {
	case FileTypeXLSX:
		result, err = ReadXLSXRecords(data, options)
	case FileTypeJSON:
		result, err = ReadJSONRecords(data, options)
	default:
		result, err = ReadCSVRecords(data, options)
	}
	if err != nil {
		return nil, err
	}

	return &LoadResult{
		Header:  result.Header,
		Rows:    result.Rows,
		Warning: warning,
	}, nil
}
