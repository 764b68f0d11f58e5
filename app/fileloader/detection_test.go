package fileloader

import (
	"bytes"
	"compress/gzip"
	"testing"
)

func TestDetectFileTypeAndCompression(t *testing.T) {
	cases := []struct {
		path        string
		fileType    FileType
		compression CompressionType
	}{
		{"data.csv", FileTypeCSV, CompressionNone},
		{"data.tsv", FileTypeCSV, CompressionNone},
		{"report.xlsx", FileTypeXLSX, CompressionNone},
		{"events.json", FileTypeJSON, CompressionNone},
		{"data.csv.gz", FileTypeCSV, CompressionGzip},
		{"events.json.xz", FileTypeJSON, CompressionXZ},
		{"log.csv.bz2", FileTypeCSV, CompressionBzip2},
		{"noext", FileTypeCSV, CompressionNone}, // default to CSV
	}
	for _, c := range cases {
		ft, comp := DetectFileTypeAndCompression(c.path)
		if ft != c.fileType || comp != c.compression {
			t.Errorf("%s: expected (%v, %v), got (%v, %v)", c.path, c.fileType, c.compression, ft, comp)
		}
	}
}

func TestLoadBytes_GzipMagicFallback(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write([]byte("name,age\nAlice,30\n"))
	zw.Close()

	// Name without a compression extension; magic bytes decide
	result, err := LoadBytes("data.csv", buf.Bytes(), DefaultFileOptions())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(result.Rows) != 1 || result.Rows[0].Value(0) != "Alice" {
		t.Errorf("Decompressed parse wrong: %v", result.Rows)
	}
}

func TestReadJSONRecords(t *testing.T) {
	data := []byte(`[{"name":"Alice","age":30},{"name":"Bob","age":25,"city":"Derby"}]`)

	result, err := ReadJSONRecords(data, DefaultFileOptions())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if len(result.Header) != 3 {
		t.Fatalf("Expected 3 columns, got %v", result.Header)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(result.Rows))
	}
	// Whole floats render without a decimal part
	if got := result.Rows[0].Value(ResolveColumn(result.Header, "age")); got != "30" {
		t.Errorf("Expected age 30, got %q", got)
	}
	// Column missing from the first object reads as empty there
	if got := result.Rows[0].Value(ResolveColumn(result.Header, "city")); got != "" {
		t.Errorf("Expected empty city for Alice, got %q", got)
	}
}
