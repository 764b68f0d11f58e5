package fileloader

import (
	"fmt"
	"sort"

	"github.com/ohler55/ojg/oj"

	"gridsift/app/interfaces"
)

// JSON file reading and ingestion functions
// A JSON dataset is an array of objects; object keys become columns, and
// missing keys read back as empty strings.

// parseJSONData parses JSON data from bytes using oj.Parse.
func parseJSONData(data []byte) (interface{}, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("data is empty")
	}
	return oj.Parse(data)
}

// jsonValueToString converts a decoded JSON value to its cell representation.
// Nested objects and arrays are re-marshalled so their content survives a
// round-trip through the CSV serializer.
func jsonValueToString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return fmt.Sprintf("%t", val)
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	case map[string]interface{}, []interface{}:
		return oj.JSON(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// ReadJSONRecords parses JSON data in memory into a header plus Row objects.
// The top-level value must be an array; array elements that are not objects
// are skipped the same way malformed CSV rows are. Columns appear in order of
// the object that introduced them; keys introduced by the same object are
// sorted, since decoded maps carry no key order of their own.
func ReadJSONRecords(data []byte, options FileOptions) (*interfaces.StageResult, error) {
	parsed, err := parseJSONData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	arr, ok := parsed.([]interface{})
	if !ok {
		return nil, fmt.Errorf("JSON data is not an array of objects")
	}

	var header []string
	colIndex := make(map[string]int)
	var objects []map[string]interface{}

	for _, elem := range arr {
		obj, ok := elem.(map[string]interface{})
		if !ok {
			continue // skip non-object elements
		}
		objects = append(objects, obj)

		var newKeys []string
		for key := range obj {
			if _, seen := colIndex[key]; !seen {
				newKeys = append(newKeys, key)
			}
		}
		sort.Strings(newKeys)
		for _, key := range newKeys {
			colIndex[key] = len(header)
			header = append(header, key)
		}
	}

	if len(header) == 0 {
		return nil, fmt.Errorf("no objects found in JSON array")
	}

	header = NormalizeHeaders(header)

	rows := make([]*interfaces.Row, 0, len(objects))
	for i, obj := range objects {
		rec := make([]string, len(header))
		for key, v := range obj {
			if idx, ok := colIndex[key]; ok {
				rec[idx] = jsonValueToString(v)
			}
		}
		rows = append(rows, &interfaces.Row{RowIndex: i, DisplayIndex: -1, Data: rec})
	}

	return &interfaces.StageResult{Header: header, Rows: rows}, nil
}

// ReadJSONHeader returns only the unified column list of JSON data in memory.
func ReadJSONHeader(data []byte, options FileOptions) ([]string, error) {
	result, err := ReadJSONRecords(data, options)
	if err != nil {
		return nil, err
	}
	return result.Header, nil
}
