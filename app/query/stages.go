package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gridsift/app/interfaces"
)

// findColumn resolves a column name to its index in header, matching
// case-insensitively on trimmed names. Returns -1 if the column is unknown.
func findColumn(header []string, name string) int {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range header {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return i
		}
	}
	return -1
}

// columnNeedle is a resolved per-column filter constraint.
type columnNeedle struct {
	index  int    // -1 when the column does not exist in the header
	needle string // lowercased search term, never empty
}

// FilterStage keeps rows whose values contain every active needle.
type FilterStage struct {
	filters FilterSet
	name    string
	report  func(current int64)
}

// NewFilterStage creates a filter stage from the active filter set.
func NewFilterStage(filters FilterSet) *FilterStage {
	return &FilterStage{
		filters: filters.Clone(),
		name:    "filter",
	}
}

// Execute returns the rows matching every active constraint, preserving input
// order. Matching is a case-insensitive substring check per column; all
// constraints must hold on the same row. A constraint on a column absent from
// the header matches against the empty string, so any non-empty needle on an
// unknown column yields an empty result.
func (f *FilterStage) Execute(input *StageResult) (*StageResult, error) {
	needles := f.resolveNeedles(input.Header)
	if len(needles) == 0 {
		return input, nil
	}

	var filteredRows []*Row
	for i, row := range input.Rows {
		if matchRow(row, needles) {
			filteredRows = append(filteredRows, row)
		}
		if f.report != nil && i > 0 && i%ProgressUpdateInterval == 0 {
			f.report(int64(i))
		}
	}

	return &StageResult{
		Header: input.Header,
		Rows:   filteredRows,
	}, nil
}

// setProgress installs a row-level progress hook, called every
// ProgressUpdateInterval rows while scanning.
func (f *FilterStage) setProgress(report func(current int64)) {
	f.report = report
}

// resolveNeedles resolves active filter columns against the header once,
// lowercasing the needles so per-row matching avoids repeated conversions.
func (f *FilterStage) resolveNeedles(header []string) []columnNeedle {
	var needles []columnNeedle
	for col, needle := range f.filters {
		if needle == "" {
			continue
		}
		needles = append(needles, columnNeedle{
			index:  findColumn(header, col),
			needle: strings.ToLower(needle),
		})
	}
	return needles
}

func matchRow(row *Row, needles []columnNeedle) bool {
	for _, n := range needles {
		value := ""
		if n.index >= 0 {
			value = row.Value(n.index)
		}
		if !strings.Contains(strings.ToLower(value), n.needle) {
			return false
		}
	}
	return true
}

// CanCache returns true if this stage can be cached
func (f *FilterStage) CanCache() bool {
	return true
}

// CacheKey returns a unique key for caching
func (f *FilterStage) CacheKey() string {
	return fmt.Sprintf("filter:%s", f.filters.Key())
}

// Name returns the stage name
func (f *FilterStage) Name() string {
	return f.name
}

// EstimateOutputSize estimates output size (filters typically reduce size)
func (f *FilterStage) EstimateOutputSize() float64 {
	return 0.5 // Assume 50% of rows pass filter on average
}

// SortStage orders rows by a single column.
type SortStage struct {
	state SortState
	name  string
}

// NewSortStage creates a sort stage for the given sort state.
func NewSortStage(state SortState) *SortStage {
	return &SortStage{
		state: state,
		name:  "sort",
	}
}

// Execute returns the rows ordered by the sort column. An inactive sort state
// or an unknown column passes the input through untouched, preserving source
// order.
func (s *SortStage) Execute(input *StageResult) (*StageResult, error) {
	if !s.state.IsActive() {
		return input, nil
	}

	colIdx := findColumn(input.Header, s.state.Column)
	if colIdx < 0 {
		return input, nil
	}

	// CRITICAL: Make a copy of the rows slice to avoid mutating cached data.
	// The input rows may come from the cache, and sorting in-place would
	// corrupt cached entries with different sort orders.
	rows := make([]*Row, len(input.Rows))
	copy(rows, input.Rows)

	desc := s.state.Direction == interfaces.SortDesc
	sort.SliceStable(rows, func(i, j int) bool {
		cmp := compareValues(rows[i].Value(colIdx), rows[j].Value(colIdx))
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})

	return &StageResult{
		Header: input.Header,
		Rows:   rows,
	}, nil
}

// compareValues compares two cell values, numerically when both parse as
// numbers and case-insensitively as strings otherwise. Mixed pairs fall back
// to the string comparison so the ordering stays total.
func compareValues(a, b string) int {
	aNum, aOk := parseNumeric(a)
	bNum, bOk := parseNumeric(b)

	if aOk && bOk {
		if aNum < bNum {
			return -1
		}
		if aNum > bNum {
			return 1
		}
		return 0
	}

	aLower := strings.ToLower(a)
	bLower := strings.ToLower(b)
	if aLower < bLower {
		return -1
	}
	if aLower > bLower {
		return 1
	}
	return 0
}

// parseNumeric attempts to parse a string as a float64
func parseNumeric(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	if val, err := strconv.ParseFloat(v, 64); err == nil {
		return val, true
	}
	return 0, false
}

// CanCache returns true if this stage can be cached
func (s *SortStage) CanCache() bool {
	return true
}

// CacheKey returns a unique key for caching
func (s *SortStage) CacheKey() string {
	return fmt.Sprintf("sort:%s", s.state.Key())
}

// Name returns the stage name
func (s *SortStage) Name() string {
	return s.name
}

// EstimateOutputSize estimates output size (sorting doesn't change row count)
func (s *SortStage) EstimateOutputSize() float64 {
	return 1.0 // Same number of rows
}
