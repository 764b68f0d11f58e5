package interfaces

import (
	"sort"
	"strings"

	"gridsift/types"
)

// FileOptions is an alias to the shared type.
// Use types.FileOptions directly for new code.
type FileOptions = types.FileOptions

// Row represents a single data row of a loaded dataset.
// Rows are immutable after load; pipeline stages share Row pointers and
// produce new slices rather than mutating row data in place.
type Row struct {
	RowIndex     int      // 0-based index of this row in the source file (order of appearance)
	DisplayIndex int      // 0-based index in the final result set (after filters/sorts), -1 if not yet assigned
	Data         []string // Raw string data for all columns
}

// Value returns the value at column index idx.
// Rows shorter than the header report missing cells as empty strings.
func (r *Row) Value(idx int) string {
	if idx < 0 || idx >= len(r.Data) {
		return ""
	}
	return r.Data[idx]
}

// StageResult represents the output of a pipeline stage.
type StageResult struct {
	Header []string // Column names in render/iteration order
	Rows   []*Row
}

// FilterSet holds the active per-column substring constraints.
// An empty needle (or an absent column) imposes no constraint.
type FilterSet map[string]string

// Active returns the number of columns with a non-empty needle.
func (f FilterSet) Active() int {
	n := 0
	for _, needle := range f {
		if needle != "" {
			n++
		}
	}
	return n
}

// Key returns a canonical serialization of the active constraints,
// independent of map iteration order. Used in cache keys.
func (f FilterSet) Key() string {
	if len(f) == 0 {
		return ""
	}
	cols := make([]string, 0, len(f))
	for col, needle := range f {
		if needle != "" {
			cols = append(cols, col)
		}
	}
	sort.Strings(cols)

	var sb strings.Builder
	for i, col := range cols {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(col)
		sb.WriteByte('=')
		sb.WriteString(f[col])
	}
	return sb.String()
}

// Clone returns a copy of the filter set so callers can hand out snapshots
// without exposing internal state to mutation.
func (f FilterSet) Clone() FilterSet {
	out := make(FilterSet, len(f))
	for col, needle := range f {
		out[col] = needle
	}
	return out
}

// SortDirection represents the tri-state sort order.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAsc
	SortDesc
)

// String returns the string representation of SortDirection.
func (d SortDirection) String() string {
	switch d {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return "none"
	}
}

// SortState holds the single active sort column and direction.
// The zero value means no sorting.
type SortState struct {
	Column    string        `json:"column"`
	Direction SortDirection `json:"direction"`
}

// IsActive reports whether a sort is currently applied.
func (s SortState) IsActive() bool {
	return s.Column != "" && s.Direction != SortNone
}

// Key returns a canonical serialization for cache keys.
func (s SortState) Key() string {
	if !s.IsActive() {
		return ""
	}
	return s.Column + ":" + s.Direction.String()
}

// Toggle advances the sort state for a header click on column.
// The same column cycles none -> asc -> desc -> none; a different column
// always starts at asc and discards the previous column's state.
func (s *SortState) Toggle(column string) {
	if s.Column != column {
		s.Column = column
		s.Direction = SortAsc
		return
	}
	switch s.Direction {
	case SortAsc:
		s.Direction = SortDesc
	case SortDesc:
		s.Column = ""
		s.Direction = SortNone
	default:
		s.Direction = SortAsc
	}
}

// View is the render contract exposed to the presentation layer after every
// state change. Rows holds only the current page; TotalFiltered counts the
// whole filtered sequence.
type View struct {
	Headers       []string   `json:"headers"`
	Rows          [][]string `json:"rows"`
	TotalFiltered int        `json:"totalFiltered"`
	TotalLoaded   int        `json:"totalLoaded"`
	Page          int        `json:"page"`
	TotalPages    int        `json:"totalPages"`
	Sort          SortState  `json:"sort"`
	Filters       FilterSet  `json:"filters"`
	FileName      string     `json:"fileName"`
}

// ProgressCallback provides real-time feedback during query execution.
type ProgressCallback func(stage string, current, total int64, message string)

// ProgressUpdateInterval defines how often to report progress, in rows.
const ProgressUpdateInterval = 1000

// Reader yields one record per call, io.EOF at the end.
type Reader interface {
	Read() ([]string, error)
}

// Closer releases underlying file resources.
type Closer interface {
	Close() error
}
