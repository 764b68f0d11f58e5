package cache

import (
	"time"

	"gridsift/app/interfaces"
)

// Logger interface for cache logging
type Logger interface {
	Log(level, message string)
}

// Entry represents a cached pipeline or stage result.
// Rows are shared pointers into the loaded dataset, so an entry's Size
// accounts only for slice and header overhead, not row string data.
type Entry struct {
	Header     []string
	Rows       []*interfaces.Row
	IsComplete bool
	Size       int64
	AccessTime int64
	CreateTime time.Time
}

// Stats contains cache statistics for diagnostics and the status line.
type Stats struct {
	TotalEntries int
	TotalSize    int64
	MaxSize      int64
	UsagePercent float64

	Hits    int64
	Misses  int64
	HitRate float64
}

// DefaultMaxSize is the default cache size limit (100MB)
const DefaultMaxSize = 100 * 1024 * 1024
