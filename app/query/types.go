package query

import "gridsift/app/interfaces"

// Type aliases to interfaces package to avoid duplication and circular dependencies
type ProgressCallback = interfaces.ProgressCallback
type Row = interfaces.Row
type StageResult = interfaces.StageResult
type FilterSet = interfaces.FilterSet
type SortState = interfaces.SortState

// PipelineStage represents a single stage in the query pipeline
type PipelineStage interface {
	// Execute processes the input data and returns a stage result
	Execute(input *StageResult) (*StageResult, error)

	// CanCache returns true if this stage's results can be cached
	CanCache() bool

	// CacheKey returns a unique key for caching this stage's results
	CacheKey() string

	// Name returns the stage name for progress reporting
	Name() string

	// EstimateOutputSize estimates the output size relative to input (0.0-1.0+)
	EstimateOutputSize() float64
}

// progressReporter is implemented by stages that can report row-level
// progress while executing.
type progressReporter interface {
	setProgress(report func(current int64))
}

// QueryResult contains the final result of pipeline execution
type QueryResult struct {
	Header []string
	Rows   []*Row
	Total  int64
	Cached bool
}

const (
	// ProgressUpdateInterval defines how often to report progress
	ProgressUpdateInterval = interfaces.ProgressUpdateInterval

	// DefaultPageSize is the number of rows shown per page
	DefaultPageSize = 100

	// DefaultCacheMaxSize is the default cache size limit (100MB)
	DefaultCacheMaxSize = 100 * 1024 * 1024

	// MinRowsForProgress is the minimum rows before showing progress
	MinRowsForProgress = 5000
)

// CacheConfig controls caching behavior
type CacheConfig struct {
	EnablePipelineCache bool  // Cache full pipeline results
	EnableStageCache    bool  // Cache individual stage results
	CacheSizeLimit      int64 // Unified cache size limit (applies to all cache types)
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		EnablePipelineCache: true,
		EnableStageCache:    true,
		CacheSizeLimit:      DefaultCacheMaxSize,
	}
}

// CacheConfigFromSettings creates cache config based on user settings
func CacheConfigFromSettings(enableCache bool, sizeMB int) CacheConfig {
	return CacheConfig{
		EnablePipelineCache: enableCache,
		EnableStageCache:    enableCache,
		CacheSizeLimit:      int64(sizeMB) * 1024 * 1024,
	}
}
