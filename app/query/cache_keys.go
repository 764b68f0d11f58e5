package query

import (
	"fmt"

	"gridsift/types"
)

// BuildCacheKey creates a cache key from the file identity and pipeline
// stages. The file options are part of the key so datasets parsed with a
// different delimiter or header mode never share cached results.
// Key format: "file:<hash>:opts:<key>|stage1:key1|...|stageN:keyN"
func BuildCacheKey(fileHash string, opts types.FileOptions, stages []PipelineStage) string {
	key := fmt.Sprintf("file:%s:opts:%s", fileHash, opts.Key())

	for _, stage := range stages {
		if stage.CanCache() {
			key += fmt.Sprintf("|%s:%s", stage.Name(), stage.CacheKey())
		}
	}

	return key
}

// BuildStageCacheKey creates a cache key for a specific stage
func BuildStageCacheKey(fileHash string, stageName string, stageKey string) string {
	return fmt.Sprintf("file:%s|%s:%s", fileHash, stageName, stageKey)
}
