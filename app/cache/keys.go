package cache

import (
	"strings"
)

// Cache keys follow the pipeline convention
// "file:<hash>:opts:<key>|stage:stagekey|..." so whole-file invalidation can
// match on the prefix alone.

// IsKeyPrefix checks if prefixKey is a stage-boundary prefix of fullKey.
// "file:a" is a prefix of "file:a|filter:x" but not of "file:ab".
func IsKeyPrefix(prefixKey, fullKey string) bool {
	if !strings.HasPrefix(fullKey, prefixKey) {
		return false
	}
	remainder := strings.TrimPrefix(fullKey, prefixKey)
	return remainder == "" || strings.HasPrefix(remainder, "|") || strings.HasPrefix(remainder, ":")
}

// StageNameFromKey extracts the first stage name from a cache key, for
// per-stage diagnostics. Returns the empty string for bare file keys.
func StageNameFromKey(key string) string {
	idx := strings.Index(key, "|")
	if idx < 0 || idx+1 >= len(key) {
		return ""
	}
	stagePart := key[idx+1:]
	if colon := strings.Index(stagePart, ":"); colon > 0 {
		return stagePart[:colon]
	}
	return stagePart
}
