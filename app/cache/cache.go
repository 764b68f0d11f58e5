package cache

import (
	"fmt"
	"sync"
	"time"

	"gridsift/app/interfaces"
)

// Cache is a size-bounded LRU cache of query pipeline results.
// Entries share Row pointers with the loaded dataset, so storing a result is
// cheap; eviction happens on stored overhead size, not row data size.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	lru     *lruList
	size    int64
	maxSize int64
	logger  Logger

	hits   int64
	misses int64
}

// New creates a cache with the given size limit in bytes.
// A non-positive limit falls back to DefaultMaxSize.
func New(maxSize int64) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Cache{
		entries: make(map[string]*Entry),
		lru:     newLRUList(),
		maxSize: maxSize,
	}
}

// SetLogger sets the logger used for eviction diagnostics.
func (c *Cache) SetLogger(logger Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = logger
}

func (c *Cache) log(level, message string) {
	if c.logger != nil {
		c.logger.Log(level, message)
	}
}

// Get returns the cached entry for key, updating recency and hit statistics.
func (c *Cache) Get(key string) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, found := c.entries[key]
	if !found {
		c.misses++
		return nil, false
	}

	c.hits++
	entry.AccessTime = time.Now().UnixNano()
	c.lru.Touch(key)
	return entry, true
}

// Store caches a result under key, evicting older entries as needed.
// Results too large to ever fit are silently skipped.
func (c *Cache) Store(key string, header []string, rows []*interfaces.Row) {
	size := c.entrySize(header, len(rows))

	c.mu.Lock()
	defer c.mu.Unlock()

	if size > c.maxSize {
		c.log("debug", fmt.Sprintf("cache skip %s: entry size %d exceeds limit %d", key, size, c.maxSize))
		return
	}

	// Replace an existing entry under the same key. It must leave the LRU
	// list too, or eviction below could pop it and subtract its size twice.
	c.removeLocked(key)

	if !c.evictToMakeSpace(size) {
		return
	}

	c.entries[key] = &Entry{
		Header:     header,
		Rows:       rows,
		IsComplete: true,
		Size:       size,
		AccessTime: time.Now().UnixNano(),
		CreateTime: time.Now(),
	}
	c.size += size
	c.lru.Touch(key)
}

// Remove drops a single entry.
func (c *Cache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(key)
}

func (c *Cache) removeLocked(key string) {
	if entry, exists := c.entries[key]; exists {
		c.size -= entry.Size
		delete(c.entries, key)
		c.lru.Remove(key)
	}
}

// Clear empties the cache entirely.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*Entry)
	c.lru = newLRUList()
	c.size = 0
}

// InvalidateFile removes every entry derived from the file with the given
// content hash. Called when a dataset is replaced by a new load.
func (c *Cache) InvalidateFile(fileHash string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := "file:" + fileHash
	var stale []string
	for key := range c.entries {
		if IsKeyPrefix(prefix, key) {
			stale = append(stale, key)
		}
	}
	for _, key := range stale {
		c.removeLocked(key)
	}

	if len(stale) > 0 {
		c.log("debug", fmt.Sprintf("invalidated %d cache entries for file %s", len(stale), fileHash))
	}
	return len(stale)
}

// Size returns the current total size of cached entries.
func (c *Cache) Size() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.size
}

// MaxSize returns the configured size limit.
func (c *Cache) MaxSize() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxSize
}

// EntryCount returns the number of cached entries.
func (c *Cache) EntryCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// UpdateMaxSize changes the size limit, evicting as needed to honor it.
func (c *Cache) UpdateMaxSize(newMaxSize int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if newMaxSize <= 0 {
		newMaxSize = DefaultMaxSize
	}
	c.maxSize = newMaxSize

	for c.size > c.maxSize {
		oldest := c.lru.PopOldest()
		if oldest == "" {
			break
		}
		if entry, exists := c.entries[oldest]; exists {
			c.size -= entry.Size
			delete(c.entries, oldest)
		}
	}
}

// GetStats returns a snapshot of cache statistics.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{
		TotalEntries: len(c.entries),
		TotalSize:    c.size,
		MaxSize:      c.maxSize,
		Hits:         c.hits,
		Misses:       c.misses,
	}
	if c.maxSize > 0 {
		stats.UsagePercent = float64(c.size) / float64(c.maxSize) * 100
	}
	if total := c.hits + c.misses; total > 0 {
		stats.HitRate = float64(c.hits) / float64(total)
	}
	return stats
}

// evictToMakeSpace evicts LRU entries until needed bytes fit.
// Returns false if space could not be freed (empty LRU with oversized need).
func (c *Cache) evictToMakeSpace(needed int64) bool {
	for c.size+needed > c.maxSize {
		oldest := c.lru.PopOldest()
		if oldest == "" {
			return c.size+needed <= c.maxSize
		}
		if entry, exists := c.entries[oldest]; exists {
			c.size -= entry.Size
			delete(c.entries, oldest)
			c.log("debug", fmt.Sprintf("evicted cache entry %s (%d bytes)", oldest, entry.Size))
		}
	}
	return true
}

// entrySize estimates the stored overhead of an entry: header strings plus
// pointer-slice overhead. Row data itself is shared with the dataset and not
// counted.
func (c *Cache) entrySize(header []string, rowCount int) int64 {
	size := int64(0)
	for _, h := range header {
		size += int64(len(h)) + 16
	}
	size += int64(rowCount) * 8 // one pointer per row
	size += 64                  // entry bookkeeping
	return size
}
