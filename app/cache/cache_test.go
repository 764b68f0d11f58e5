package cache

import (
	"fmt"
	"testing"

	"gridsift/app/interfaces"
)

func testRows(n int) []*interfaces.Row {
	rows := make([]*interfaces.Row, n)
	for i := range rows {
		rows[i] = &interfaces.Row{RowIndex: i, Data: []string{"value"}}
	}
	return rows
}

func TestCache_StoreAndGet(t *testing.T) {
	c := New(DefaultMaxSize)
	header := []string{"col"}

	c.Store("file:a|filter:x", header, testRows(3))

	entry, found := c.Get("file:a|filter:x")
	if !found {
		t.Fatalf("Expected cache hit")
	}
	if len(entry.Rows) != 3 {
		t.Errorf("Expected 3 rows, got %d", len(entry.Rows))
	}
	if !entry.IsComplete {
		t.Errorf("Stored entries should be complete")
	}

	if _, found := c.Get("file:a|filter:y"); found {
		t.Errorf("Unexpected hit for different key")
	}
}

func TestCache_LRUEviction(t *testing.T) {
	// Room for roughly two entries of 10 rows each
	c := New(400)
	header := []string{"col"}

	c.Store("key1", header, testRows(10))
	c.Store("key2", header, testRows(10))

	// Touch key1 so key2 becomes the eviction candidate
	if _, found := c.Get("key1"); !found {
		t.Fatalf("key1 should still be cached")
	}

	c.Store("key3", header, testRows(10))

	if _, found := c.Get("key1"); !found {
		t.Errorf("Recently used key1 should survive eviction")
	}
	if _, found := c.Get("key2"); found {
		t.Errorf("Least recently used key2 should have been evicted")
	}
}

func TestCache_ReplaceKeyKeepsAccounting(t *testing.T) {
	c := New(1000)
	header := []string{"col"}

	c.Store("key1", header, testRows(55))
	c.Store("key2", header, testRows(45))

	// Replacing key1 with a larger result forces an eviction; the stale
	// key1 entry must leave both the map and the LRU list exactly once.
	c.Store("key1", header, testRows(60))

	var total int64
	for _, key := range []string{"key1", "key2"} {
		if entry, found := c.Get(key); found {
			total += entry.Size
		}
	}
	if got := c.Size(); got != total {
		t.Errorf("Size() = %d, but cached entries sum to %d", got, total)
	}
	if c.Size() > c.MaxSize() {
		t.Errorf("Cache size %d exceeds limit %d", c.Size(), c.MaxSize())
	}

	entry, found := c.Get("key1")
	if !found {
		t.Fatalf("Replaced key1 should be cached")
	}
	if len(entry.Rows) != 60 {
		t.Errorf("Expected 60 rows after replace, got %d", len(entry.Rows))
	}
	if _, found := c.Get("key3"); !found {
		t.Errorf("Newly stored key3 should be cached")
	}
}

func TestCache_OversizedEntrySkipped(t *testing.T) {
	c := New(100)
	header := []string{"col"}

	c.Store("big", header, testRows(1000))
	if _, found := c.Get("big"); found {
		t.Errorf("Entry larger than the cache limit should not be stored")
	}
}

func TestCache_InvalidateFile(t *testing.T) {
	c := New(DefaultMaxSize)
	header := []string{"col"}

	c.Store("file:aaa:opts:x|filter:f", header, testRows(1))
	c.Store("file:aaa:opts:x|filter:f|sort:s", header, testRows(1))
	c.Store("file:bbb:opts:x|filter:f", header, testRows(1))

	removed := c.InvalidateFile("aaa")
	if removed != 2 {
		t.Errorf("Expected 2 invalidated entries, got %d", removed)
	}
	if _, found := c.Get("file:aaa:opts:x|filter:f"); found {
		t.Errorf("Entries for invalidated file should be gone")
	}
	if _, found := c.Get("file:bbb:opts:x|filter:f"); !found {
		t.Errorf("Entries for other files must survive")
	}
}

func TestCache_InvalidateFileHashPrefixBoundary(t *testing.T) {
	c := New(DefaultMaxSize)
	header := []string{"col"}

	c.Store("file:ab:opts:x|filter:f", header, testRows(1))
	c.Store("file:abc:opts:x|filter:f", header, testRows(1))

	c.InvalidateFile("ab")
	if _, found := c.Get("file:abc:opts:x|filter:f"); !found {
		t.Errorf("Hash 'abc' must not be invalidated by prefix hash 'ab'")
	}
}

func TestCache_UpdateMaxSizeEvicts(t *testing.T) {
	c := New(DefaultMaxSize)
	header := []string{"col"}

	for i := 0; i < 5; i++ {
		c.Store(fmt.Sprintf("key%d", i), header, testRows(10))
	}

	c.UpdateMaxSize(300)
	if c.Size() > 300 {
		t.Errorf("Cache size %d exceeds new limit 300", c.Size())
	}
	if c.EntryCount() == 5 {
		t.Errorf("Shrinking the limit should have evicted entries")
	}
}

func TestCache_Stats(t *testing.T) {
	c := New(DefaultMaxSize)
	header := []string{"col"}

	c.Store("key1", header, testRows(1))
	c.Get("key1")
	c.Get("missing")

	stats := c.GetStats()
	if stats.TotalEntries != 1 {
		t.Errorf("Expected 1 entry, got %d", stats.TotalEntries)
	}
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Expected 1 hit and 1 miss, got %d/%d", stats.Hits, stats.Misses)
	}
	if stats.HitRate != 0.5 {
		t.Errorf("Expected hit rate 0.5, got %f", stats.HitRate)
	}
}

func TestCache_Clear(t *testing.T) {
	c := New(DefaultMaxSize)
	c.Store("key1", []string{"col"}, testRows(1))
	c.Clear()

	if c.EntryCount() != 0 || c.Size() != 0 {
		t.Errorf("Clear should empty the cache, have %d entries / %d bytes", c.EntryCount(), c.Size())
	}
}

func TestIsKeyPrefix(t *testing.T) {
	cases := []struct {
		prefix, full string
		want         bool
	}{
		{"file:a", "file:a", true},
		{"file:a", "file:a|filter:x", true},
		{"file:a", "file:a:opts:x|filter:x", true},
		{"file:a", "file:ab", false},
		{"file:a", "file:b", false},
	}
	for _, c := range cases {
		if got := IsKeyPrefix(c.prefix, c.full); got != c.want {
			t.Errorf("IsKeyPrefix(%q, %q): expected %v, got %v", c.prefix, c.full, c.want, got)
		}
	}
}
