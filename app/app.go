package app

import (
	"context"
	"log"
	"strings"
	"sync"

	"gridsift/app/cache"
	"gridsift/app/query"
	"gridsift/app/settings"
)

// App owns all loaded datasets and their view state. The presentation layer
// calls its methods and re-renders from the View it returns; it never touches
// tab state directly.
type App struct {
	ctx context.Context

	// Multi-tab support
	tabsMu      sync.RWMutex
	tabs        map[string]*FileTab // keyed by tab ID
	tabOrder    []string            // tab IDs in open order
	activeTabID string

	// clipboard init
	clipOnce sync.Once
	clipOK   bool

	// persistent query cache
	queryCache *cache.Cache

	// settings snapshot taken at startup
	pageSize       int
	exportFilename string
	maxDirFiles    int
	cacheConfig    query.CacheConfig
}

// NewApp creates a new App application struct
func NewApp() *App {
	currentSettings := settings.GetEffectiveSettings()
	cacheSizeBytes := int64(currentSettings.CacheSizeLimitMB) * 1024 * 1024

	app := &App{
		tabs:           make(map[string]*FileTab),
		queryCache:     cache.New(cacheSizeBytes),
		pageSize:       currentSettings.PageSize,
		exportFilename: currentSettings.ExportFilename,
		maxDirFiles:    currentSettings.MaxDirectoryFiles,
		cacheConfig:    query.CacheConfigFromSettings(currentSettings.EnableQueryCache, currentSettings.CacheSizeLimitMB),
	}
	app.queryCache.SetLogger(app)

	return app
}

// Startup stores the application context used for query cancellation.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
}

// context returns the app context, falling back to Background before Startup.
func (a *App) context() context.Context {
	if a.ctx != nil {
		return a.ctx
	}
	return context.Background()
}

// GetActiveTab returns the currently active file tab (nil if none)
func (a *App) GetActiveTab() *FileTab {
	a.tabsMu.RLock()
	defer a.tabsMu.RUnlock()
	if a.activeTabID == "" {
		return nil
	}
	return a.tabs[a.activeTabID]
}

// GetTab returns a specific tab by ID
func (a *App) GetTab(tabID string) *FileTab {
	a.tabsMu.RLock()
	defer a.tabsMu.RUnlock()
	return a.tabs[tabID]
}

// addTab registers a tab at the end of the open order and makes it active.
func (a *App) addTab(tab *FileTab) {
	a.tabsMu.Lock()
	defer a.tabsMu.Unlock()
	a.tabs[tab.ID] = tab
	a.tabOrder = append(a.tabOrder, tab.ID)
	a.activeTabID = tab.ID
}

// ListTabs returns the IDs of all open tabs in open order.
func (a *App) ListTabs() []string {
	a.tabsMu.RLock()
	defer a.tabsMu.RUnlock()
	ids := make([]string, len(a.tabOrder))
	copy(ids, a.tabOrder)
	return ids
}

// CycleTab moves the active tab by delta in open order, wrapping around.
func (a *App) CycleTab(delta int) {
	a.tabsMu.Lock()
	defer a.tabsMu.Unlock()
	n := len(a.tabOrder)
	if n < 2 {
		return
	}
	current := 0
	for i, id := range a.tabOrder {
		if id == a.activeTabID {
			current = i
			break
		}
	}
	a.activeTabID = a.tabOrder[((current+delta)%n+n)%n]
}

// TabPosition returns the active tab's 1-based position and the tab count.
func (a *App) TabPosition() (position, total int) {
	a.tabsMu.RLock()
	defer a.tabsMu.RUnlock()
	for i, id := range a.tabOrder {
		if id == a.activeTabID {
			return i + 1, len(a.tabOrder)
		}
	}
	return 0, len(a.tabOrder)
}

// SetActiveTab switches the active tab. Unknown IDs are ignored.
func (a *App) SetActiveTab(tabID string) {
	a.tabsMu.Lock()
	defer a.tabsMu.Unlock()
	if _, ok := a.tabs[tabID]; ok {
		a.activeTabID = tabID
	}
}

// CloseTab removes a tab and invalidates its cached query results.
func (a *App) CloseTab(tabID string) {
	a.tabsMu.Lock()
	tab, ok := a.tabs[tabID]
	if !ok {
		a.tabsMu.Unlock()
		return
	}
	delete(a.tabs, tabID)
	pos := 0
	for i, id := range a.tabOrder {
		if id == tabID {
			pos = i
			a.tabOrder = append(a.tabOrder[:i], a.tabOrder[i+1:]...)
			break
		}
	}
	if a.activeTabID == tabID {
		a.activeTabID = ""
		if len(a.tabOrder) > 0 {
			// Fall back to the neighbor that took the closed tab's slot
			if pos >= len(a.tabOrder) {
				pos = len(a.tabOrder) - 1
			}
			a.activeTabID = a.tabOrder[pos]
		}
	}
	a.tabsMu.Unlock()

	if tab.FileHash != "" && !a.fileHashInUse(tab.FileHash) {
		a.queryCache.InvalidateFile(tab.FileHash)
	}
}

// fileHashInUse reports whether any open tab still references the hash.
func (a *App) fileHashInUse(fileHash string) bool {
	a.tabsMu.RLock()
	defer a.tabsMu.RUnlock()
	for _, tab := range a.tabs {
		if tab.FileHash == fileHash {
			return true
		}
	}
	return false
}

// CacheStatsResponse contains cache statistics for the status line
type CacheStatsResponse struct {
	TotalSize    int64   `json:"totalSize"`
	MaxSize      int64   `json:"maxSize"`
	UsagePercent float64 `json:"usagePercent"`
	EntryCount   int     `json:"entryCount"`
	HitRate      float64 `json:"hitRate"`
}

// GetCacheStats returns the current cache statistics
func (a *App) GetCacheStats() CacheStatsResponse {
	if a.queryCache == nil {
		return CacheStatsResponse{}
	}
	stats := a.queryCache.GetStats()
	return CacheStatsResponse{
		TotalSize:    stats.TotalSize,
		MaxSize:      stats.MaxSize,
		UsagePercent: stats.UsagePercent,
		EntryCount:   stats.TotalEntries,
		HitRate:      stats.HitRate,
	}
}

// Log emits a leveled log line. Satisfies the cache.Logger interface.
func (a *App) Log(level, message string) {
	log.Printf("[%s] %s", strings.ToUpper(level), message)
}

// ClearAllTabCaches drops every cached query result.
// Called when settings that affect query results change.
func (a *App) ClearAllTabCaches() {
	if a.queryCache != nil {
		a.queryCache.Clear()
	}
}

// UpdateCacheSize re-reads the cache size limit from settings and applies it.
func (a *App) UpdateCacheSize() {
	currentSettings := settings.GetEffectiveSettings()
	newSize := int64(currentSettings.CacheSizeLimitMB) * 1024 * 1024
	a.queryCache.UpdateMaxSize(newSize)
	a.cacheConfig = query.CacheConfigFromSettings(currentSettings.EnableQueryCache, currentSettings.CacheSizeLimitMB)
	a.Log("info", "query cache size limit updated")
}
