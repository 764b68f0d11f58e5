package settings

// Settings holds application settings that can be overridden by the user.
type Settings struct {
	// Rows shown per page in the data view
	PageSize         int  `yaml:"page_size" json:"page_size"`
	EnableQueryCache bool `yaml:"enable_query_cache" json:"enable_query_cache"`
	// Cache size limit in MB for query cache (applies to all cache types)
	CacheSizeLimitMB int `yaml:"cache_size_limit_mb" json:"cache_size_limit_mb"`
	// Default filename used when exporting without an explicit destination
	ExportFilename string `yaml:"export_filename" json:"export_filename"`
	// Maximum number of files when opening a directory as a virtual file
	MaxDirectoryFiles int `yaml:"max_directory_files" json:"max_directory_files"`
	// InstanceID is a unique identifier for this installation (not visible in settings dialog)
	InstanceID string `yaml:"instance_id,omitempty" json:"instance_id,omitempty"`
}

// CacheManager interface defines methods that SettingsService needs for cache management
// This breaks the circular dependency between app and settings packages
type CacheManager interface {
	ClearAllTabCaches()
	UpdateCacheSize()
}

// defaultSettings defines the built-in defaults.
var defaultSettings = Settings{
	PageSize:         100,
	EnableQueryCache: true,
	CacheSizeLimitMB: 100,
	ExportFilename:   "export.csv",
	// Default max files when opening a directory
	MaxDirectoryFiles: 500,
}

// Defaults returns a copy of the built-in defaults.
func Defaults() Settings {
	return defaultSettings
}
