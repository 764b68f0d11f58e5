package settings

import (
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// SettingsService manages reading/writing settings from disk.
type SettingsService struct {
	cacheManager CacheManager
}

func NewSettingsService() *SettingsService {
	return &SettingsService{}
}

// SetCacheManager allows the main function to inject the cache manager
func (s *SettingsService) SetCacheManager(cm CacheManager) {
	s.cacheManager = cm
}

// GetSettings returns the effective settings (defaults overlaid with file overrides if any).
func (s *SettingsService) GetSettings() (Settings, error) {
	return GetEffectiveSettings(), nil
}

// SaveSettings persists the given settings, writing only values that differ
// from the defaults. Cache-related changes are pushed to the cache manager.
func (s *SettingsService) SaveSettings(in Settings) error {
	old := GetEffectiveSettings()
	cacheSizeChanged := old.CacheSizeLimitMB != in.CacheSizeLimitMB
	cacheToggled := old.EnableQueryCache != in.EnableQueryCache

	// Build a minimal map containing only non-default values to avoid zero-value serialization pitfalls
	data := make(map[string]any)
	if in.PageSize != defaultSettings.PageSize && in.PageSize >= 1 {
		data["page_size"] = in.PageSize
	}
	if in.EnableQueryCache != defaultSettings.EnableQueryCache {
		data["enable_query_cache"] = in.EnableQueryCache
	}
	if in.CacheSizeLimitMB != defaultSettings.CacheSizeLimitMB && in.CacheSizeLimitMB >= 1 {
		data["cache_size_limit_mb"] = in.CacheSizeLimitMB
	}
	if strings.TrimSpace(in.ExportFilename) != defaultSettings.ExportFilename && strings.TrimSpace(in.ExportFilename) != "" {
		data["export_filename"] = strings.TrimSpace(in.ExportFilename)
	}
	if in.MaxDirectoryFiles != defaultSettings.MaxDirectoryFiles && in.MaxDirectoryFiles >= 10 {
		data["max_directory_files"] = in.MaxDirectoryFiles
	}

	// Preserve the instance ID (not visible in settings dialog, but must persist)
	instanceID := strings.TrimSpace(in.InstanceID)
	if instanceID == "" {
		instanceID = strings.TrimSpace(old.InstanceID)
	}
	if instanceID != "" {
		data["instance_id"] = instanceID
	}

	if err := writeSettingsFile(data); err != nil {
		return err
	}

	if s.cacheManager != nil {
		if cacheToggled {
			s.cacheManager.ClearAllTabCaches()
		}
		if cacheSizeChanged {
			s.cacheManager.UpdateCacheSize()
		}
	}
	return nil
}

// EnsureInstanceID generates and persists an instance ID on first run.
func (s *SettingsService) EnsureInstanceID() error {
	current := GetEffectiveSettings()
	if strings.TrimSpace(current.InstanceID) != "" {
		return nil
	}
	current.InstanceID = uuid.NewString()
	return s.SaveSettings(current)
}

func writeSettingsFile(data map[string]any) error {
	path, err := settingsFilePath()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		// Nothing deviates from defaults; drop the file if present
		if _, statErr := os.Stat(path); statErr == nil {
			return os.Remove(path)
		}
		return nil
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
