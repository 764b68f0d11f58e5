package settings

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GetEffectiveSettings returns the effective settings (defaults overlaid with file overrides if any).
// If anything goes wrong, it returns defaults.
func GetEffectiveSettings() Settings {
	settings := defaultSettings
	path, err := settingsFilePath()
	if err != nil {
		return settings
	}
	if _, err := os.Stat(path); err != nil {
		// no file or other stat error -> return defaults
		return settings
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return settings
	}
	return overlay(settings, b)
}

// overlay applies yaml overrides onto base. Unknown keys, wrong types and
// out-of-range values are ignored so a hand-edited file never breaks startup.
func overlay(base Settings, b []byte) Settings {
	settings := base
	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return settings
	}
	if v, ok := m["page_size"]; ok {
		if vi, oki := v.(int); oki && vi >= 1 {
			settings.PageSize = vi
		}
	}
	if v, ok := m["enable_query_cache"]; ok {
		if vb, okb := v.(bool); okb {
			settings.EnableQueryCache = vb
		}
	}
	if v, ok := m["cache_size_limit_mb"]; ok {
		if vi, oki := v.(int); oki && vi >= 1 {
			settings.CacheSizeLimitMB = vi
		}
	}
	if v, ok := m["export_filename"]; ok {
		if vs, oks := v.(string); oks && strings.TrimSpace(vs) != "" {
			settings.ExportFilename = strings.TrimSpace(vs)
		}
	}
	if v, ok := m["max_directory_files"]; ok {
		if vi, oki := v.(int); oki && vi >= 10 {
			settings.MaxDirectoryFiles = vi
		}
	}
	if v, ok := m["instance_id"]; ok {
		if vs, oks := v.(string); oks {
			settings.InstanceID = vs
		}
	}
	return settings
}

func settingsFilePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(exe)
	return filepath.Join(dir, "gridsift.yml"), nil
}
