package settings

import "testing"

func TestDefaults(t *testing.T) {
	s := Defaults()
	if s.PageSize != 100 {
		t.Errorf("Expected default page size 100, got %d", s.PageSize)
	}
	if !s.EnableQueryCache {
		t.Errorf("Query cache should default to enabled")
	}
	if s.CacheSizeLimitMB != 100 {
		t.Errorf("Expected default cache limit 100MB, got %d", s.CacheSizeLimitMB)
	}
	if s.ExportFilename != "export.csv" {
		t.Errorf("Expected default export filename export.csv, got %q", s.ExportFilename)
	}
}

func TestOverlay(t *testing.T) {
	s := overlay(Defaults(), []byte("page_size: 50\nexport_filename: out.csv\n"))
	if s.PageSize != 50 {
		t.Errorf("Expected overridden page size 50, got %d", s.PageSize)
	}
	if s.ExportFilename != "out.csv" {
		t.Errorf("Expected overridden export filename, got %q", s.ExportFilename)
	}
	if s.CacheSizeLimitMB != 100 {
		t.Errorf("Untouched keys must keep defaults, got %d", s.CacheSizeLimitMB)
	}
}

func TestOverlay_IgnoresInvalidValues(t *testing.T) {
	s := overlay(Defaults(), []byte("page_size: 0\ncache_size_limit_mb: nonsense\n"))
	if s.PageSize != 100 {
		t.Errorf("page_size 0 must be rejected, got %d", s.PageSize)
	}
	if s.CacheSizeLimitMB != 100 {
		t.Errorf("Non-integer cache size must be rejected, got %d", s.CacheSizeLimitMB)
	}
}

func TestOverlay_MalformedYAMLFallsBackToDefaults(t *testing.T) {
	s := overlay(Defaults(), []byte("::: not yaml"))
	if s != Defaults() {
		t.Errorf("Malformed yaml should leave defaults untouched: %+v", s)
	}
}
