package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if err := m.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := m.Get()
	if cfg.DefaultFormat != "console" {
		t.Errorf("default format = %q, want console", cfg.DefaultFormat)
	}
	if cfg.ThumbnailWidth != 320 {
		t.Errorf("thumbnail width = %d, want 320", cfg.ThumbnailWidth)
	}
}

func TestLoadAppliesDefaultsToPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"extra_fonts": ["Corporate Sans"], "thumbnail_width": 0}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if err := m.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := m.Get()
	if len(cfg.ExtraFonts) != 1 || cfg.ExtraFonts[0] != "Corporate Sans" {
		t.Errorf("extra fonts = %v", cfg.ExtraFonts)
	}
	if cfg.DefaultFormat != "console" {
		t.Errorf("default format = %q, want console", cfg.DefaultFormat)
	}
	if cfg.ThumbnailWidth != 320 {
		t.Errorf("zero thumbnail width not defaulted, got %d", cfg.ThumbnailWidth)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if err := m.Load(); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.json")
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if err := m.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	m.Get().ExtraFonts = []string{"Humanist 521"}
	if err := m.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	m2, err := NewManager(path)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if err := m2.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	cfg := m2.Get()
	if len(cfg.ExtraFonts) != 1 || cfg.ExtraFonts[0] != "Humanist 521" {
		t.Errorf("reloaded extra fonts = %v", cfg.ExtraFonts)
	}
}

func TestDefaultPathEnvOverride(t *testing.T) {
	t.Setenv(configPathEnvVar, "/tmp/custom-pptfonts.json")
	p, err := DefaultPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if p != "/tmp/custom-pptfonts.json" {
		t.Errorf("path = %q, want env override", p)
	}
}

func TestHistoryDBPathExplicit(t *testing.T) {
	cfg := &Config{HistoryPath: "/data/history.db"}
	p, err := cfg.HistoryDBPath()
	if err != nil {
		t.Fatalf("history path: %v", err)
	}
	if p != "/data/history.db" {
		t.Errorf("path = %q, want the configured value", p)
	}
}
