package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing config should not error: %v", err)
	}
	if cfg.Output.JSON != nil || cfg.History.Last != nil {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[output]\njson = true\n\n[history]\nlast = 25\nplain = false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Output.JSON == nil || !*cfg.Output.JSON {
		t.Fatalf("expected output.json = true, got %+v", cfg.Output)
	}
	if cfg.History.Last == nil || *cfg.History.Last != 25 {
		t.Fatalf("expected history.last = 25, got %+v", cfg.History)
	}
	if cfg.History.Plain == nil || *cfg.History.Plain {
		t.Fatalf("expected history.plain = false, got %+v", cfg.History)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
