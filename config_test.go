package txlin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.CellWidth != DefaultCellWidth || cfg.CellHeight != DefaultCellHeight {
		t.Errorf("default cell = %dx%d, want %dx%d",
			cfg.CellWidth, cfg.CellHeight, DefaultCellWidth, DefaultCellHeight)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("DefaultConfig().validate() = %v", err)
	}
	if cfg.background() != White {
		t.Errorf("default background = %v, want white", cfg.background())
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "txlin.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, "cell_width: 12\ncell_height: 12\ntitle: demo\nbackground: \"#000000\"\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.CellWidth != 12 || cfg.CellHeight != 12 {
		t.Errorf("cell = %dx%d, want 12x12", cfg.CellWidth, cfg.CellHeight)
	}
	if cfg.Title != "demo" {
		t.Errorf("title = %q, want %q", cfg.Title, "demo")
	}
	if cfg.background() != Black {
		t.Errorf("background = %v, want black", cfg.background())
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "title: partial\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.CellWidth != DefaultCellWidth || cfg.CellHeight != DefaultCellHeight {
		t.Errorf("partial config lost defaults: cell = %dx%d", cfg.CellWidth, cfg.CellHeight)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative cell", "cell_width: -1\n"},
		{"zero cell", "cell_height: 0\n"},
		{"bad background", "background: \"nope\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := LoadConfig(path)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("LoadConfig() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadConfig() on a missing file succeeded")
	}
}
