package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Placement.ForwardOffset != 0.2 {
		t.Errorf("expected forward offset 0.2, got %f", cfg.Placement.ForwardOffset)
	}
	if cfg.Placement.DragThreshold != 40 {
		t.Errorf("expected drag threshold 40, got %f", cfg.Placement.DragThreshold)
	}
	if cfg.Placement.DefaultMode != "freeform" {
		t.Errorf("expected default mode freeform, got %s", cfg.Placement.DefaultMode)
	}
	if !cfg.Placement.ShowSurfaces {
		t.Error("expected show_surfaces to be true by default")
	}

	if cfg.Tracking.PlaneInterval != 2*time.Second {
		t.Errorf("expected plane interval 2s, got %v", cfg.Tracking.PlaneInterval)
	}
	if len(cfg.Tracking.MarkerImages) == 0 {
		t.Error("expected at least one default marker image")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  vsync: false

placement:
  forward_offset: 0.5
  drag_threshold: 25
  default_mode: surface
  show_surfaces: false

tracking:
  plane_interval: 500ms
  max_planes: 2
  marker_images: ["logo"]

logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync false")
	}
	if cfg.Placement.ForwardOffset != 0.5 {
		t.Errorf("expected forward offset 0.5, got %f", cfg.Placement.ForwardOffset)
	}
	if cfg.Placement.DefaultMode != "surface" {
		t.Errorf("expected mode surface, got %s", cfg.Placement.DefaultMode)
	}
	if cfg.Placement.ShowSurfaces {
		t.Error("expected show_surfaces false")
	}
	if cfg.Tracking.PlaneInterval != 500*time.Millisecond {
		t.Errorf("expected plane interval 500ms, got %v", cfg.Tracking.PlaneInterval)
	}
	if len(cfg.Tracking.MarkerImages) != 1 || cfg.Tracking.MarkerImages[0] != "logo" {
		t.Errorf("expected marker images [logo], got %v", cfg.Tracking.MarkerImages)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Placement.DefaultMode = "marker"
	cfg.Placement.ShowSurfaces = false

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if loaded.Placement.DefaultMode != "marker" {
		t.Errorf("expected mode marker after round trip, got %s", loaded.Placement.DefaultMode)
	}
	if loaded.Placement.ShowSurfaces {
		t.Error("expected show_surfaces false after round trip")
	}
}
