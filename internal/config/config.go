// Package config handles application configuration loading and management.
package config

import "time"

// Config holds all application settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Placement PlacementConfig `yaml:"placement"`
	Tracking  TrackingConfig  `yaml:"tracking"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display settings for the viewer.
type GraphicsConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`
}

// PlacementConfig holds placement behaviour settings.
type PlacementConfig struct {
	ForwardOffset float32 `yaml:"forward_offset"` // Distance in front of the camera for free-form placement
	DragThreshold float32 `yaml:"drag_threshold"` // Screen-space distance between drag placements
	DefaultMode   string  `yaml:"default_mode"`   // freeform, surface or marker
	ShowSurfaces  bool    `yaml:"show_surfaces"`  // Draw detected plane indicators
}

// TrackingConfig holds settings for the simulated tracking session.
type TrackingConfig struct {
	PlaneInterval time.Duration `yaml:"plane_interval"` // Time between simulated plane detections
	MaxPlanes     int           `yaml:"max_planes"`
	MarkerImages  []string      `yaml:"marker_images"` // Recognizable marker image names
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Placement: PlacementConfig{
			ForwardOffset: 0.2,
			DragThreshold: 40,
			DefaultMode:   "freeform",
			ShowSurfaces:  true,
		},
		Tracking: TrackingConfig{
			PlaneInterval: 2 * time.Second,
			MaxPlanes:     4,
			MarkerImages:  []string{"poster", "card"},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
