package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all viewer and grid configuration values
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Grid    GridConfig    `yaml:"grid"`
	Camera  CameraConfig  `yaml:"camera"`
	LOD     LODConfig     `yaml:"lod"`
	Viewer  ViewerConfig  `yaml:"viewer"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
}

type GridConfig struct {
	TileSize          float64 `yaml:"tile_size"`
	Topology          string  `yaml:"topology"` // "square" or "hex"
	OffsetX           float64 `yaml:"offset_x"`
	OffsetY           float64 `yaml:"offset_y"`
	FollowsBackground bool    `yaml:"follows_background"`
}

// CameraConfig seeds the camera. ZoomPrimary is the table-wide zoom, ZoomSecondary
// the per-viewer zoom; both are clamped to [MinZoom, MaxZoom] by the camera.
type CameraConfig struct {
	StartX        float64 `yaml:"start_x"`
	StartY        float64 `yaml:"start_y"`
	ZoomPrimary   float64 `yaml:"zoom_primary"`
	ZoomSecondary float64 `yaml:"zoom_secondary"`
	MinZoom       float64 `yaml:"min_zoom"`
	MaxZoom       float64 `yaml:"max_zoom"`
	PanSpeed      float64 `yaml:"pan_speed"`       // screen pixels per tick
	WheelZoomStep float64 `yaml:"wheel_zoom_step"` // multiplicative step per wheel notch
}

// LODConfig overrides the generation limits. Zero values keep the built-in defaults.
type LODConfig struct {
	CutoffZoom      float64         `yaml:"cutoff_zoom"`
	BaseMargin      float64         `yaml:"base_margin"`
	BoundsPadding   int             `yaml:"bounds_padding"`
	MaxLinesPerAxis int             `yaml:"max_lines_per_axis"`
	Tiers           []LODTierConfig `yaml:"tiers,omitempty"`
}

// LODTierConfig applies to zoom levels below BelowZoom; the last tier is open-ended
type LODTierConfig struct {
	BelowZoom       float64 `yaml:"below_zoom"`
	MinTilePixels   float64 `yaml:"min_tile_pixels"`
	Padding         float64 `yaml:"padding"`
	MaxTilesPerAxis int     `yaml:"max_tiles_per_axis"`
	MaxTiles        int     `yaml:"max_tiles"`
	MarginScale     float64 `yaml:"margin_scale"`
}

type ViewerConfig struct {
	// Fit key zooms so this world-space area fills the window
	ContentWidth     float64 `yaml:"content_width"`
	ContentHeight    float64 `yaml:"content_height"`
	PerfDebug        bool    `yaml:"perf_debug"`
	SlowGenerationMs float64 `yaml:"slow_generation_ms"`
	PerfLogSeconds   float64 `yaml:"perf_log_seconds"`
}

// DefaultConfig returns the values used when no file overrides them
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  1280,
			ScreenHeight: 800,
			WindowTitle:  "tilegrid",
			Resizable:    true,
		},
		Grid: GridConfig{
			TileSize: 50,
			Topology: "square",
		},
		Camera: CameraConfig{
			ZoomPrimary:   1,
			ZoomSecondary: 1,
			MinZoom:       0.05,
			MaxZoom:       5,
			PanSpeed:      8,
			WheelZoomStep: 1.1,
		},
		Viewer: ViewerConfig{
			ContentWidth:     2000,
			ContentHeight:    2000,
			SlowGenerationMs: 4,
			PerfLogSeconds:   3,
		},
	}
}

// LoadConfig loads the configuration from a yaml file on top of DefaultConfig
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes yaml bytes on top of DefaultConfig and validates the result
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	cfg, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return cfg
}

// Validate reports every inconsistent value at once
func (c *Config) Validate() error {
	var errs []error
	if c.Grid.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("grid.tile_size must be positive, got %v", c.Grid.TileSize))
	}
	switch strings.ToLower(c.Grid.Topology) {
	case "", "square", "hex", "hexagon":
	default:
		errs = append(errs, fmt.Errorf("grid.topology must be square or hex, got %q", c.Grid.Topology))
	}
	if c.Camera.MinZoom <= 0 {
		errs = append(errs, fmt.Errorf("camera.min_zoom must be positive, got %v", c.Camera.MinZoom))
	}
	if c.Camera.MaxZoom < c.Camera.MinZoom {
		errs = append(errs, fmt.Errorf("camera.max_zoom %v below min_zoom %v", c.Camera.MaxZoom, c.Camera.MinZoom))
	}
	if c.Camera.ZoomPrimary <= 0 || c.Camera.ZoomSecondary <= 0 {
		errs = append(errs, fmt.Errorf("camera zoom factors must be positive, got %v and %v",
			c.Camera.ZoomPrimary, c.Camera.ZoomSecondary))
	}
	if c.Camera.WheelZoomStep != 0 && c.Camera.WheelZoomStep <= 1 {
		errs = append(errs, fmt.Errorf("camera.wheel_zoom_step must exceed 1, got %v", c.Camera.WheelZoomStep))
	}
	for i, t := range c.LOD.Tiers {
		if t.MaxTilesPerAxis <= 0 || t.MaxTiles <= 0 {
			errs = append(errs, fmt.Errorf("lod.tiers[%d] needs positive tile caps", i))
		}
	}
	return errors.Join(errs...)
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetTileSize() float64 {
	return c.Grid.TileSize
}

func (c *Config) GetZoomLimits() (float64, float64) {
	return c.Camera.MinZoom, c.Camera.MaxZoom
}

func (c *Config) GetPanSpeed() float64 {
	if c.Camera.PanSpeed <= 0 {
		return 8
	}
	return c.Camera.PanSpeed
}

func (c *Config) GetWheelZoomStep() float64 {
	if c.Camera.WheelZoomStep <= 1 {
		return 1.1
	}
	return c.Camera.WheelZoomStep
}

// GetSlowGeneration is the generation time above which the viewer reports
func (c *Config) GetSlowGeneration() time.Duration {
	if c.Viewer.SlowGenerationMs <= 0 {
		return 4 * time.Millisecond
	}
	return time.Duration(c.Viewer.SlowGenerationMs * float64(time.Millisecond))
}
