// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all geoheat settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Surface SurfaceConfig `yaml:"surface"`
	Points  PointsConfig  `yaml:"points"`
	Data    DataConfig    `yaml:"data"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds the perspective camera and its navigation limits.
// Angles are in degrees.
type CameraConfig struct {
	FOVDeg   float32    `yaml:"fov_deg"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position,flow"` // zero selects the surface default

	MinHeight   float32 `yaml:"min_height"`
	MinPolarDeg float32 `yaml:"min_polar_deg"`
	MaxPolarDeg float32 `yaml:"max_polar_deg"`
	Epsilon     float32 `yaml:"epsilon"`
	RotateSpeed float32 `yaml:"rotate_speed"`
	ZoomFactor  float32 `yaml:"zoom_factor"`
}

// SurfaceConfig selects the surface the data is projected onto.
type SurfaceConfig struct {
	Kind   string  `yaml:"kind"` // flat or round
	Width  float32 `yaml:"width"`
	Depth  float32 `yaml:"depth"`
	Height float32 `yaml:"height"`
	Radius float32 `yaml:"radius"`
}

// PointsConfig controls how data points are drawn.
type PointsConfig struct {
	Mode         string         `yaml:"mode"` // basic or gradient
	Size         float32        `yaml:"size"`
	Alpha        float32        `yaml:"alpha"`
	MinMagnitude float32        `yaml:"min_magnitude"`
	MaxMagnitude float32        `yaml:"max_magnitude"` // zero means unbounded
	Gradient     GradientConfig `yaml:"gradient"`
}

// GradientConfig holds hex colours for the magnitude gradient.
type GradientConfig struct {
	Low    string `yaml:"low"`
	Medium string `yaml:"medium"`
	High   string `yaml:"high"`
}

// DataConfig locates the dataset.
type DataConfig struct {
	Path     string `yaml:"path"`
	Format   string `yaml:"format"`   // xyz or population
	Limit    int    `yaml:"limit"`    // rows read from Path, negative for all
	Watch    bool   `yaml:"watch"`    // reload Path when it changes
	Generate int    `yaml:"generate"` // random points when Path is empty
	Seed     uint64 `yaml:"seed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "geoheat",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			FOVDeg:      45,
			Near:        0.1,
			Far:         5000,
			MinHeight:   10,
			MinPolarDeg: 0.5,
			MaxPolarDeg: 90,
			Epsilon:     1e-3,
			RotateSpeed: 1,
			ZoomFactor:  0.05,
		},
		Surface: SurfaceConfig{
			Kind:   "flat",
			Width:  256,
			Depth:  128,
			Height: 10,
			Radius: 100,
		},
		Points: PointsConfig{
			Mode:  "gradient",
			Size:  0.5,
			Alpha: 1,
			Gradient: GradientConfig{
				Low:    "#ffe900",
				Medium: "#ff8c00",
				High:   "#b51212",
			},
		},
		Data: DataConfig{
			Format:   "xyz",
			Limit:    1000,
			Watch:    true,
			Generate: 500,
			Seed:     1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks values that would otherwise fail deep inside the engine.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Camera.FOVDeg > 0 && c.Camera.FOVDeg < 180, "camera fov %g", c.Camera.FOVDeg)
	check(c.Camera.Near > 0 && c.Camera.Near < c.Camera.Far, "camera clip %g..%g", c.Camera.Near, c.Camera.Far)
	check(c.Camera.MinPolarDeg > 0 && c.Camera.MinPolarDeg < c.Camera.MaxPolarDeg && c.Camera.MaxPolarDeg < 180,
		"camera polar band %g..%g", c.Camera.MinPolarDeg, c.Camera.MaxPolarDeg)
	check(c.Camera.RotateSpeed > 0, "camera rotate speed %g", c.Camera.RotateSpeed)

	switch strings.ToLower(c.Surface.Kind) {
	case "flat", "planar":
		check(c.Surface.Width > 0 && c.Surface.Depth > 0, "flat surface %gx%g", c.Surface.Width, c.Surface.Depth)
	case "round", "spherical", "globe":
		check(c.Surface.Radius > 0, "round surface radius %g", c.Surface.Radius)
	default:
		check(false, "surface kind %q", c.Surface.Kind)
	}

	check(c.Points.Mode == "basic" || c.Points.Mode == "gradient", "points mode %q", c.Points.Mode)
	check(c.Points.Alpha >= 0 && c.Points.Alpha <= 1, "points alpha %g", c.Points.Alpha)
	check(c.Data.Format == "xyz" || c.Data.Format == "population", "data format %q", c.Data.Format)
	check(c.Data.Path != "" || c.Data.Generate >= 0, "data generate %d", c.Data.Generate)
	check(c.Points.MaxMagnitude == 0 || c.Points.MaxMagnitude >= c.Points.MinMagnitude,
		"magnitude filter %g..%g", c.Points.MinMagnitude, c.Points.MaxMagnitude)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
