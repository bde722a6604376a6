// Package config handles editor configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"slices"

	"github.com/Faultbox/meshpick/internal/engine/primitives"
	"github.com/Faultbox/meshpick/internal/logger"
)

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("invalid config")

// Config holds all editor settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Editor  EditorConfig  `yaml:"editor"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds window settings.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// CameraConfig holds the initial camera placement and projection.
type CameraConfig struct {
	FOVDegrees      float32 `yaml:"fov_degrees"`
	Distance        float32 `yaml:"distance"`
	ArcDegrees      float32 `yaml:"arc_degrees"`
	RotationDegrees float32 `yaml:"rotation_degrees"`
	Near            float32 `yaml:"near"`
	Far             float32 `yaml:"far"`
}

// RGBA is a color written as [r, g, b, a] in YAML.
type RGBA [4]uint8

// Color converts to color.RGBA.
func (c RGBA) Color() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// EditorConfig holds editing settings.
type EditorConfig struct {
	DragScale      float32 `yaml:"drag_scale"`      // world units per pixel
	HighlightColor RGBA    `yaml:"highlight_color"` // selected triangles
	BaseColor      RGBA    `yaml:"base_color"`      // generated meshes
}

// SceneConfig lists the models created at startup.
type SceneConfig struct {
	Models []ModelConfig `yaml:"models"`
}

// ModelConfig describes one generated model.
type ModelConfig struct {
	Name         string     `yaml:"name"`
	Primitive    string     `yaml:"primitive"`    // cube, sphere or cylinder
	Size         float32    `yaml:"size"`         // half side for cubes, diameter otherwise
	Tessellation int        `yaml:"tessellation"` // ignored for cubes
	Position     [3]float32 `yaml:"position"`
	Rotation     [2]float32 `yaml:"rotation"` // degrees about X, then Y
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "meshedit",
		},
		Camera: CameraConfig{
			FOVDegrees:      45,
			Distance:        4.5,
			ArcDegrees:      -30,
			RotationDegrees: 225,
			Near:            0.01,
			Far:             1000,
		},
		Editor: EditorConfig{
			DragScale:      0.01,
			HighlightColor: RGBA{255, 0, 0, 255},
			BaseColor:      RGBA{190, 190, 190, 255},
		},
		Scene: SceneConfig{
			Models: []ModelConfig{
				{Name: "Cube", Primitive: primitives.KindCube, Size: 1, Tessellation: 16},
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

var knownPrimitives = []string{primitives.KindCube, primitives.KindSphere, primitives.KindCylinder}

// Validate checks the settings that would otherwise fail at startup.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip range %v..%v", c.Camera.Near, c.Camera.Far))
	}
	if c.Editor.DragScale <= 0 {
		errs = append(errs, fmt.Errorf("drag scale %v", c.Editor.DragScale))
	}
	if !slices.Contains(logger.Levels, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("log level %q", c.Logging.Level))
	}
	for i, m := range c.Scene.Models {
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("model %d has no name", i))
		}
		if !slices.Contains(knownPrimitives, m.Primitive) {
			errs = append(errs, fmt.Errorf("model %d (%s): primitive %q", i, m.Name, m.Primitive))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
