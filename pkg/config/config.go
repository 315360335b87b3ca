// Package config loads ringforge settings from a TOML file. Missing files
// and missing keys fall back to Default().
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full application configuration.
type Config struct {
	Window  Window  `toml:"window"`
	Preview Preview `toml:"preview"`
	Export  Export  `toml:"export"`
	Log     Log     `toml:"log"`
}

type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// Preview controls the interactive viewport and preview tessellation.
type Preview struct {
	FPS        int     `toml:"fps"`
	FOV        float64 `toml:"fov"`
	Background string  `toml:"background"`
	MeshCells  int     `toml:"mesh_cells"`
	// EmitIntervalMS throttles camera frames pushed to the web view.
	EmitIntervalMS int `toml:"emit_interval_ms"`
}

// EmitInterval returns EmitIntervalMS as a duration.
func (p Preview) EmitInterval() time.Duration {
	return time.Duration(p.EmitIntervalMS) * time.Millisecond
}

type Export struct {
	MeshCells int `toml:"mesh_cells"`
	// DefaultDir is used when the user has not picked a folder. Empty means
	// the working directory.
	DefaultDir string `toml:"default_dir"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{
			Title:  "Ring Forge",
			Width:  1200,
			Height: 800,
		},
		Preview: Preview{
			FPS:            60,
			FOV:            75,
			Background:     "#f0f0f0",
			MeshCells:      120,
			EmitIntervalMS: 33,
		},
		Export: Export{
			MeshCells: 200,
		},
		Log: Log{Level: "info"},
	}
}

// MaxFPS is the highest accepted preview.fps.
const MaxFPS = 240

// Validate rejects values the application cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Preview.FPS <= 0 || c.Preview.FPS > MaxFPS {
		errs = append(errs, fmt.Errorf("preview.fps must be in [1, %d], got %d", MaxFPS, c.Preview.FPS))
	}
	if c.Preview.FOV <= 0 || c.Preview.FOV >= 180 {
		errs = append(errs, fmt.Errorf("preview.fov must be in (0, 180), got %v", c.Preview.FOV))
	}
	if c.Preview.MeshCells <= 0 || c.Export.MeshCells <= 0 {
		errs = append(errs, fmt.Errorf("mesh_cells must be positive"))
	}
	if c.Preview.EmitIntervalMS < 0 {
		errs = append(errs, fmt.Errorf("preview.emit_interval_ms must not be negative"))
	}
	return errors.Join(errs...)
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as TOML, creating the parent directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultPath is <user config dir>/ringforge/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "ringforge.toml"
	}
	return filepath.Join(dir, "ringforge", "config.toml")
}
