// Package config handles terramesh configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/terramesh/internal/export"
)

// Config errors.
var (
	ErrInvalidTolerance = errors.New("tolerance must be positive")
	ErrNoInput          = errors.New("no input raster configured")
)

// Config holds all generator settings.
type Config struct {
	Input   InputConfig   `yaml:"input" toml:"input"`
	Mesh    MeshConfig    `yaml:"mesh" toml:"mesh"`
	Output  OutputConfig  `yaml:"output" toml:"output"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// InputConfig selects the elevation raster.
type InputConfig struct {
	Path   string `yaml:"path" toml:"path"`
	Format string `yaml:"format" toml:"format"` // auto, hgt or asc
}

// MeshConfig holds construction and refinement settings.
type MeshConfig struct {
	CellSize     int     `yaml:"cell_size" toml:"cell_size"` // initial cell edge in samples
	Tolerance    float64 `yaml:"tolerance" toml:"tolerance"` // allowed vertical deviation
	MinEdge      float64 `yaml:"min_edge" toml:"min_edge"`   // 0 = half a sample
	UseHeight    bool    `yaml:"use_height" toml:"use_height"`
	MaxTriangles int     `yaml:"max_triangles" toml:"max_triangles"` // 0 = unlimited
	Verify       bool    `yaml:"verify" toml:"verify"`
	UTM          bool    `yaml:"utm" toml:"utm"`
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Dir       string   `yaml:"dir" toml:"dir"`
	Formats   []string `yaml:"formats" toml:"formats"`
	Gzip      bool     `yaml:"gzip" toml:"gzip"`
	BaseDepth float64  `yaml:"base_depth" toml:"base_depth"` // smesh bottom below the lowest point
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Format: "auto",
		},
		Mesh: MeshConfig{
			CellSize:  32,
			Tolerance: 5,
			UseHeight: true,
		},
		Output: OutputConfig{
			Dir:       ".",
			Formats:   []string{"inp"},
			BaseDepth: 100,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return ErrNoInput
	}
	if !(c.Mesh.Tolerance > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidTolerance, c.Mesh.Tolerance)
	}
	for _, name := range c.Output.Formats {
		f, err := export.Lookup(name)
		if err != nil {
			return err
		}
		if f.Name == "smesh" && !(c.Output.BaseDepth > 0) {
			return fmt.Errorf("%w: %v", export.ErrInvalidBaseDepth, c.Output.BaseDepth)
		}
	}
	return nil
}
