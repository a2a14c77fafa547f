// Package config provides configuration loading and management.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ravendarque/beyond-borders/pkg/avatar"
	"github.com/ravendarque/beyond-borders/pkg/orchestrator"
)

// Config represents the full configuration for a render.
type Config struct {
	// Input/Output
	PhotoPath  string `yaml:"photo"`
	OutputPath string `yaml:"output"`

	// Flag selection
	FlagID    string `yaml:"flag"`
	FlagsFile string `yaml:"flags_file"`

	// Crop state
	Position PositionConfig `yaml:"position"`

	// Render
	OutputSize       int     `yaml:"output_size"`
	ThicknessPercent float64 `yaml:"thickness"`
	Presentation     string  `yaml:"presentation"`
	FlagOffset       float64 `yaml:"flag_offset"`
	SegmentRotation  float64 `yaml:"segment_rotation"`
	Background       string  `yaml:"background"`
	Downsampling     bool    `yaml:"downsampling"`
	TrackPerformance bool    `yaml:"track_performance"`

	// Environment is the surface capability class to assume
	// (minimal, balanced, extended).
	Environment string `yaml:"environment"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// PositionConfig represents the stored crop state.
type PositionConfig struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Zoom float64 `yaml:"zoom"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		FlagID: "rainbow",

		OutputSize:       1024,
		ThicknessPercent: 10,
		Presentation:     "ring",
		Downsampling:     true,

		Environment: "minimal",

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config for the
// resolved flag descriptor.
func (c Config) ToOrchestratorConfig(flag avatar.FlagDescriptor) orchestrator.Config {
	presentation, _ := avatar.ParsePresentation(c.Presentation)

	return orchestrator.Config{
		PhotoPath:  c.PhotoPath,
		OutputPath: c.OutputPath,

		Flag:          flag,
		FlagImagePath: flag.ImageRef,

		Position: avatar.ImagePosition{
			X:    c.Position.X,
			Y:    c.Position.Y,
			Zoom: c.Position.Zoom,
		},

		OutputSize:             c.OutputSize,
		ThicknessPercent:       c.ThicknessPercent,
		Presentation:           presentation,
		FlagOffsetPercent:      c.FlagOffset,
		SegmentRotationDegrees: c.SegmentRotation,
		BackgroundColor:        c.Background,
		EnableDownsampling:     c.Downsampling,
		TrackPerformance:       c.TrackPerformance,
	}
}
