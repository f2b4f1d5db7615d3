package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete config.yaml file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Theme is the name of the theme active at startup.
	Theme string `yaml:"theme" mapstructure:"theme"`

	// ThemeDirs are searched for *.theme files, later directories winning.
	// Supports ~ and $VAR expansion.
	ThemeDirs []string `yaml:"theme_dirs" mapstructure:"theme_dirs"`

	// Refresh is the sampling interval of the dashboard.
	Refresh time.Duration `yaml:"refresh" mapstructure:"refresh"`

	// History is how many samples each graph keeps.
	History int `yaml:"history" mapstructure:"history"`

	Graph      GraphConfig      `yaml:"graph" mapstructure:"graph"`
	Box        BoxConfig        `yaml:"box" mapstructure:"box"`
	Colors     ColorsConfig     `yaml:"colors" mapstructure:"colors"`
	Display    DisplayConfig    `yaml:"display" mapstructure:"display"`
	Thresholds ThresholdsConfig `yaml:"thresholds" mapstructure:"thresholds"`
}

// GraphConfig controls how history graphs are drawn.
type GraphConfig struct {
	// Symbol is the glyph set: "braille", "block", or "tty".
	Symbol string `yaml:"symbol" mapstructure:"symbol"`

	// Height is the number of rows of the CPU graph. Other graphs scale from it.
	Height int `yaml:"height" mapstructure:"height"`

	// NoZero keeps small non-zero samples visible on the baseline.
	NoZero bool `yaml:"no_zero" mapstructure:"no_zero"`
}

// BoxConfig controls widget frames.
type BoxConfig struct {
	// Corners is "rounded" or "square".
	Corners string `yaml:"corners" mapstructure:"corners"`
}

// ColorsConfig controls color output.
type ColorsConfig struct {
	// Enabled turns all color off when false. NO_COLOR and non-TTY output
	// also disable color regardless of this setting.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Gradient colors meters and graphs from the theme gradients. When false
	// a single color per metric is used.
	Gradient bool `yaml:"gradient" mapstructure:"gradient"`
}

// DisplayConfig toggles optional dashboard widgets.
type DisplayConfig struct {
	ShowTemperature bool `yaml:"show_temperature" mapstructure:"show_temperature"`
	ShowNetwork     bool `yaml:"show_network" mapstructure:"show_network"`
	ShowDisk        bool `yaml:"show_disk" mapstructure:"show_disk"`
	ShowProcesses   bool `yaml:"show_processes" mapstructure:"show_processes"`
	ShowGPU         bool `yaml:"show_gpu" mapstructure:"show_gpu"`

	// ProcessCount is how many rows the process box shows.
	ProcessCount int `yaml:"process_count" mapstructure:"process_count"`

	// ProcessSort is the initial process order: cpu, mem, pid or name.
	ProcessSort string `yaml:"process_sort" mapstructure:"process_sort"`

	// DecimalUnits formats byte counts in powers of 1000 instead of 1024.
	DecimalUnits bool `yaml:"decimal_units" mapstructure:"decimal_units"`
}

// ThresholdsConfig holds warning/critical levels for each metric.
type ThresholdsConfig struct {
	CPU         ThresholdValues `yaml:"cpu" mapstructure:"cpu"`
	Memory      ThresholdValues `yaml:"memory" mapstructure:"memory"`
	Temperature ThresholdValues `yaml:"temperature" mapstructure:"temperature"`
	Disk        ThresholdValues `yaml:"disk" mapstructure:"disk"`
}

// ThresholdValues defines warning and critical levels for a metric.
// Percent for cpu, memory and disk; degrees Celsius for temperature.
type ThresholdValues struct {
	Warning  int `yaml:"warning" mapstructure:"warning"`
	Critical int `yaml:"critical" mapstructure:"critical"`
}

// Level classifies a value against the thresholds.
type Level int

const (
	LevelNormal Level = iota
	LevelWarning
	LevelCritical
)

// Level returns where v sits relative to the thresholds. A zero threshold
// is treated as unset.
func (t ThresholdValues) Level(v float64) Level {
	switch {
	case t.Critical > 0 && v >= float64(t.Critical):
		return LevelCritical
	case t.Warning > 0 && v >= float64(t.Warning):
		return LevelWarning
	}
	return LevelNormal
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:   CurrentConfigVersion,
		Theme:     "default",
		ThemeDirs: []string{DefaultThemeDir()},
		Refresh:   time.Second,
		History:   60,
		Graph: GraphConfig{
			Symbol: "braille",
			Height: 6,
			NoZero: true,
		},
		Box: BoxConfig{
			Corners: "rounded",
		},
		Colors: ColorsConfig{
			Enabled:  true,
			Gradient: true,
		},
		Display: DisplayConfig{
			ShowTemperature: true,
			ShowNetwork:     true,
			ShowDisk:        true,
			ShowProcesses:   true,
			ShowGPU:         true,
			ProcessCount:    10,
			ProcessSort:     "cpu",
		},
		Thresholds: ThresholdsConfig{
			CPU:         ThresholdValues{Warning: 60, Critical: 80},
			Memory:      ThresholdValues{Warning: 70, Critical: 90},
			Temperature: ThresholdValues{Warning: 65, Critical: 80},
			Disk:        ThresholdValues{Warning: 80, Critical: 95},
		},
	}
}
