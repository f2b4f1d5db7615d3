package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rileyhilliard/rtop/internal/errors"
)

const (
	// AppName names the config and state directories.
	AppName = "rtop"
	// ConfigFileName is the config file inside the config directory.
	ConfigFileName = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. RTOP_THEME=nord.
	EnvPrefix = "RTOP"
	// LogFileName is the dashboard log file inside the state directory.
	LogFileName = "rtop.log"
)

// Dir returns the config directory: $XDG_CONFIG_HOME/rtop, falling back to
// ~/.config/rtop.
func Dir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns $XDG_STATE_HOME/rtop, falling back to ~/.local/state/rtop.
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func xdgDir(env, fallback string) string {
	if base := os.Getenv(env); base != "" && filepath.IsAbs(base) {
		return filepath.Join(base, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(home, fallback, AppName)
}

// DefaultPath returns where the config file lives when --config isn't given.
func DefaultPath() string {
	return filepath.Join(Dir(), ConfigFileName)
}

// DefaultThemeDir returns the user theme directory.
func DefaultThemeDir() string {
	return filepath.Join(Dir(), "themes")
}

// DefaultLogFile returns where the dashboard logs while it owns the screen.
func DefaultLogFile() string {
	return filepath.Join(StateDir(), LogFileName)
}

// Find locates the config file:
// 1. Explicit path (from --config flag), which must exist
// 2. $XDG_CONFIG_HOME/rtop/config.yaml or ~/.config/rtop/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		explicit = ExpandTilde(explicit)
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct, or run 'rtop init' to create one")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	path := DefaultPath()
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return "", nil
}

// Load reads config from the specified path, with defaults and RTOP_*
// environment overrides merged in.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'rtop init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// LoadOrDefault loads the config found by Find, or defaults plus environment
// overrides when there is no config file. Returns the path it loaded ("" for
// defaults).
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		cfg, err := parseConfig(newViper(), "environment")
		return cfg, "", err
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// newViper returns a viper instance that knows every key, so RTOP_* variables
// override them even when the file leaves them out.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())
	return v
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("theme", d.Theme)
	v.SetDefault("theme_dirs", d.ThemeDirs)
	v.SetDefault("refresh", d.Refresh)
	v.SetDefault("history", d.History)
	v.SetDefault("graph.symbol", d.Graph.Symbol)
	v.SetDefault("graph.height", d.Graph.Height)
	v.SetDefault("graph.no_zero", d.Graph.NoZero)
	v.SetDefault("box.corners", d.Box.Corners)
	v.SetDefault("colors.enabled", d.Colors.Enabled)
	v.SetDefault("colors.gradient", d.Colors.Gradient)
	v.SetDefault("display.show_temperature", d.Display.ShowTemperature)
	v.SetDefault("display.show_network", d.Display.ShowNetwork)
	v.SetDefault("display.show_disk", d.Display.ShowDisk)
	v.SetDefault("display.show_processes", d.Display.ShowProcesses)
	v.SetDefault("display.show_gpu", d.Display.ShowGPU)
	v.SetDefault("display.process_count", d.Display.ProcessCount)
	v.SetDefault("display.process_sort", d.Display.ProcessSort)
	v.SetDefault("display.decimal_units", d.Display.DecimalUnits)
	for name, t := range map[string]ThresholdValues{
		"cpu":         d.Thresholds.CPU,
		"memory":      d.Thresholds.Memory,
		"temperature": d.Thresholds.Temperature,
		"disk":        d.Thresholds.Disk,
	} {
		v.SetDefault("thresholds."+name+".warning", t.Warning)
		v.SetDefault("thresholds."+name+".critical", t.Critical)
	}
}

// parseConfig converts viper config to our Config struct.
func parseConfig(v *viper.Viper, source string) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+source)
	}

	for i, dir := range cfg.ThemeDirs {
		cfg.ThemeDirs[i] = Expand(dir)
	}

	return cfg, nil
}
