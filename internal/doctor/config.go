package doctor

import (
	"fmt"

	"github.com/rileyhilliard/rtop/internal/config"
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/theme"
)

// NewConfigChecks returns the checks for the config file. explicit is the
// --config flag value, empty to use the default location.
func NewConfigChecks(explicit string) []Check {
	return []Check{
		&ConfigFileCheck{ConfigPath: explicit},
		&ConfigSchemaCheck{ConfigPath: explicit},
		&ConfigThemeCheck{ConfigPath: explicit},
	}
}

// ConfigFileCheck verifies that a config file exists. Running without one
// is fine, so a missing file is only a warning.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to use the default
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run() CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    errors.Message(err),
			Suggestion: "Check the --config path, or drop it to use " + config.DefaultPath(),
		}
	}

	if path == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No config file, using defaults",
			Suggestion: "Run 'rtop init' to create " + config.DefaultPath(),
			Fixable:    true,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Config file: %s", path),
	}
}

// Fix writes a default config when none exists.
func (c *ConfigFileCheck) Fix() error {
	if c.ConfigPath != "" {
		return nil
	}
	path, err := config.Find("")
	if err != nil || path != "" {
		return err
	}
	return config.Write(config.DefaultPath(), config.DefaultConfig())
}

// ConfigSchemaCheck verifies that the config loads and validates.
type ConfigSchemaCheck struct {
	ConfigPath string
}

func (c *ConfigSchemaCheck) Name() string     { return "config_schema" }
func (c *ConfigSchemaCheck) Category() string { return CategoryConfig }

func (c *ConfigSchemaCheck) Run() CheckResult {
	cfg, _, err := config.LoadOrDefault(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Failed to load config: %s", errors.Message(err)),
			Suggestion: "Check the YAML syntax in your config file",
		}
	}

	if err := config.Validate(cfg); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Config error: %s", errors.Message(err)),
			Suggestion: errors.Suggestion(err),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Config valid",
	}
}

func (c *ConfigSchemaCheck) Fix() error {
	return nil // Schema issues require manual intervention
}

// ConfigThemeCheck verifies the configured theme exists.
type ConfigThemeCheck struct {
	ConfigPath string
}

func (c *ConfigThemeCheck) Name() string     { return "config_theme" }
func (c *ConfigThemeCheck) Category() string { return CategoryConfig }

func (c *ConfigThemeCheck) Run() CheckResult {
	cfg, _, err := config.LoadOrDefault(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: "Cannot check theme: config didn't load",
		}
	}

	m := theme.NewManager(nil, cfg.ThemeDirs...)
	_ = m.Reload() // ThemeDirCheck reports unreadable directories
	if err := m.SetActive(cfg.Theme); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Theme '%s' not found, the dashboard won't start", cfg.Theme),
			Suggestion: errors.Suggestion(err),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Theme: %s", m.Current().DisplayName()),
	}
}

func (c *ConfigThemeCheck) Fix() error {
	return nil
}
