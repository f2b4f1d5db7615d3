package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/rtop/internal/box"
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/graph"
)

// ProcessSorts are the accepted display.process_sort values.
var ProcessSorts = []string{"cpu", "mem", "pid", "name"}

// MinRefresh is the shortest sampling interval the dashboard accepts.
const MinRefresh = 100 * time.Millisecond

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but rtop only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest rtop release, or lower 'version' in your config.yaml.")
	}

	if cfg.Theme == "" {
		return errors.New(errors.ErrConfig,
			"'theme' can't be empty",
			"Set it to 'default' or the name of a theme file, like 'nord'.")
	}

	if _, err := graph.ParseStyle(cfg.Graph.Symbol); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("graph.symbol '%s' isn't a graph style", cfg.Graph.Symbol),
			"Use one of: braille, block, tty")
	}

	if cfg.Graph.Height < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("graph.height needs to be at least 1 (got %d)", cfg.Graph.Height),
			"Check the 'graph' section in your config.yaml.")
	}

	if _, err := box.ParseCornerStyle(cfg.Box.Corners); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("box.corners '%s' isn't a corner style", cfg.Box.Corners),
			"Use one of: rounded, square")
	}

	if cfg.Refresh < MinRefresh {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("refresh needs to be at least %s (got %s)", MinRefresh, cfg.Refresh),
			"Use a duration like '500ms' or '2s'.")
	}

	if cfg.History < 2 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("history needs to keep at least 2 samples (got %d)", cfg.History),
			"The default is 60.")
	}

	if err := validateDisplay(cfg.Display); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'display' section in your config.yaml.")
	}

	if err := validateThresholdsConfig(cfg.Thresholds); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'thresholds' section in your config.yaml.")
	}

	return nil
}

func validateDisplay(d DisplayConfig) error {
	if d.ShowProcesses && d.ProcessCount < 1 {
		return fmt.Errorf("display.process_count needs to be at least 1 (got %d)", d.ProcessCount)
	}
	for _, s := range ProcessSorts {
		if strings.EqualFold(d.ProcessSort, s) {
			return nil
		}
	}
	return fmt.Errorf("display.process_sort '%s' isn't a sort order (use one of: %s)", d.ProcessSort, strings.Join(ProcessSorts, ", "))
}

func validateThresholdsConfig(t ThresholdsConfig) error {
	if err := validateThresholds("cpu", t.CPU, 100); err != nil {
		return err
	}
	if err := validateThresholds("memory", t.Memory, 100); err != nil {
		return err
	}
	if err := validateThresholds("temperature", t.Temperature, 150); err != nil {
		return err
	}
	return validateThresholds("disk", t.Disk, 100)
}

// validateThresholds checks a threshold configuration for a single metric type.
// Zero means unset.
func validateThresholds(name string, thresh ThresholdValues, limit int) error {
	if thresh.Warning < 0 || thresh.Warning > limit {
		return fmt.Errorf("thresholds.%s.warning needs to be between 0 and %d (got %d)", name, limit, thresh.Warning)
	}
	if thresh.Critical < 0 || thresh.Critical > limit {
		return fmt.Errorf("thresholds.%s.critical needs to be between 0 and %d (got %d)", name, limit, thresh.Critical)
	}
	if thresh.Warning > 0 && thresh.Critical > 0 && thresh.Warning >= thresh.Critical {
		return fmt.Errorf("thresholds.%s.warning (%d) should be less than critical (%d)", name, thresh.Warning, thresh.Critical)
	}
	return nil
}
