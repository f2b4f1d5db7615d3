package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rtop/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:    "future version",
			modify:  func(c *Config) { c.Version = CurrentConfigVersion + 1 },
			wantErr: true,
			errMsg:  "from the future",
		},
		{
			name:    "empty theme",
			modify:  func(c *Config) { c.Theme = "" },
			wantErr: true,
			errMsg:  "'theme' can't be empty",
		},
		{
			name:    "unknown graph symbol",
			modify:  func(c *Config) { c.Graph.Symbol = "dots" },
			wantErr: true,
			errMsg:  "graph.symbol 'dots'",
		},
		{
			name:   "graph symbol is case insensitive",
			modify: func(c *Config) { c.Graph.Symbol = "TTY" },
		},
		{
			name:    "zero graph height",
			modify:  func(c *Config) { c.Graph.Height = 0 },
			wantErr: true,
			errMsg:  "graph.height",
		},
		{
			name:    "unknown process sort",
			modify:  func(c *Config) { c.Display.ProcessSort = "rss" },
			wantErr: true,
			errMsg:  "display.process_sort 'rss'",
		},
		{
			name:   "process sort is case insensitive",
			modify: func(c *Config) { c.Display.ProcessSort = "MEM" },
		},
		{
			name:    "no process rows",
			modify:  func(c *Config) { c.Display.ProcessCount = 0 },
			wantErr: true,
			errMsg:  "display.process_count",
		},
		{
			name: "process rows ignored when hidden",
			modify: func(c *Config) {
				c.Display.ShowProcesses = false
				c.Display.ProcessCount = 0
			},
		},
		{
			name:    "unknown corners",
			modify:  func(c *Config) { c.Box.Corners = "sharp" },
			wantErr: true,
			errMsg:  "box.corners 'sharp'",
		},
		{
			name:    "refresh too fast",
			modify:  func(c *Config) { c.Refresh = 50 * time.Millisecond },
			wantErr: true,
			errMsg:  "refresh needs to be at least 100ms",
		},
		{
			name:   "refresh at minimum",
			modify: func(c *Config) { c.Refresh = MinRefresh },
		},
		{
			name:    "history too short",
			modify:  func(c *Config) { c.History = 1 },
			wantErr: true,
			errMsg:  "history",
		},
		{
			name:    "cpu warning above critical",
			modify:  func(c *Config) { c.Thresholds.CPU = ThresholdValues{Warning: 90, Critical: 80} },
			wantErr: true,
			errMsg:  "thresholds.cpu.warning",
		},
		{
			name:   "temperature may exceed 100",
			modify: func(c *Config) { c.Thresholds.Temperature = ThresholdValues{Warning: 95, Critical: 105} },
		},
		{
			name:    "disk over 100",
			modify:  func(c *Config) { c.Thresholds.Disk = ThresholdValues{Warning: 80, Critical: 101} },
			wantErr: true,
			errMsg:  "thresholds.disk.critical",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	err := Validate(nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestValidate_WrapsParseErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Graph.Symbol = "ascii"

	err := Validate(cfg)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "Unknown graph style", "cause is kept")
}

func TestValidateThresholds(t *testing.T) {
	tests := []struct {
		name    string
		metric  string
		thresh  ThresholdValues
		limit   int
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid thresholds",
			metric: "cpu",
			thresh: ThresholdValues{Warning: 70, Critical: 90},
			limit:  100,
		},
		{
			name:   "zero values (unset)",
			metric: "memory",
			thresh: ThresholdValues{Warning: 0, Critical: 0},
			limit:  100,
		},
		{
			name:    "negative warning",
			metric:  "disk",
			thresh:  ThresholdValues{Warning: -10, Critical: 90},
			limit:   100,
			wantErr: true,
			errMsg:  "between 0 and 100",
		},
		{
			name:    "warning over limit",
			metric:  "cpu",
			thresh:  ThresholdValues{Warning: 110, Critical: 120},
			limit:   100,
			wantErr: true,
			errMsg:  "between 0 and 100",
		},
		{
			name:    "critical over limit",
			metric:  "temperature",
			thresh:  ThresholdValues{Warning: 70, Critical: 200},
			limit:   150,
			wantErr: true,
			errMsg:  "between 0 and 150",
		},
		{
			name:    "warning equals critical",
			metric:  "cpu",
			thresh:  ThresholdValues{Warning: 80, Critical: 80},
			limit:   100,
			wantErr: true,
			errMsg:  "should be less than",
		},
		{
			name:   "only warning set (zero critical is allowed)",
			metric: "memory",
			thresh: ThresholdValues{Warning: 70, Critical: 0},
			limit:  100,
		},
		{
			name:   "only critical set (zero warning is allowed)",
			metric: "cpu",
			thresh: ThresholdValues{Warning: 0, Critical: 90},
			limit:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateThresholds(tt.metric, tt.thresh, tt.limit)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
