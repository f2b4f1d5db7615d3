package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rtop/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, "default", cfg.Theme)
	assert.Equal(t, []string{filepath.Join("/xdg", "rtop", "themes")}, cfg.ThemeDirs)
	assert.Equal(t, time.Second, cfg.Refresh)
	assert.Equal(t, 60, cfg.History)
	assert.Equal(t, "braille", cfg.Graph.Symbol)
	assert.Equal(t, 6, cfg.Graph.Height)
	assert.True(t, cfg.Graph.NoZero)
	assert.Equal(t, "rounded", cfg.Box.Corners)
	assert.True(t, cfg.Colors.Enabled)
	assert.True(t, cfg.Colors.Gradient)
	assert.True(t, cfg.Display.ShowTemperature)
	assert.True(t, cfg.Display.ShowNetwork)
	assert.True(t, cfg.Display.ShowDisk)
	assert.True(t, cfg.Display.ShowProcesses)
	assert.True(t, cfg.Display.ShowGPU)
	assert.Equal(t, 10, cfg.Display.ProcessCount)
	assert.Equal(t, "cpu", cfg.Display.ProcessSort)
	assert.False(t, cfg.Display.DecimalUnits)

	assert.Equal(t, ThresholdValues{Warning: 60, Critical: 80}, cfg.Thresholds.CPU)
	assert.Equal(t, ThresholdValues{Warning: 70, Critical: 90}, cfg.Thresholds.Memory)
	assert.Equal(t, ThresholdValues{Warning: 65, Critical: 80}, cfg.Thresholds.Temperature)
	assert.Equal(t, ThresholdValues{Warning: 80, Critical: 95}, cfg.Thresholds.Disk)

	require.NoError(t, Validate(cfg))
}

func TestDirs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_STATE_HOME", "/state")

	assert.Equal(t, filepath.Join("/cfg", "rtop"), Dir())
	assert.Equal(t, filepath.Join("/cfg", "rtop", "config.yaml"), DefaultPath())
	assert.Equal(t, filepath.Join("/state", "rtop", "rtop.log"), DefaultLogFile())
}

func TestDirs_FallBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_STATE_HOME", "relative/is/ignored")

	assert.Equal(t, filepath.Join(home, ".config", "rtop"), Dir())
	assert.Equal(t, filepath.Join(home, ".local", "state", "rtop"), StateDir())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
version: 1
theme: nord
theme_dirs:
  - /usr/share/rtop/themes
  - ~/my-themes
refresh: 500ms
history: 120
graph:
  symbol: block
  height: 4
box:
  corners: square
colors:
  gradient: false
display:
  show_disk: false
thresholds:
  cpu:
    warning: 50
    critical: 75
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, "nord", cfg.Theme)
	assert.Equal(t, []string{"/usr/share/rtop/themes", filepath.Join(home, "my-themes")}, cfg.ThemeDirs)
	assert.Equal(t, 500*time.Millisecond, cfg.Refresh)
	assert.Equal(t, 120, cfg.History)
	assert.Equal(t, "block", cfg.Graph.Symbol)
	assert.Equal(t, 4, cfg.Graph.Height)
	assert.True(t, cfg.Graph.NoZero, "unset keys keep their defaults")
	assert.Equal(t, "square", cfg.Box.Corners)
	assert.True(t, cfg.Colors.Enabled)
	assert.False(t, cfg.Colors.Gradient)
	assert.False(t, cfg.Display.ShowDisk)
	assert.True(t, cfg.Display.ShowNetwork)
	assert.Equal(t, ThresholdValues{Warning: 50, Critical: 75}, cfg.Thresholds.CPU)
	assert.Equal(t, ThresholdValues{Warning: 70, Critical: 90}, cfg.Thresholds.Memory)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("theme: nord\n"), 0644))

	t.Setenv("RTOP_THEME", "dracula")
	t.Setenv("RTOP_GRAPH_SYMBOL", "tty")
	t.Setenv("RTOP_REFRESH", "2s")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "dracula", cfg.Theme)
	assert.Equal(t, "tty", cfg.Graph.Symbol)
	assert.Equal(t, 2*time.Second, cfg.Refresh)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("theme: [unclosed\n"), 0644))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	t.Run("nothing found", func(t *testing.T) {
		path, err := Find("")
		require.NoError(t, err)
		assert.Empty(t, path)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Find(filepath.Join(xdg, "missing.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("explicit path wins", func(t *testing.T) {
		explicit := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(explicit, []byte("theme: nord\n"), 0644))

		path, err := Find(explicit)
		require.NoError(t, err)
		assert.Equal(t, explicit, path)
	})

	t.Run("xdg config", func(t *testing.T) {
		require.NoError(t, os.MkdirAll(filepath.Join(xdg, "rtop"), 0755))
		want := filepath.Join(xdg, "rtop", "config.yaml")
		require.NoError(t, os.WriteFile(want, []byte("theme: nord\n"), 0644))

		path, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, want, path)
	})
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOrDefault_EnvWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("RTOP_THEME", "gruvbox")
	t.Setenv("RTOP_COLORS_GRADIENT", "false")

	cfg, _, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.False(t, cfg.Colors.Gradient)
}

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("RTOP_TEST_SHARE", "/opt/share")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "tilde alone", input: "~", want: home},
		{name: "tilde path", input: "~/themes", want: filepath.Join(home, "themes")},
		{name: "env var", input: "$RTOP_TEST_SHARE/themes", want: "/opt/share/themes"},
		{name: "braced env var", input: "${RTOP_TEST_SHARE}/rtop", want: "/opt/share/rtop"},
		{name: "absolute unchanged", input: "/etc/rtop", want: "/etc/rtop"},
		{name: "other user's tilde unchanged", input: "~bob/themes", want: "~bob/themes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expand(tt.input))
		})
	}
}

func TestThresholdValues_Level(t *testing.T) {
	th := ThresholdValues{Warning: 60, Critical: 80}

	assert.Equal(t, LevelNormal, th.Level(59.9))
	assert.Equal(t, LevelWarning, th.Level(60))
	assert.Equal(t, LevelWarning, th.Level(79))
	assert.Equal(t, LevelCritical, th.Level(80))
	assert.Equal(t, LevelNormal, ThresholdValues{}.Level(100), "unset thresholds never trigger")
}
