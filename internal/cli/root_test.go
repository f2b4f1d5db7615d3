package cli

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rtop/internal/config"
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/logger"
)

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown command error",
			err:  stderrors.New(`unknown command "foo" for "rtop"`),
			want: true,
		},
		{
			name: "unknown flag error",
			err:  stderrors.New(`unknown flag: --foo`),
			want: true,
		},
		{
			name: "unknown shorthand flag",
			err:  stderrors.New(`unknown shorthand flag: 'z' in -z`),
			want: true,
		},
		{
			name: "other error",
			err:  stderrors.New("theme not found"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isUnknownCommandError(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "standard cobra format",
			err:  stderrors.New(`unknown command "foo" for "rtop"`),
			want: "foo",
		},
		{
			name: "command with hyphen",
			err:  stderrors.New(`unknown command "my-theme" for "rtop"`),
			want: "my-theme",
		},
		{
			name: "no quotes returns empty",
			err:  stderrors.New("unknown command foo"),
			want: "",
		},
		{
			name: "single quote returns empty",
			err:  stderrors.New(`unknown command "foo`),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractUnknownCommand(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatError(t *testing.T) {
	t.Run("suggests similar command", func(t *testing.T) {
		out := formatError(stderrors.New(`unknown command "theems" for "rtop"`))
		assert.Contains(t, out, "Did you mean 'themes'?")
		assert.Contains(t, out, "rtop --help")
	})

	t.Run("structured error keeps suggestion", func(t *testing.T) {
		out := formatError(errors.New(errors.ErrConfig, "Bad config", "Fix it"))
		assert.Contains(t, out, "✗ Bad config")
		assert.Contains(t, out, "Fix it")
	})

	t.Run("plain error ends with newline", func(t *testing.T) {
		assert.Equal(t, "boom\n", formatError(stderrors.New("boom")))
	})
}

func TestRootCommandFlags(t *testing.T) {
	for _, name := range []string{"config", "no-color", "log-file"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	for _, name := range []string{"theme", "graph-symbol", "corners", "interval", "no-gradient", "duration"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), name)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := commandNames()
	for _, want := range []string{"themes", "theme", "preview", "init", "doctor", "version", "completion", "export"} {
		assert.Contains(t, names, want)
	}
}

// isolateConfig points config discovery at an empty temp directory and
// resets the global flags for the duration of a test.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_STATE_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("NO_COLOR", "1")

	origCfg, origNoColor := cfgFile, noColor
	t.Cleanup(func() { cfgFile, noColor = origCfg, origNoColor })
	cfgFile, noColor = "", false
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "rtop", config.ConfigFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		isolateConfig(t)

		cfg, path, err := loadConfig(nil)
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Equal(t, "default", cfg.Theme)
	})

	t.Run("flags override the file", func(t *testing.T) {
		dir := isolateConfig(t)
		want := writeConfig(t, dir, "theme: nord\ngraph:\n  symbol: tty\n")

		cfg, path, err := loadConfig(&DisplayFlags{GraphSymbol: "block"})
		require.NoError(t, err)
		assert.Equal(t, want, path)
		assert.Equal(t, "nord", cfg.Theme)
		assert.Equal(t, "block", cfg.Graph.Symbol)
	})

	t.Run("invalid flag value fails validation", func(t *testing.T) {
		isolateConfig(t)

		_, _, err := loadConfig(&DisplayFlags{Corners: "beveled"})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("explicit config must exist", func(t *testing.T) {
		dir := isolateConfig(t)
		cfgFile = filepath.Join(dir, "missing.yaml")

		_, _, err := loadConfig(nil)
		assert.Error(t, err)
	})
}

func TestNewThemeManager(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mine.theme"), []byte(`main_fg = "#123456"`), 0o644))

	cfg := config.DefaultConfig()
	cfg.ThemeDirs = []string{dir}
	cfg.Theme = "mine"

	m, err := newThemeManager(cfg, logger.Noop())
	require.NoError(t, err)
	assert.Equal(t, "mine", m.Current().Name())

	cfg.Theme = "nope"
	_, err = newThemeManager(cfg, logger.Noop())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrThemeNotFound))
}
