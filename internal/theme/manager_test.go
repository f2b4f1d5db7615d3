package theme

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rtop/internal/color"
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/logger"
)

func writeTheme(t *testing.T, dir, file, content string) string {
	t.Helper()
	path := filepath.Join(dir, file)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewManager(t *testing.T) {
	m := NewManager(nil)

	require.NotNil(t, m.Current())
	assert.Equal(t, DefaultName, m.Current().Name())
	assert.Contains(t, m.Names(), DefaultName)
	assert.Contains(t, m.Names(), "nord")
	assert.IsIncreasing(t, m.Names())
}

func TestManager_LoadAll(t *testing.T) {
	dir := t.TempDir()
	path := writeTheme(t, dir, "ocean.theme", `name = "Deep Ocean"
main_fg = "#a0b0c0"`)
	writeTheme(t, dir, "forest.toml", `main_fg = "#00ff00"`)
	writeTheme(t, dir, "notes.txt", `main_fg = "#ffffff"`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.theme"), 0o755))

	m := NewManager(logger.Noop())
	require.NoError(t, m.LoadAll([]string{dir, filepath.Join(dir, "missing")}))

	ocean, ok := m.Get("ocean")
	require.True(t, ok, "file name is the lookup key")
	assert.Equal(t, "Deep Ocean", ocean.DisplayName())
	assert.Equal(t, path, ocean.Source())
	assert.Equal(t, color.MustParse("#a0b0c0"), ocean.Color(KeyMainFG))

	_, ok = m.Get("forest")
	assert.True(t, ok)
	_, ok = m.Get("notes")
	assert.False(t, ok)
	_, ok = m.Get("Deep Ocean")
	assert.False(t, ok, "declared name is not a lookup key")

	assert.Equal(t, []string{dir, filepath.Join(dir, "missing")}, m.SearchPaths())
}

func TestManager_LoadAll_SkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "broken.theme", `main_fg = "#fff`)
	writeTheme(t, dir, "fine.theme", `main_fg = "#fff"`)

	log := logger.NewBufferLogger()
	m := NewManager(log)
	require.NoError(t, m.LoadAll([]string{dir}))

	_, ok := m.Get("broken")
	assert.False(t, ok)
	_, ok = m.Get("fine")
	assert.True(t, ok)
	assert.True(t, log.Contains("warn", "broken.theme"))
	assert.Equal(t, DefaultName, m.Current().Name())
}

func TestManager_LoadAll_DefaultCannotBeReplaced(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "default.theme", `main_fg = "#ff0000"`)

	log := logger.NewBufferLogger()
	m := NewManager(log)
	require.NoError(t, m.LoadAll([]string{dir}))

	d, ok := m.Get(DefaultName)
	require.True(t, ok)
	assert.Same(t, Default(), d)
	assert.True(t, log.Contains("warn", "default.theme"))
}

func TestManager_LoadAll_LaterPathsWin(t *testing.T) {
	system := t.TempDir()
	user := t.TempDir()
	writeTheme(t, system, "shared.theme", `main_fg = "#111111"`)
	writeTheme(t, user, "shared.theme", `main_fg = "#222222"`)
	writeTheme(t, user, "nord.theme", `main_fg = "#333333"`)

	m := NewManager(nil)
	require.NoError(t, m.LoadAll([]string{system, user}))

	shared, _ := m.Get("shared")
	assert.Equal(t, color.Gray(0x22), shared.Color(KeyMainFG))

	nord, _ := m.Get("nord")
	assert.Equal(t, color.Gray(0x33), nord.Color(KeyMainFG), "user files override built-ins")
}

func TestManager_SetActive(t *testing.T) {
	m := NewManager(nil)

	require.NoError(t, m.SetActive("dracula"))
	assert.Equal(t, "dracula", m.Current().Name())

	before := m.Current()
	err := m.SetActive("nonexistent")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrThemeNotFound))
	assert.Contains(t, err.Error(), "nord", "suggestion lists what is available")
	assert.Same(t, before, m.Current())
}

func TestManager_SetActive_SuggestsSimilar(t *testing.T) {
	m := NewManager(nil)

	err := m.SetActive("drakula")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Did you mean 'dracula'?")
}

func TestManager_Cycle(t *testing.T) {
	m := NewManager(nil)
	names := m.Names()

	next := m.Cycle(1)
	idx := indexOf(names, DefaultName)
	assert.Equal(t, names[(idx+1)%len(names)], next.Name())
	assert.Same(t, next, m.Current())

	back := m.Cycle(-1)
	assert.Equal(t, DefaultName, back.Name())

	require.NoError(t, m.SetActive(names[0]))
	assert.Equal(t, names[len(names)-1], m.Cycle(-1).Name(), "wraps backwards")
	assert.Equal(t, names[0], m.Cycle(1).Name(), "wraps forwards")
}

func indexOf(items []string, want string) int {
	for i, s := range items {
		if s == want {
			return i
		}
	}
	return -1
}

func TestManager_Reload(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "live.theme", `main_fg = "#101010"`)

	m := NewManager(logger.Noop(), dir)
	require.NoError(t, m.Reload())
	require.NoError(t, m.SetActive("live"))

	captured := m.Current()

	writeTheme(t, dir, "live.theme", `main_fg = "#202020"`)
	require.NoError(t, m.Reload())

	assert.Equal(t, color.Gray(0x10), captured.Color(KeyMainFG), "captured theme is never mutated")
	assert.Equal(t, "live", m.Current().Name(), "active selection survives reload")
	assert.Equal(t, color.Gray(0x20), m.Current().Color(KeyMainFG))
}

func TestManager_Reload_ActiveRemoved(t *testing.T) {
	dir := t.TempDir()
	path := writeTheme(t, dir, "temp.theme", `main_fg = "#101010"`)

	log := logger.NewBufferLogger()
	m := NewManager(log, dir)
	require.NoError(t, m.Reload())
	require.NoError(t, m.SetActive("temp"))

	require.NoError(t, os.Remove(path))
	require.NoError(t, m.Reload())

	assert.Equal(t, DefaultName, m.Current().Name())
	assert.True(t, log.Contains("warn", "temp"))
}

func TestManager_Reload_KeepsAddedThemes(t *testing.T) {
	m := NewManager(nil)
	custom, err := Parse("custom", []byte(`main_fg = "#abcdef"`), nil)
	require.NoError(t, err)
	require.NoError(t, m.Add(custom))
	require.NoError(t, m.SetActive("custom"))

	require.NoError(t, m.Reload())
	assert.Same(t, custom, m.Current())
}

func TestManager_Add(t *testing.T) {
	m := NewManager(nil)

	assert.Error(t, m.Add(nil))
	assert.Error(t, m.Add(Default()), "default can't be replaced")

	first, _ := Parse("mine", []byte(`title = "#111"`), nil)
	second, _ := Parse("mine", []byte(`title = "#222"`), nil)
	require.NoError(t, m.Add(first))
	require.NoError(t, m.SetActive("mine"))
	require.NoError(t, m.Add(second))
	assert.Same(t, second, m.Current(), "replacing the active theme updates the selection")
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "a.theme", `main_fg = "#aaaaaa"`)
	writeTheme(t, dir, "b.theme", `main_fg = "#bbbbbb"`)

	m := NewManager(logger.Noop(), dir)
	require.NoError(t, m.Reload())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				th := m.Current()
				assert.NotNil(t, th)
				assert.NotNil(t, th.Gradient(CPU))
			}
		}()
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if n%2 == 0 {
					_ = m.SetActive("a")
				} else {
					_ = m.Reload()
				}
			}
		}(i)
	}
	wg.Wait()

	assert.NotNil(t, m.Current())
}
