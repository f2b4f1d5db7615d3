package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/util"
)

// FileExtensions are the theme file suffixes picked up during discovery.
var FileExtensions = []string{".theme", ".toml"}

// Manager owns the loaded themes and the active selection. It is safe for
// concurrent use: one RWMutex guards both, so Current never observes a
// half-applied reload. Themes themselves are immutable, so a caller that
// grabbed Current keeps a consistent theme for the rest of its frame.
type Manager struct {
	mu     sync.RWMutex
	themes map[string]*Theme
	active *Theme
	paths  []string
	log    logger.Logger
}

// NewManager creates a manager holding the built-in themes with the default
// active. Search paths are recorded for Reload but not scanned yet.
func NewManager(log logger.Logger, searchPaths ...string) *Manager {
	if log == nil {
		log = logger.Noop()
	}
	m := &Manager{
		themes: builtinSet(),
		paths:  append([]string(nil), searchPaths...),
		log:    log,
	}
	m.active = m.themes[DefaultName]
	return m
}

func builtinSet() map[string]*Theme {
	set := make(map[string]*Theme)
	for _, t := range Builtins() {
		set[t.Name()] = t
	}
	return set
}

// LoadAll replaces the search paths and loads every theme file in them.
func (m *Manager) LoadAll(searchPaths []string) error {
	m.mu.Lock()
	m.paths = append([]string(nil), searchPaths...)
	m.mu.Unlock()
	return m.Reload()
}

// Reload rescans the search paths and swaps in the result. Files are read
// and parsed without holding the lock. If the active theme no longer
// exists afterwards the default takes over.
//
// Unparsable files are skipped with a warning. The returned error only
// reports directories that exist but could not be read; whatever did load
// is still applied.
func (m *Manager) Reload() error {
	m.mu.RLock()
	paths := append([]string(nil), m.paths...)
	m.mu.RUnlock()

	fresh, err := m.discover(paths)

	m.mu.Lock()
	defer m.mu.Unlock()

	// Programmatic themes survive reloads unless a file now claims the name.
	for name, t := range m.themes {
		if t.source == "" {
			if _, ok := fresh[name]; !ok {
				fresh[name] = t
			}
		}
	}

	activeName := m.active.Name()
	m.themes = fresh
	if t, ok := fresh[activeName]; ok {
		m.active = t
	} else {
		m.log.Warn("theme %q is gone after reload; switching to %q", activeName, DefaultName)
		m.active = fresh[DefaultName]
	}
	return err
}

func (m *Manager) discover(paths []string) (map[string]*Theme, error) {
	set := builtinSet()
	var unreadable []string

	for _, dir := range paths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				m.log.Warn("can't read theme directory %s: %v", dir, err)
				unreadable = append(unreadable, dir)
			}
			continue
		}

		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name, ok := thKeyFromFile(e.Name())
			if !ok {
				continue
			}
			if name == DefaultName {
				m.log.Warn("ignoring %s: the default theme can't be replaced", filepath.Join(dir, e.Name()))
				continue
			}

			path := filepath.Join(dir, e.Name())
			t, err := loadFile(name, path, m.log)
			if err != nil {
				m.log.Warn("skipping theme %s: %s", path, errors.Message(err))
				continue
			}
			set[name] = t
		}
	}

	if len(unreadable) > 0 {
		return set, errors.New(errors.ErrConfig,
			fmt.Sprintf("Couldn't read theme directories: %s", strings.Join(unreadable, ", ")),
			"Check the directory permissions or fix theme_dirs in your config")
	}
	return set, nil
}

// LoadFile parses a single theme file. The theme is keyed by the file name.
func LoadFile(path string, log logger.Logger) (*Theme, error) {
	name, ok := thKeyFromFile(filepath.Base(path))
	if !ok {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return loadFile(name, path, log)
}

func loadFile(name, path string, log logger.Logger) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrThemeParse,
			fmt.Sprintf("Can't read theme file %s", path), "")
	}
	t, err := Parse(name, data, log)
	if err != nil {
		return nil, err
	}
	return t.withSource(path), nil
}

func thKeyFromFile(file string) (string, bool) {
	ext := filepath.Ext(file)
	for _, want := range FileExtensions {
		if strings.EqualFold(ext, want) {
			key := strings.TrimSuffix(file, ext)
			return key, key != ""
		}
	}
	return "", false
}

// SetActive switches the active theme. An unknown name leaves the current
// theme in place.
func (m *Manager) SetActive(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.themes[name]
	if !ok {
		names := m.namesLocked()
		suggestion := fmt.Sprintf("Available themes: %s", util.JoinOrNone(names))
		if similar := util.SuggestSimilar(name, names, 3); len(similar) > 0 {
			suggestion = fmt.Sprintf("Did you mean '%s'? %s", similar[0], suggestion)
		}
		return errors.New(errors.ErrThemeNotFound,
			fmt.Sprintf("No theme named '%s'", name), suggestion)
	}
	m.active = t
	return nil
}

// Cycle activates the theme step places away from the current one in name
// order, wrapping around, and returns it.
func (m *Manager) Cycle(step int) *Theme {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := m.namesLocked()
	idx := sort.SearchStrings(names, m.active.Name())
	next := ((idx+step)%len(names) + len(names)) % len(names)
	m.active = m.themes[names[next]]
	return m.active
}

// Current returns the active theme. It is never nil.
func (m *Manager) Current() *Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Get looks up a loaded theme by name.
func (m *Manager) Get(name string) (*Theme, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.themes[name]
	return t, ok
}

// Add registers a theme under its name, replacing any theme of that name
// except the default.
func (m *Manager) Add(t *Theme) error {
	if t == nil || t.Name() == "" {
		return errors.New(errors.ErrThemeParse, "Can't add a theme without a name", "")
	}
	if t.Name() == DefaultName {
		return errors.New(errors.ErrThemeParse, "The default theme can't be replaced", "Give the theme another name")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.themes[t.Name()] = t
	if m.active.Name() == t.Name() {
		m.active = t
	}
	return nil
}

// Names returns the loaded theme names, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.namesLocked()
}

func (m *Manager) namesLocked() []string {
	names := make([]string, 0, len(m.themes))
	for name := range m.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SearchPaths returns the directories scanned by Reload.
func (m *Manager) SearchPaths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.paths...)
}
