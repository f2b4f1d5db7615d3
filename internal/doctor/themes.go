package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/theme"
	"github.com/rileyhilliard/rtop/internal/util"
)

// NewThemeChecks returns a directory check and a file check for each
// theme directory.
func NewThemeChecks(dirs []string) []Check {
	var checks []Check
	for _, dir := range dirs {
		checks = append(checks, &ThemeDirCheck{Dir: dir}, &ThemeFilesCheck{Dir: dir})
	}
	return checks
}

// ThemeDirCheck verifies a theme directory is a readable directory.
type ThemeDirCheck struct {
	Dir string
}

func (c *ThemeDirCheck) Name() string     { return "theme_dir_" + filepath.Base(c.Dir) }
func (c *ThemeDirCheck) Category() string { return CategoryThemes }

func (c *ThemeDirCheck) Run() CheckResult {
	info, err := os.Stat(c.Dir)
	switch {
	case os.IsNotExist(err):
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Theme directory %s doesn't exist", c.Dir),
			Suggestion: "Create it and put *.theme files there, e.g. 'rtop themes export default " + filepath.Join(c.Dir, "mine.theme") + "'",
			Fixable:    true,
		}
	case err != nil:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Can't access %s: %v", c.Dir, err),
			Suggestion: "Check directory permissions",
		}
	case !info.IsDir():
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s is a file, not a directory", c.Dir),
			Suggestion: "Fix 'theme_dirs' in your config.yaml",
		}
	}

	files, err := themeFiles(c.Dir)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Can't read %s: %v", c.Dir, err),
			Suggestion: "Check directory permissions",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%s: %d %s", c.Dir, len(files), util.Pluralize(len(files), "theme file", "theme files")),
	}
}

// Fix creates the directory.
func (c *ThemeDirCheck) Fix() error {
	return os.MkdirAll(c.Dir, 0755)
}

// ThemeFilesCheck parses every theme file in a directory.
type ThemeFilesCheck struct {
	Dir string
}

func (c *ThemeFilesCheck) Name() string     { return "theme_files_" + filepath.Base(c.Dir) }
func (c *ThemeFilesCheck) Category() string { return CategoryThemes }

func (c *ThemeFilesCheck) Run() CheckResult {
	files, err := themeFiles(c.Dir)
	if err != nil || len(files) == 0 {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("No theme files to check in %s", c.Dir),
		}
	}

	var broken, warned []string
	for _, path := range files {
		log := logger.NewBufferLogger()
		if _, err := theme.LoadFile(path, log); err != nil {
			broken = append(broken, fmt.Sprintf("%s: %s", filepath.Base(path), errors.Message(err)))
			continue
		}
		warned = append(warned, log.AtLevel("warn")...)
	}

	switch {
	case len(broken) > 0:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%d of %d theme files in %s don't parse", len(broken), len(files), c.Dir),
			Suggestion: strings.Join(broken, "\n"),
		}
	case len(warned) > 0:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%d %s in theme files in %s", len(warned), util.Pluralize(len(warned), "problem", "problems"), c.Dir),
			Suggestion: strings.Join(warned, "\n"),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("All %d theme files in %s parse cleanly", len(files), c.Dir),
	}
}

func (c *ThemeFilesCheck) Fix() error {
	return nil
}

// themeFiles lists the theme files in dir, sorted by name.
func themeFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		for _, want := range theme.FileExtensions {
			if strings.EqualFold(ext, want) {
				out = append(out, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	return out, nil
}
