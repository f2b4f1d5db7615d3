package color

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ShouldDisableColor reports whether color output should be suppressed:
// NO_COLOR is set (any value, see https://no-color.org/) or stdout is not
// a terminal.
func ShouldDisableColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	fd := os.Stdout.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// ApplyProfile configures the lipgloss renderer. With enabled=false, or when
// ShouldDisableColor says so, every styled render produces plain text.
// Returns whether color ended up enabled.
func ApplyProfile(enabled bool) bool {
	if !enabled || ShouldDisableColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
		return false
	}
	return true
}
