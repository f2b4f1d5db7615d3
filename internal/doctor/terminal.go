package doctor

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// minColumns matches the width at which the dashboard stops stacking boxes.
const minColumns = 80

// NewTerminalChecks returns checks for the terminal rtop runs in.
func NewTerminalChecks() []Check {
	fd := os.Stdout.Fd()
	return []Check{
		&TerminalCheck{
			IsTerminal: func() bool { return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) },
			Size:       func() (int, int, error) { return term.GetSize(int(fd)) },
		},
		&ColorCheck{Profile: termenv.EnvColorProfile()},
	}
}

// TerminalCheck verifies stdout is a terminal wide enough for side-by-side
// boxes.
type TerminalCheck struct {
	IsTerminal func() bool
	Size       func() (width, height int, err error)
}

func (c *TerminalCheck) Name() string     { return "terminal" }
func (c *TerminalCheck) Category() string { return CategoryTerminal }

func (c *TerminalCheck) Run() CheckResult {
	if !c.IsTerminal() {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Output is not a terminal",
			Suggestion: "The dashboard needs a terminal; 'rtop preview' works anywhere",
		}
	}

	width, height, err := c.Size()
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: fmt.Sprintf("Can't read terminal size: %v", err),
		}
	}
	if width < minColumns {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Terminal is %dx%d; boxes stack below %d columns", width, height, minColumns),
			Suggestion: "Widen the window to see memory and network side by side",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Terminal is %dx%d", width, height),
	}
}

func (c *TerminalCheck) Fix() error {
	return nil
}

// ColorCheck reports how many colors the terminal advertises.
type ColorCheck struct {
	Profile termenv.Profile
}

func (c *ColorCheck) Name() string     { return "color" }
func (c *ColorCheck) Category() string { return CategoryTerminal }

func (c *ColorCheck) Run() CheckResult {
	switch c.Profile {
	case termenv.TrueColor:
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "24-bit color",
		}
	case termenv.ANSI256:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "256 colors; gradients are approximated",
			Suggestion: "Set COLORTERM=truecolor if your terminal supports 24-bit color",
		}
	case termenv.ANSI:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "16 colors; themes lose most of their detail",
			Suggestion: "Use a terminal with 256 or 24-bit color, or run with --no-gradient",
		}
	default:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No color (NO_COLOR is set or the terminal reports none)",
			Suggestion: "Unset NO_COLOR to see themes",
		}
	}
}

func (c *ColorCheck) Fix() error {
	return nil
}
