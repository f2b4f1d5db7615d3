package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/rileyhilliard/rtop/internal/config"
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/monitor"
)

// dashboardCommand starts the full-screen dashboard. A positive runFor
// quits it after that long.
func dashboardCommand(display DisplayFlags, runFor time.Duration) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrConfig,
			"The dashboard needs a terminal",
			"Run rtop directly in a terminal, or try 'rtop preview' for plain output.")
	}

	cfg, _, err := loadConfig(&display)
	if err != nil {
		return err
	}

	// The dashboard owns the screen, so logs go to a file.
	log, closer, err := openDashboardLog()
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.SetDefault(log)

	themes, err := newThemeManager(cfg, log)
	if err != nil {
		return err
	}

	collector := monitor.NewCollector(
		monitor.WithLogger(log),
		monitor.WithTemperature(cfg.Display.ShowTemperature),
		monitor.WithProcesses(cfg.Display.ShowProcesses),
		monitor.WithGPU(cfg.Display.ShowGPU),
	)
	settings := monitor.SettingsFromConfig(cfg, log)
	settings.RunFor = runFor
	model := monitor.NewModel(themes, collector, settings, log)

	log.Info("starting dashboard: theme=%s interval=%s", themes.Current().Name(), settings.Interval)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Dashboard exited unexpectedly",
			fmt.Sprintf("Check the log for details: %s", logPath()))
	}
	return nil
}

func logPath() string {
	if logFile != "" {
		return config.Expand(logFile)
	}
	return config.DefaultLogFile()
}

func openDashboardLog() (logger.Logger, io.Closer, error) {
	path := logPath()
	log, f, err := logger.OpenFile("[rtop]", path)
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Can't open log file %s", path),
			"Pass --log-file with a writable location.")
	}
	return log, f, nil
}
