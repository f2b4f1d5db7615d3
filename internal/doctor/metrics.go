package doctor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/monitor"
)

// DefaultMetricsTimeout bounds the sample taken by MetricsCheck.
const DefaultMetricsTimeout = 5 * time.Second

// NewMetricsChecks returns the checks that sample source once.
func NewMetricsChecks(source monitor.Source) []Check {
	return []Check{&MetricsCheck{Source: source, Timeout: DefaultMetricsTimeout}}
}

// MetricsCheck takes one sample and reports which metrics are available.
type MetricsCheck struct {
	Source  monitor.Source
	Timeout time.Duration
}

func (c *MetricsCheck) Name() string     { return "metrics" }
func (c *MetricsCheck) Category() string { return CategoryMetrics }

func (c *MetricsCheck) Run() CheckResult {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultMetricsTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s, err := c.Source.Collect(ctx)
	if s == nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Can't read system metrics: %s", errors.Message(err)),
			Suggestion: "The dashboard can't run without CPU metrics",
		}
	}

	found := []string{fmt.Sprintf("%d cores", len(s.CPU.PerCore))}
	if s.Memory.TotalBytes > 0 {
		found = append(found, "memory")
	}
	if s.Disk.TotalBytes > 0 {
		found = append(found, "disk "+s.Disk.Path)
	}
	if s.Temperature != nil {
		found = append(found, "sensor "+s.Temperature.Sensor)
	}
	if len(s.Processes) > 0 {
		found = append(found, fmt.Sprintf("%d processes", len(s.Processes)))
	}
	for _, g := range s.GPUs {
		found = append(found, "GPU "+g.Name)
	}
	summary := strings.Join(found, ", ")

	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Some metrics are missing (%s)", summary),
			Suggestion: errors.Message(err),
		}
	}
	if s.Temperature == nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("No temperature sensor (%s)", summary),
			Suggestion: "Set display.show_temperature: false to stop looking for one",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Metrics available: " + summary,
	}
}

func (c *MetricsCheck) Fix() error {
	return nil
}
