// Package export writes a point-in-time metrics snapshot as JSON, CSV or
// YAML for scripts and log pipelines.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/monitor"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatCSV, FormatYAML}

// DefaultTop is the default number of processes in an export.
const DefaultTop = 10

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrExport,
		fmt.Sprintf("Unknown export format %q", name),
		"Use one of: json, csv, yaml")
}

// FormatForPath picks a format from a file extension, falling back to JSON.
func FormatForPath(path string) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return FormatJSON
}

// Snapshot is one exported sample. Rates are bytes per second over the
// capture window.
type Snapshot struct {
	Timestamp   time.Time    `json:"timestamp" yaml:"timestamp"`
	System      System       `json:"system" yaml:"system"`
	CPU         CPU          `json:"cpu" yaml:"cpu"`
	Memory      Memory       `json:"memory" yaml:"memory"`
	Network     Network      `json:"network" yaml:"network"`
	Disk        Disk         `json:"disk" yaml:"disk"`
	Temperature *Temperature `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	GPUs        []GPU        `json:"gpus,omitempty" yaml:"gpus,omitempty"`
	Processes   []Process    `json:"processes,omitempty" yaml:"processes,omitempty"`
}

type System struct {
	Hostname      string `json:"hostname" yaml:"hostname"`
	Platform      string `json:"platform" yaml:"platform"`
	UptimeSeconds int64  `json:"uptime_seconds" yaml:"uptime_seconds"`
}

type CPU struct {
	Percent     float64    `json:"percent" yaml:"percent"`
	PerCore     []float64  `json:"per_core" yaml:"per_core"`
	LoadAverage [3]float64 `json:"load_average" yaml:"load_average"`
}

type Memory struct {
	UsedBytes  uint64  `json:"used_bytes" yaml:"used_bytes"`
	TotalBytes uint64  `json:"total_bytes" yaml:"total_bytes"`
	Percent    float64 `json:"percent" yaml:"percent"`
}

type Network struct {
	RxBytes uint64  `json:"rx_bytes" yaml:"rx_bytes"`
	TxBytes uint64  `json:"tx_bytes" yaml:"tx_bytes"`
	RxRate  float64 `json:"rx_bytes_per_sec" yaml:"rx_bytes_per_sec"`
	TxRate  float64 `json:"tx_bytes_per_sec" yaml:"tx_bytes_per_sec"`
}

type Disk struct {
	Path        string  `json:"path" yaml:"path"`
	UsedBytes   uint64  `json:"used_bytes" yaml:"used_bytes"`
	TotalBytes  uint64  `json:"total_bytes" yaml:"total_bytes"`
	UsedPercent float64 `json:"used_percent" yaml:"used_percent"`
	ReadRate    float64 `json:"read_bytes_per_sec" yaml:"read_bytes_per_sec"`
	WriteRate   float64 `json:"write_bytes_per_sec" yaml:"write_bytes_per_sec"`
}

type Temperature struct {
	Sensor  string  `json:"sensor" yaml:"sensor"`
	Celsius float64 `json:"celsius" yaml:"celsius"`
}

type GPU struct {
	Index            int     `json:"index" yaml:"index"`
	Name             string  `json:"name" yaml:"name"`
	Utilization      float64 `json:"utilization" yaml:"utilization"`
	MemoryUsedBytes  uint64  `json:"memory_used_bytes" yaml:"memory_used_bytes"`
	MemoryTotalBytes uint64  `json:"memory_total_bytes" yaml:"memory_total_bytes"`
	Celsius          float64 `json:"celsius,omitempty" yaml:"celsius,omitempty"`
	PowerWatts       float64 `json:"power_watts,omitempty" yaml:"power_watts,omitempty"`
}

type Process struct {
	PID           int32   `json:"pid" yaml:"pid"`
	Name          string  `json:"name" yaml:"name"`
	User          string  `json:"user,omitempty" yaml:"user,omitempty"`
	CPUPercent    float64 `json:"cpu_percent" yaml:"cpu_percent"`
	MemoryBytes   uint64  `json:"memory_bytes" yaml:"memory_bytes"`
	MemoryPercent float64 `json:"memory_percent" yaml:"memory_percent"`
}

// NewSnapshot converts s, taking rates from h. Only the top busiest
// processes by CPU are kept; top <= 0 keeps none.
func NewSnapshot(s *monitor.Sample, h *monitor.History, top int) Snapshot {
	snap := Snapshot{
		Timestamp: s.Timestamp.UTC(),
		System: System{
			Hostname:      s.System.Hostname,
			Platform:      s.System.Platform,
			UptimeSeconds: int64(s.System.Uptime / time.Second),
		},
		CPU: CPU{
			Percent:     s.CPU.Percent,
			PerCore:     append([]float64{}, s.CPU.PerCore...),
			LoadAverage: s.CPU.LoadAvg,
		},
		Memory: Memory{
			UsedBytes:  s.Memory.UsedBytes,
			TotalBytes: s.Memory.TotalBytes,
			Percent:    s.Memory.Percent,
		},
		Network: Network{RxBytes: s.Network.RxBytes, TxBytes: s.Network.TxBytes},
		Disk: Disk{
			Path:        s.Disk.Path,
			UsedBytes:   s.Disk.UsedBytes,
			TotalBytes:  s.Disk.TotalBytes,
			UsedPercent: s.Disk.UsedPercent,
		},
	}
	if h != nil {
		snap.Network.RxRate, _ = h.Latest(monitor.SeriesDownload)
		snap.Network.TxRate, _ = h.Latest(monitor.SeriesUpload)
		snap.Disk.ReadRate, _ = h.Latest(monitor.SeriesDiskRead)
		snap.Disk.WriteRate, _ = h.Latest(monitor.SeriesDiskWrite)
	}
	if t := s.Temperature; t != nil {
		snap.Temperature = &Temperature{Sensor: t.Sensor, Celsius: t.Celsius}
	}
	for _, g := range s.GPUs {
		snap.GPUs = append(snap.GPUs, GPU(g))
	}

	procs := monitor.SortProcesses(s.Processes, monitor.SortCPU, false)
	if top < len(procs) {
		procs = procs[:max(top, 0)]
	}
	for _, p := range procs {
		snap.Processes = append(snap.Processes, Process(p))
	}
	return snap
}

// Capture takes two samples interval apart so rates and CPU percentages
// cover a real window, and converts the second. Like Source.Collect it may
// return a snapshot together with a partial-collection error.
func Capture(ctx context.Context, src monitor.Source, interval time.Duration, top int) (*Snapshot, error) {
	h := monitor.NewHistory(2)

	first, err := src.Collect(ctx)
	if first == nil {
		return nil, err
	}
	h.Push(first)

	select {
	case <-ctx.Done():
		return nil, errors.WrapWithCode(ctx.Err(), errors.ErrCollect, "Metrics collection cancelled", "")
	case <-time.After(interval):
	}

	second, err := src.Collect(ctx)
	if second == nil {
		return nil, err
	}
	h.Push(second)

	snap := NewSnapshot(second, h, top)
	return &snap, err
}

// Write encodes snap to w.
func Write(w io.Writer, snap Snapshot, f Format) error {
	var err error
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(snap)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(snap); err == nil {
			err = enc.Close()
		}
	case FormatCSV:
		err = writeCSV(w, snap)
	default:
		return errors.New(errors.ErrExport,
			fmt.Sprintf("Unknown export format %q", f),
			"Use one of: json, csv, yaml")
	}
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrExport,
			fmt.Sprintf("Couldn't write %s export", f), "")
	}
	return nil
}

// CSVHeader is the column order of CSV exports.
var CSVHeader = []string{
	"timestamp", "hostname",
	"cpu_percent", "load_1m", "load_5m", "load_15m",
	"memory_percent", "memory_used_bytes", "memory_total_bytes",
	"rx_bytes_per_sec", "tx_bytes_per_sec",
	"disk_used_percent", "disk_read_bytes_per_sec", "disk_write_bytes_per_sec",
	"temperature_celsius", "uptime_seconds",
}

// writeCSV writes a header and one row of the scalar metrics. Per-core,
// process and GPU lists have no place in a flat row and are left out.
func writeCSV(w io.Writer, snap Snapshot) error {
	f2 := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
	u := func(v uint64) string { return strconv.FormatUint(v, 10) }

	temp := ""
	if snap.Temperature != nil {
		temp = f2(snap.Temperature.Celsius)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	if err := cw.Write([]string{
		snap.Timestamp.Format(time.RFC3339), snap.System.Hostname,
		f2(snap.CPU.Percent), f2(snap.CPU.LoadAverage[0]), f2(snap.CPU.LoadAverage[1]), f2(snap.CPU.LoadAverage[2]),
		f2(snap.Memory.Percent), u(snap.Memory.UsedBytes), u(snap.Memory.TotalBytes),
		f2(snap.Network.RxRate), f2(snap.Network.TxRate),
		f2(snap.Disk.UsedPercent), f2(snap.Disk.ReadRate), f2(snap.Disk.WriteRate),
		temp, strconv.FormatInt(snap.System.UptimeSeconds, 10),
	}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
