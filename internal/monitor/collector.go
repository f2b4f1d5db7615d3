package monitor

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/logger"
)

// Source produces metric samples. The dashboard only depends on this, so
// tests can drive it with canned samples.
type Source interface {
	Collect(ctx context.Context) (*Sample, error)
}

// readers are the gopsutil calls a Collector makes. Tests swap them out.
type readers struct {
	cpuPercent   func(ctx context.Context, perCPU bool) ([]float64, error)
	memory       func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	netCounters  func(ctx context.Context) ([]psnet.IOCountersStat, error)
	diskCounters func(ctx context.Context) (map[string]disk.IOCountersStat, error)
	diskUsage    func(ctx context.Context, path string) (*disk.UsageStat, error)
	temperatures func(ctx context.Context) ([]sensors.TemperatureStat, error)
	loadAvg      func(ctx context.Context) (*load.AvgStat, error)
	hostInfo     func(ctx context.Context) (*host.InfoStat, error)
	processes    func(ctx context.Context) ([]ProcessInfo, error)
	gpus         func(ctx context.Context) ([]GPUMetrics, error)
}

func gopsutilReaders() readers {
	return readers{
		cpuPercent: func(ctx context.Context, perCPU bool) ([]float64, error) {
			// interval 0 compares against the previous call
			return cpu.PercentWithContext(ctx, 0, perCPU)
		},
		memory: mem.VirtualMemoryWithContext,
		netCounters: func(ctx context.Context) ([]psnet.IOCountersStat, error) {
			return psnet.IOCountersWithContext(ctx, true)
		},
		diskCounters: func(ctx context.Context) (map[string]disk.IOCountersStat, error) {
			return disk.IOCountersWithContext(ctx)
		},
		diskUsage:    disk.UsageWithContext,
		temperatures: sensors.TemperaturesWithContext,
		loadAvg:      load.AvgWithContext,
		hostInfo:     host.InfoWithContext,
		processes:    newProcessTable().list,
		gpus:         queryNvidiaSMI,
	}
}

// Collector gathers local system metrics via gopsutil.
type Collector struct {
	read        readers
	diskPath    string
	temperature bool
	processes   bool
	gpu         bool
	log         logger.Logger

	mu         sync.Mutex
	hostInfo   *host.InfoStat // fetched once; only uptime is refreshed
	gpuMissing bool           // nvidia-smi not installed; stop asking
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithDiskPath sets the mount point whose usage is reported. Default "/".
func WithDiskPath(path string) CollectorOption {
	return func(c *Collector) { c.diskPath = path }
}

// WithTemperature toggles sensor reads, which can be slow on some machines.
func WithTemperature(enabled bool) CollectorOption {
	return func(c *Collector) { c.temperature = enabled }
}

// WithProcesses toggles the process list.
func WithProcesses(enabled bool) CollectorOption {
	return func(c *Collector) { c.processes = enabled }
}

// WithGPU toggles GPU polling through nvidia-smi.
func WithGPU(enabled bool) CollectorOption {
	return func(c *Collector) { c.gpu = enabled }
}

// WithLogger sets where sub-collector failures are reported.
func WithLogger(log logger.Logger) CollectorOption {
	return func(c *Collector) { c.log = log }
}

// NewCollector creates a collector for the local machine.
func NewCollector(opts ...CollectorOption) *Collector {
	c := &Collector{
		read:        gopsutilReaders(),
		diskPath:    "/",
		temperature: true,
		processes:   true,
		gpu:         true,
		log:         logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect gathers one sample. If individual sub-collectors fail it still
// returns as much data as possible along with a COLLECT error listing the
// failures. Only a CPU failure or a cancelled context yields a nil sample.
func (c *Collector) Collect(ctx context.Context) (*Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrCollect, "Metrics collection cancelled", "")
	}

	s := &Sample{Timestamp: time.Now()}

	if err := c.collectCPU(ctx, s); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrCollect,
			"Couldn't read CPU usage",
			"rtop needs read access to the system's CPU statistics")
	}

	var errs []string
	record := func(name string, err error) {
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", name, err))
		}
	}
	record("memory", c.collectMemory(ctx, s))
	record("network", c.collectNetwork(ctx, s))
	record("disk", c.collectDisk(ctx, s))
	record("system", c.collectSystem(ctx, s))
	if c.processes {
		record("processes", c.collectProcesses(ctx, s))
	}
	if c.temperature {
		c.collectTemperature(ctx, s)
	}
	if c.gpu {
		c.collectGPU(ctx, s)
	}

	if len(errs) > 0 {
		c.log.Debug("partial collection: %s", strings.Join(errs, "; "))
		return s, errors.New(errors.ErrCollect,
			"Some metrics couldn't be read: "+strings.Join(errs, "; "), "")
	}
	return s, nil
}

func (c *Collector) collectCPU(ctx context.Context, s *Sample) error {
	total, err := c.read.cpuPercent(ctx, false)
	if err != nil {
		return err
	}
	if len(total) > 0 {
		s.CPU.Percent = clampPercent(total[0])
	}

	perCore, err := c.read.cpuPercent(ctx, true)
	if err != nil {
		return err
	}
	s.CPU.PerCore = make([]float64, len(perCore))
	for i, v := range perCore {
		s.CPU.PerCore[i] = clampPercent(v)
	}

	if avg, err := c.read.loadAvg(ctx); err == nil && avg != nil {
		s.CPU.LoadAvg = [3]float64{avg.Load1, avg.Load5, avg.Load15}
	}
	return nil
}

func (c *Collector) collectMemory(ctx context.Context, s *Sample) error {
	vm, err := c.read.memory(ctx)
	if err != nil {
		return err
	}
	s.Memory = MemoryMetrics{
		UsedBytes:  vm.Used,
		TotalBytes: vm.Total,
		Percent:    clampPercent(vm.UsedPercent),
	}
	return nil
}

func (c *Collector) collectNetwork(ctx context.Context, s *Sample) error {
	counters, err := c.read.netCounters(ctx)
	if err != nil {
		return err
	}
	for _, iface := range counters {
		if isLoopback(iface.Name) {
			continue
		}
		s.Network.RxBytes += iface.BytesRecv
		s.Network.TxBytes += iface.BytesSent
	}
	return nil
}

func (c *Collector) collectDisk(ctx context.Context, s *Sample) error {
	s.Disk.Path = c.diskPath

	usage, usageErr := c.read.diskUsage(ctx, c.diskPath)
	if usageErr == nil {
		s.Disk.UsedBytes = usage.Used
		s.Disk.TotalBytes = usage.Total
		s.Disk.UsedPercent = clampPercent(usage.UsedPercent)
	}

	counters, err := c.read.diskCounters(ctx)
	if err == nil {
		for name, io := range counters {
			if skipDiskDevice(name, counters) {
				continue
			}
			s.Disk.ReadBytes += io.ReadBytes
			s.Disk.WriteBytes += io.WriteBytes
		}
	}

	if usageErr != nil {
		return usageErr
	}
	return err
}

func (c *Collector) collectSystem(ctx context.Context, s *Sample) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hostInfo == nil {
		info, err := c.read.hostInfo(ctx)
		if err != nil {
			return err
		}
		c.hostInfo = info
	}

	s.System = SystemInfo{
		Hostname: c.hostInfo.Hostname,
		Platform: strings.TrimSpace(c.hostInfo.Platform + " " + c.hostInfo.PlatformVersion),
		Uptime:   time.Duration(c.hostInfo.Uptime) * time.Second,
	}
	if c.hostInfo.BootTime > 0 {
		s.System.Uptime = s.Timestamp.Sub(time.Unix(int64(c.hostInfo.BootTime), 0)).Truncate(time.Second)
	}
	return nil
}

// collectTemperature keeps the hottest reading. gopsutil reports partial
// sensor failures as warnings alongside usable readings, so only an empty
// result counts as "no temperature".
func (c *Collector) collectTemperature(ctx context.Context, s *Sample) {
	temps, err := c.read.temperatures(ctx)
	if err != nil && len(temps) == 0 {
		c.log.Debug("no temperature sensors: %v", err)
		return
	}

	var best *TemperatureMetrics
	for _, t := range temps {
		if t.Temperature <= 0 || t.Temperature > 150 {
			continue
		}
		if best == nil || t.Temperature > best.Celsius {
			best = &TemperatureMetrics{Sensor: t.SensorKey, Celsius: t.Temperature}
		}
	}
	s.Temperature = best
}

// collectProcesses must run after collectMemory, which supplies the total
// that memory percentages are taken of.
func (c *Collector) collectProcesses(ctx context.Context, s *Sample) error {
	procs, err := c.read.processes(ctx)
	if err != nil {
		return err
	}
	for i := range procs {
		if procs[i].CPUPercent < 0 {
			procs[i].CPUPercent = 0
		}
		if total := s.Memory.TotalBytes; total > 0 {
			procs[i].MemoryPercent = clampPercent(float64(procs[i].MemoryBytes) / float64(total) * 100)
		}
	}
	s.Processes = procs
	return nil
}

// collectGPU is best effort like temperature: machines without a GPU are
// normal. A missing nvidia-smi turns polling off for the collector's life.
func (c *Collector) collectGPU(ctx context.Context, s *Sample) {
	c.mu.Lock()
	missing := c.gpuMissing
	c.mu.Unlock()
	if missing {
		return
	}

	gpus, err := c.read.gpus(ctx)
	if err != nil {
		if stderrors.Is(err, exec.ErrNotFound) {
			c.mu.Lock()
			c.gpuMissing = true
			c.mu.Unlock()
			c.log.Debug("GPU polling off: %v", err)
			return
		}
		c.log.Debug("gpu: %v", err)
		return
	}
	s.GPUs = gpus
}

func isLoopback(name string) bool {
	return name == "lo" || strings.HasPrefix(name, "lo0") || strings.HasPrefix(name, "Loopback")
}

// skipDiskDevice drops virtual devices and partitions whose parent disk is
// also listed, so bytes aren't counted twice.
func skipDiskDevice(name string, all map[string]disk.IOCountersStat) bool {
	for _, prefix := range []string{"loop", "ram", "zram", "dm-"} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	for parent := range all {
		if parent == name || !strings.HasPrefix(name, parent) {
			continue
		}
		suffix := strings.TrimPrefix(strings.TrimPrefix(name, parent), "p")
		if suffix != "" && strings.Trim(suffix, "0123456789") == "" {
			return true
		}
	}
	return false
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
