package monitor

import "time"

// Sample is one snapshot of local system metrics. Network and disk I/O are
// cumulative counters; History turns consecutive samples into rates.
type Sample struct {
	Timestamp   time.Time
	System      SystemInfo
	CPU         CPUMetrics
	Memory      MemoryMetrics
	Network     NetworkMetrics
	Disk        DiskMetrics
	Temperature *TemperatureMetrics // nil when no sensor is readable
	Processes   []ProcessInfo       // unsorted; nil when process listing is off
	GPUs        []GPUMetrics        // empty without a supported GPU
}

// CPUMetrics contains CPU usage information.
type CPUMetrics struct {
	Percent float64
	PerCore []float64
	LoadAvg [3]float64
}

// MemoryMetrics contains physical memory usage.
type MemoryMetrics struct {
	UsedBytes  uint64
	TotalBytes uint64
	Percent    float64
}

// NetworkMetrics holds byte counters summed over non-loopback interfaces.
type NetworkMetrics struct {
	RxBytes uint64
	TxBytes uint64
}

// DiskMetrics holds I/O counters summed over all devices, plus usage of the
// monitored mount point.
type DiskMetrics struct {
	Path        string
	ReadBytes   uint64
	WriteBytes  uint64
	UsedBytes   uint64
	TotalBytes  uint64
	UsedPercent float64
}

// TemperatureMetrics is the hottest sensor reading.
type TemperatureMetrics struct {
	Sensor  string
	Celsius float64
}

// SystemInfo contains general system information.
type SystemInfo struct {
	Hostname string
	Platform string
	Uptime   time.Duration
}

// ProcessInfo is one running process. CPUPercent is measured since the
// previous sample and can exceed 100 on multi-core machines.
type ProcessInfo struct {
	PID           int32
	Name          string
	User          string
	CPUPercent    float64
	MemoryBytes   uint64
	MemoryPercent float64
}

// GPUMetrics is one GPU as reported by nvidia-smi. Readings the driver
// doesn't expose are zero.
type GPUMetrics struct {
	Index            int
	Name             string
	Utilization      float64
	MemoryUsedBytes  uint64
	MemoryTotalBytes uint64
	Celsius          float64
	PowerWatts       float64
}

// MemoryPercent returns used VRAM as a percentage of the total.
func (g GPUMetrics) MemoryPercent() float64 {
	if g.MemoryTotalBytes == 0 {
		return 0
	}
	return clampPercent(float64(g.MemoryUsedBytes) / float64(g.MemoryTotalBytes) * 100)
}
