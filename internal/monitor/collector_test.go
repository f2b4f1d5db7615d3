package monitor

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/sensors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/logger"
)

func fakeReaders() readers {
	return readers{
		cpuPercent: func(_ context.Context, perCPU bool) ([]float64, error) {
			if perCPU {
				return []float64{10, 30, 120}, nil
			}
			return []float64{42.5}, nil
		},
		memory: func(context.Context) (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{Total: 16 << 30, Used: 4 << 30, UsedPercent: 25}, nil
		},
		netCounters: func(context.Context) ([]psnet.IOCountersStat, error) {
			return []psnet.IOCountersStat{
				{Name: "lo", BytesRecv: 1 << 40, BytesSent: 1 << 40},
				{Name: "eth0", BytesRecv: 1000, BytesSent: 200},
				{Name: "wlan0", BytesRecv: 500, BytesSent: 50},
			}, nil
		},
		diskCounters: func(context.Context) (map[string]disk.IOCountersStat, error) {
			return map[string]disk.IOCountersStat{
				"sda":       {ReadBytes: 4096, WriteBytes: 8192},
				"sda1":      {ReadBytes: 4000, WriteBytes: 8000},
				"nvme0n1":   {ReadBytes: 100, WriteBytes: 10},
				"nvme0n1p2": {ReadBytes: 99, WriteBytes: 9},
				"loop3":     {ReadBytes: 1 << 30},
			}, nil
		},
		diskUsage: func(_ context.Context, path string) (*disk.UsageStat, error) {
			return &disk.UsageStat{Path: path, Total: 1000, Used: 820, UsedPercent: 82}, nil
		},
		temperatures: func(context.Context) ([]sensors.TemperatureStat, error) {
			return []sensors.TemperatureStat{
				{SensorKey: "acpitz", Temperature: 40},
				{SensorKey: "coretemp_package_id_0", Temperature: 67},
				{SensorKey: "bogus", Temperature: 500},
			}, nil
		},
		loadAvg: func(context.Context) (*load.AvgStat, error) {
			return &load.AvgStat{Load1: 1.5, Load5: 1.0, Load15: 0.5}, nil
		},
		hostInfo: func(context.Context) (*host.InfoStat, error) {
			return &host.InfoStat{Hostname: "devbox", Platform: "ubuntu", PlatformVersion: "24.04", Uptime: 3600}, nil
		},
		processes: func(context.Context) ([]ProcessInfo, error) {
			return []ProcessInfo{
				{PID: 1, Name: "systemd", User: "root", CPUPercent: 0.2, MemoryBytes: 8 << 20},
				{PID: 900, Name: "postgres", User: "postgres", CPUPercent: -1, MemoryBytes: 4 << 30},
			}, nil
		},
		gpus: func(context.Context) ([]GPUMetrics, error) {
			return []GPUMetrics{{Index: 0, Name: "NVIDIA RTX A2000", Utilization: 12, MemoryUsedBytes: 1 << 30, MemoryTotalBytes: 6 << 30}}, nil
		},
	}
}

func newTestCollector(p readers, opts ...CollectorOption) *Collector {
	c := NewCollector(opts...)
	c.read = p
	return c
}

func TestNewCollector(t *testing.T) {
	c := NewCollector()
	require.NotNil(t, c)
	assert.Equal(t, "/", c.diskPath)
	assert.True(t, c.temperature)
	assert.True(t, c.processes)
	assert.True(t, c.gpu)

	c = NewCollector(WithDiskPath("/home"), WithTemperature(false), WithProcesses(false), WithGPU(false), WithLogger(logger.Noop()))
	assert.Equal(t, "/home", c.diskPath)
	assert.False(t, c.temperature)
	assert.False(t, c.processes)
	assert.False(t, c.gpu)
}

func TestCollector_Collect(t *testing.T) {
	c := newTestCollector(fakeReaders(), WithDiskPath("/data"))

	s, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.False(t, s.Timestamp.IsZero())
	assert.Equal(t, 42.5, s.CPU.Percent)
	assert.Equal(t, []float64{10, 30, 100}, s.CPU.PerCore, "per-core values are clamped")
	assert.Equal(t, [3]float64{1.5, 1.0, 0.5}, s.CPU.LoadAvg)

	assert.Equal(t, MemoryMetrics{UsedBytes: 4 << 30, TotalBytes: 16 << 30, Percent: 25}, s.Memory)
	assert.Equal(t, NetworkMetrics{RxBytes: 1500, TxBytes: 250}, s.Network, "loopback is excluded")

	assert.Equal(t, "/data", s.Disk.Path)
	assert.Equal(t, 82.0, s.Disk.UsedPercent)
	assert.Equal(t, uint64(4096+100), s.Disk.ReadBytes, "partitions and loop devices are excluded")
	assert.Equal(t, uint64(8192+10), s.Disk.WriteBytes)

	require.NotNil(t, s.Temperature)
	assert.Equal(t, "coretemp_package_id_0", s.Temperature.Sensor)
	assert.Equal(t, 67.0, s.Temperature.Celsius)

	assert.Equal(t, "devbox", s.System.Hostname)
	assert.Equal(t, "ubuntu 24.04", s.System.Platform)
	assert.Equal(t, time.Hour, s.System.Uptime)
}

func TestCollector_CPUFailureIsFatal(t *testing.T) {
	p := fakeReaders()
	p.cpuPercent = func(context.Context, bool) ([]float64, error) {
		return nil, stderrors.New("permission denied")
	}

	s, err := newTestCollector(p).Collect(context.Background())
	assert.Nil(t, s)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCollect))
}

func TestCollector_PartialFailure(t *testing.T) {
	p := fakeReaders()
	p.memory = func(context.Context) (*mem.VirtualMemoryStat, error) {
		return nil, stderrors.New("no meminfo")
	}
	p.netCounters = func(context.Context) ([]psnet.IOCountersStat, error) {
		return nil, stderrors.New("no net")
	}

	log := logger.NewBufferLogger()
	s, err := newTestCollector(p, WithLogger(log)).Collect(context.Background())

	require.NotNil(t, s, "partial failures still yield a sample")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCollect))
	assert.Contains(t, err.Error(), "memory: no meminfo")
	assert.Contains(t, err.Error(), "network: no net")
	assert.Equal(t, 42.5, s.CPU.Percent)
	assert.Zero(t, s.Memory.Percent)
	assert.True(t, log.Contains("debug", "memory"))
}

func TestCollector_Temperature(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		s, err := newTestCollector(fakeReaders(), WithTemperature(false)).Collect(context.Background())
		require.NoError(t, err)
		assert.Nil(t, s.Temperature)
	})

	t.Run("no sensors", func(t *testing.T) {
		p := fakeReaders()
		p.temperatures = func(context.Context) ([]sensors.TemperatureStat, error) {
			return nil, stderrors.New("not implemented")
		}
		s, err := newTestCollector(p).Collect(context.Background())
		require.NoError(t, err, "missing sensors are not an error")
		assert.Nil(t, s.Temperature)
	})

	t.Run("warnings with readings", func(t *testing.T) {
		p := fakeReaders()
		p.temperatures = func(context.Context) ([]sensors.TemperatureStat, error) {
			return []sensors.TemperatureStat{{SensorKey: "k10temp", Temperature: 55}}, stderrors.New("some sensors failed")
		}
		s, err := newTestCollector(p).Collect(context.Background())
		require.NoError(t, err)
		require.NotNil(t, s.Temperature)
		assert.Equal(t, 55.0, s.Temperature.Celsius)
	})
}

func TestCollector_Processes(t *testing.T) {
	t.Run("memory percent from total", func(t *testing.T) {
		s, err := newTestCollector(fakeReaders()).Collect(context.Background())
		require.NoError(t, err)
		require.Len(t, s.Processes, 2)

		pg := s.Processes[1]
		assert.Equal(t, "postgres", pg.Name)
		assert.Equal(t, 25.0, pg.MemoryPercent, "4 GiB of 16 GiB")
		assert.Zero(t, pg.CPUPercent, "negative readings are clamped")
	})

	t.Run("disabled", func(t *testing.T) {
		s, err := newTestCollector(fakeReaders(), WithProcesses(false)).Collect(context.Background())
		require.NoError(t, err)
		assert.Nil(t, s.Processes)
	})

	t.Run("listing fails", func(t *testing.T) {
		p := fakeReaders()
		p.processes = func(context.Context) ([]ProcessInfo, error) {
			return nil, stderrors.New("no /proc")
		}
		s, err := newTestCollector(p).Collect(context.Background())
		require.NotNil(t, s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "processes: no /proc")
	})

	t.Run("no memory total", func(t *testing.T) {
		p := fakeReaders()
		p.memory = func(context.Context) (*mem.VirtualMemoryStat, error) {
			return nil, stderrors.New("no meminfo")
		}
		s, _ := newTestCollector(p).Collect(context.Background())
		require.Len(t, s.Processes, 2)
		assert.Zero(t, s.Processes[1].MemoryPercent)
	})
}

func TestCollector_GPU(t *testing.T) {
	t.Run("reported", func(t *testing.T) {
		s, err := newTestCollector(fakeReaders()).Collect(context.Background())
		require.NoError(t, err)
		require.Len(t, s.GPUs, 1)
		assert.Equal(t, "NVIDIA RTX A2000", s.GPUs[0].Name)
	})

	t.Run("nvidia-smi missing stops polling", func(t *testing.T) {
		calls := 0
		p := fakeReaders()
		p.gpus = func(context.Context) ([]GPUMetrics, error) {
			calls++
			return nil, &exec.Error{Name: "nvidia-smi", Err: exec.ErrNotFound}
		}
		log := logger.NewBufferLogger()
		c := newTestCollector(p, WithLogger(log))

		for i := 0; i < 3; i++ {
			s, err := c.Collect(context.Background())
			require.NoError(t, err, "a machine without a GPU is not an error")
			assert.Empty(t, s.GPUs)
		}
		assert.Equal(t, 1, calls)
		assert.True(t, log.Contains("debug", "GPU polling off"))
	})

	t.Run("query failure retries", func(t *testing.T) {
		calls := 0
		p := fakeReaders()
		p.gpus = func(context.Context) ([]GPUMetrics, error) {
			calls++
			return nil, fmt.Errorf("nvidia-smi: exit status 9")
		}
		c := newTestCollector(p)
		for i := 0; i < 2; i++ {
			s, err := c.Collect(context.Background())
			require.NoError(t, err)
			assert.Empty(t, s.GPUs)
		}
		assert.Equal(t, 2, calls)
	})

	t.Run("disabled", func(t *testing.T) {
		p := fakeReaders()
		p.gpus = func(context.Context) ([]GPUMetrics, error) {
			t.Fatal("gpu reader called while disabled")
			return nil, nil
		}
		s, err := newTestCollector(p, WithGPU(false)).Collect(context.Background())
		require.NoError(t, err)
		assert.Empty(t, s.GPUs)
	})
}

func TestCollector_HostInfoCached(t *testing.T) {
	calls := 0
	p := fakeReaders()
	p.hostInfo = func(context.Context) (*host.InfoStat, error) {
		calls++
		return &host.InfoStat{Hostname: "devbox", BootTime: uint64(time.Now().Add(-2 * time.Hour).Unix())}, nil
	}
	c := newTestCollector(p)

	for i := 0; i < 3; i++ {
		s, err := c.Collect(context.Background())
		require.NoError(t, err)
		assert.InDelta(t, (2 * time.Hour).Seconds(), s.System.Uptime.Seconds(), 5)
	}
	assert.Equal(t, 1, calls)
}

func TestCollector_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := newTestCollector(fakeReaders()).Collect(ctx)
	assert.Nil(t, s)
	assert.True(t, errors.IsCode(err, errors.ErrCollect))
}

func TestSkipDiskDevice(t *testing.T) {
	all := map[string]disk.IOCountersStat{
		"sda": {}, "sda1": {}, "sdb": {}, "nvme0n1": {}, "nvme0n1p1": {}, "mmcblk0": {}, "mmcblk0p1": {},
	}

	tests := []struct {
		name string
		skip bool
	}{
		{"sda", false},
		{"sda1", true},
		{"sdb", false},
		{"nvme0n1", false},
		{"nvme0n1p1", true},
		{"mmcblk0p1", true},
		{"loop0", true},
		{"dm-0", true},
		{"disk0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.skip, skipDiskDevice(tt.name, all))
		})
	}
}

func TestIsLoopback(t *testing.T) {
	assert.True(t, isLoopback("lo"))
	assert.True(t, isLoopback("lo0"))
	assert.True(t, isLoopback("Loopback Pseudo-Interface 1"))
	assert.False(t, isLoopback("eth0"))
	assert.False(t, isLoopback("long0"))
}
