package monitor

import (
	"fmt"
	"sync"
)

// DefaultHistorySize is the default number of data points to retain per metric.
const DefaultHistorySize = 60

// Series names one metric history.
type Series int

const (
	SeriesCPU Series = iota
	SeriesMemory
	SeriesDownload
	SeriesUpload
	SeriesDiskRead
	SeriesDiskWrite
	SeriesDiskUsage
	SeriesTemperature
	SeriesGPU
)

func (s Series) String() string {
	switch s {
	case SeriesCPU:
		return "cpu"
	case SeriesMemory:
		return "memory"
	case SeriesDownload:
		return "download"
	case SeriesUpload:
		return "upload"
	case SeriesDiskRead:
		return "disk-read"
	case SeriesDiskWrite:
		return "disk-write"
	case SeriesDiskUsage:
		return "disk-usage"
	case SeriesTemperature:
		return "temperature"
	case SeriesGPU:
		return "gpu"
	}
	return fmt.Sprintf("Series(%d)", int(s))
}

// History keeps a ring buffer per metric series and per CPU core.
// It is safe for concurrent use.
type History struct {
	mu     sync.RWMutex
	size   int
	series map[Series]*ringBuffer
	cores  []*ringBuffer
	prev   *Sample
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewHistory creates a new history tracker with the specified buffer size.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		size:   size,
		series: make(map[Series]*ringBuffer),
	}
}

// Size returns the capacity of each series.
func (h *History) Size() int {
	return h.size
}

// Push records a sample. Rate series (network, disk I/O) need two samples,
// so the first Push only records percentages.
func (h *History) Push(s *Sample) {
	if s == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.buffer(SeriesCPU).push(s.CPU.Percent)
	h.buffer(SeriesMemory).push(s.Memory.Percent)
	h.buffer(SeriesDiskUsage).push(s.Disk.UsedPercent)
	if s.Temperature != nil {
		h.buffer(SeriesTemperature).push(s.Temperature.Celsius)
	}
	if len(s.GPUs) > 0 {
		var sum float64
		for _, g := range s.GPUs {
			sum += g.Utilization
		}
		h.buffer(SeriesGPU).push(sum / float64(len(s.GPUs)))
	}

	for len(h.cores) < len(s.CPU.PerCore) {
		h.cores = append(h.cores, newRingBuffer(h.size))
	}
	for i, pct := range s.CPU.PerCore {
		h.cores[i].push(pct)
	}

	if h.prev != nil {
		elapsed := s.Timestamp.Sub(h.prev.Timestamp).Seconds()
		if elapsed > 0 {
			h.buffer(SeriesDownload).push(counterDelta(s.Network.RxBytes, h.prev.Network.RxBytes) / elapsed)
			h.buffer(SeriesUpload).push(counterDelta(s.Network.TxBytes, h.prev.Network.TxBytes) / elapsed)
			h.buffer(SeriesDiskRead).push(counterDelta(s.Disk.ReadBytes, h.prev.Disk.ReadBytes) / elapsed)
			h.buffer(SeriesDiskWrite).push(counterDelta(s.Disk.WriteBytes, h.prev.Disk.WriteBytes) / elapsed)
		}
	}
	h.prev = s
}

// counterDelta handles counter wraparound or reset by reporting zero.
func counterDelta(cur, prev uint64) float64 {
	if cur < prev {
		return 0
	}
	return float64(cur - prev)
}

// Get returns the last count values of a series, oldest first.
// Returns fewer values if not enough history is available.
func (h *History) Get(s Series, count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	buf, ok := h.series[s]
	if !ok {
		return nil
	}
	return buf.getLast(count)
}

// All returns every retained value of a series, oldest first.
func (h *History) All(s Series) []float64 {
	return h.Get(s, h.size)
}

// Latest returns the newest value of a series.
func (h *History) Latest(s Series) (float64, bool) {
	last := h.Get(s, 1)
	if len(last) == 0 {
		return 0, false
	}
	return last[0], true
}

// Core returns the last count values for one CPU core.
func (h *History) Core(i, count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.cores) {
		return nil
	}
	return h.cores[i].getLast(count)
}

// CoreCount returns how many cores have been seen.
func (h *History) CoreCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.cores)
}

// Count returns the number of data points stored for a series.
func (h *History) Count(s Series) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if buf, ok := h.series[s]; ok {
		return buf.count
	}
	return 0
}

// Clear removes all history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.series = make(map[Series]*ringBuffer)
	h.cores = nil
	h.prev = nil
}

// buffer returns the ring for a series, creating it if needed.
// Must be called with h.mu held.
func (h *History) buffer(s Series) *ringBuffer {
	buf, ok := h.series[s]
	if !ok {
		buf = newRingBuffer(h.size)
		h.series[s] = buf
	}
	return buf
}

// newRingBuffer creates a new ring buffer with the specified capacity.
func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

// push adds a value to the ring buffer.
func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order (oldest first).
func (r *ringBuffer) getLast(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}

	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)

	// head points to the next write position, so the most recent value is at head-1
	start := (r.head - count + r.size) % r.size

	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}

	return result
}
