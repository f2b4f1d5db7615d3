package monitor

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/rileyhilliard/rtop/internal/errors"
)

// ProcessSort selects the column the process box is ordered by.
type ProcessSort int

const (
	SortCPU ProcessSort = iota
	SortMemory
	SortPID
	SortName
)

// processSorts is the cycle order of the sort key binding.
var processSorts = []ProcessSort{SortCPU, SortMemory, SortPID, SortName}

func (s ProcessSort) String() string {
	switch s {
	case SortCPU:
		return "cpu"
	case SortMemory:
		return "mem"
	case SortPID:
		return "pid"
	case SortName:
		return "name"
	}
	return fmt.Sprintf("ProcessSort(%d)", int(s))
}

// Next returns the following sort order, wrapping around.
func (s ProcessSort) Next() ProcessSort {
	for i, o := range processSorts {
		if o == s {
			return processSorts[(i+1)%len(processSorts)]
		}
	}
	return SortCPU
}

// ParseProcessSort parses a sort name as written by String.
func ParseProcessSort(text string) (ProcessSort, error) {
	for _, s := range processSorts {
		if strings.EqualFold(text, s.String()) {
			return s, nil
		}
	}
	return SortCPU, errors.New(errors.ErrConfig,
		fmt.Sprintf("Unknown process sort %q", text),
		"Use one of: cpu, mem, pid, name")
}

// SortProcesses returns a sorted copy of procs. CPU and memory sort busiest
// first, PID and name ascending; reverse flips the result. Ties fall back
// to PID so the order is stable between frames.
func SortProcesses(procs []ProcessInfo, by ProcessSort, reverse bool) []ProcessInfo {
	out := append([]ProcessInfo(nil), procs...)
	less := func(a, b ProcessInfo) bool {
		switch by {
		case SortMemory:
			if a.MemoryBytes != b.MemoryBytes {
				return a.MemoryBytes > b.MemoryBytes
			}
		case SortName:
			an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if an != bn {
				return an < bn
			}
		case SortCPU:
			if a.CPUPercent != b.CPUPercent {
				return a.CPUPercent > b.CPUPercent
			}
		}
		return a.PID < b.PID
	}
	sort.SliceStable(out, func(i, j int) bool {
		if reverse {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// processTable lists processes with gopsutil. It keeps the Process handles
// between calls because CPU percent is measured against the previous read.
type processTable struct {
	mu    sync.Mutex
	procs map[int32]*process.Process
}

func newProcessTable() *processTable {
	return &processTable{procs: make(map[int32]*process.Process)}
}

// list reads every visible process. Processes that exit or deny access
// mid-read are left out. A process's first CPU reading is 0.
func (t *processTable) list(ctx context.Context) ([]ProcessInfo, error) {
	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	seen := make(map[int32]*process.Process, len(pids))
	out := make([]ProcessInfo, 0, len(pids))
	for _, pid := range pids {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		p, ok := t.procs[pid]
		if !ok {
			if p, err = process.NewProcessWithContext(ctx, pid); err != nil {
				continue
			}
		}
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		seen[pid] = p

		info := ProcessInfo{PID: pid, Name: name}
		info.CPUPercent, _ = p.PercentWithContext(ctx, 0)
		info.User, _ = p.UsernameWithContext(ctx)
		if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			info.MemoryBytes = mi.RSS
		}
		out = append(out, info)
	}
	t.procs = seen
	return out, nil
}
