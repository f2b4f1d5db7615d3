package monitor

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

const nvidiaSMI = "nvidia-smi"

var nvidiaQuery = []string{
	"--query-gpu=index,name,utilization.gpu,memory.used,memory.total,temperature.gpu,power.draw",
	"--format=csv,noheader,nounits",
}

// queryNvidiaSMI runs nvidia-smi once. It returns exec.ErrNotFound when the
// tool isn't installed.
func queryNvidiaSMI(ctx context.Context) ([]GPUMetrics, error) {
	path, err := exec.LookPath(nvidiaSMI)
	if err != nil {
		return nil, err
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, nvidiaQuery...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", nvidiaSMI, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", nvidiaSMI, err)
	}
	return parseNvidiaSMI(out)
}

// parseNvidiaSMI reads the csv,noheader,nounits output of nvidiaQuery.
// Memory is reported in MiB. Fields the driver can't read come back as
// "[N/A]" or "[Not Supported]" and are left at zero.
func parseNvidiaSMI(out []byte) ([]GPUMetrics, error) {
	r := csv.NewReader(bytes.NewReader(out))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	var gpus []GPUMetrics
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s output: %w", nvidiaSMI, err)
		}
		if len(rec) < 7 {
			return nil, fmt.Errorf("parse %s output: want 7 fields, got %d", nvidiaSMI, len(rec))
		}

		g := GPUMetrics{
			Index:       len(gpus),
			Name:        strings.TrimSpace(rec[1]),
			Utilization: clampPercent(smiFloat(rec[2])),
			Celsius:     smiFloat(rec[5]),
			PowerWatts:  smiFloat(rec[6]),
		}
		if idx, err := strconv.Atoi(strings.TrimSpace(rec[0])); err == nil {
			g.Index = idx
		}
		g.MemoryUsedBytes = uint64(smiFloat(rec[3])) << 20
		g.MemoryTotalBytes = uint64(smiFloat(rec[4])) << 20
		gpus = append(gpus, g)
	}
	return gpus, nil
}

func smiFloat(field string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
