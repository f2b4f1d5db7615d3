package monitor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/rileyhilliard/rtop/internal/box"
	"github.com/rileyhilliard/rtop/internal/color"
	"github.com/rileyhilliard/rtop/internal/config"
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/graph"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/meter"
	"github.com/rileyhilliard/rtop/internal/theme"
	"github.com/rileyhilliard/rtop/internal/util"
)

// widget identifies one dashboard box.
type widget int

const (
	widgetCPU widget = iota
	widgetMemory
	widgetNetwork
	widgetDisk
	widgetGPU
	widgetProcess
)

func (w widget) title() string {
	switch w {
	case widgetCPU:
		return "cpu"
	case widgetMemory:
		return "mem"
	case widgetNetwork:
		return "net"
	case widgetDisk:
		return "disk"
	case widgetGPU:
		return "gpu"
	case widgetProcess:
		return "proc"
	}
	return fmt.Sprintf("widget(%d)", int(w))
}

const (
	labelWidth = 6

	// minNetScale keeps idle network and disk graphs from magnifying noise.
	minNetScale = 1024.0

	// twoColumnCores is the interior width from which per-core meters are
	// laid out in two columns.
	twoColumnCores = 40

	// Process list columns. The name column takes what is left.
	pidWidth     = 7
	userWidth    = 10
	cpuWidth     = 7
	memWidth     = 10
	minNameWidth = 8

	// userColumn is the interior width from which the user column is shown.
	userColumn = 60
)

// renderer draws widgets for one frame.
type renderer struct {
	th       *theme.Theme
	st       styles
	settings Settings
	history  *History
	sample   *Sample
	log      logger.Logger
}

// row frames widgets side by side at a shared height. Widgets that can't be
// drawn at their share of width are skipped.
func (r renderer) row(ws []widget, width int) string {
	widths := splitWidth(width, len(ws))

	type drawn struct {
		w       widget
		width   int
		content []string
	}
	var kept []drawn
	height := 0
	for i, w := range ws {
		content, err := r.content(w, widths[i]-2)
		if err != nil {
			r.log.Debug("skipping %s: %v", w.title(), err)
			continue
		}
		kept = append(kept, drawn{w: w, width: widths[i], content: content})
		if len(content) > height {
			height = len(content)
		}
	}

	var frames []string
	for _, d := range kept {
		lines, err := box.Frame(d.content, d.width, height+2, d.w.title(), r.settings.Corners)
		if err != nil {
			r.log.Debug("skipping %s: %v", d.w.title(), err)
			continue
		}
		styled := box.Styled(lines, boxColor(r.th, d.w), r.th.Color(theme.KeyTitle))
		frames = append(frames, strings.Join(styled, "\n"))
	}
	if len(frames) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, frames...)
}

// splitWidth divides width into n columns, giving the remainder to the last.
func splitWidth(width, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = width / n
	}
	out[n-1] += width % n
	return out
}

func (r renderer) content(w widget, inner int) ([]string, error) {
	switch w {
	case widgetCPU:
		return r.cpuContent(inner)
	case widgetMemory:
		return r.memoryContent(inner)
	case widgetNetwork:
		return r.networkContent(inner)
	case widgetDisk:
		return r.diskContent(inner)
	case widgetGPU:
		return r.gpuContent(inner)
	case widgetProcess:
		return r.processContent(inner)
	}
	return nil, fmt.Errorf("no renderer for %s", w.title())
}

func (r renderer) cpuContent(inner int) ([]string, error) {
	cpu := r.sample.CPU
	lines, err := r.graph(r.history.All(SeriesCPU), inner, r.settings.GraphHeight, theme.CPU, false, 0)
	if err != nil {
		return nil, err
	}

	lines = append(lines, r.meterLine("CPU", cpu.Percent, inner, theme.CPU, r.settings.Thresholds.CPU, percentText(cpu.Percent)))
	lines = append(lines, r.coreLines(inner)...)

	load := fmt.Sprintf("%.2f %.2f %.2f", cpu.LoadAvg[0], cpu.LoadAvg[1], cpu.LoadAvg[2])
	lines = append(lines, r.st.label.Render(pad("Load", labelWidth))+r.st.text.Render(load))

	if t := r.sample.Temperature; t != nil && r.settings.Display.ShowTemperature {
		lines = append(lines, r.meterLine("Temp", t.Celsius, inner, theme.Temperature,
			r.settings.Thresholds.Temperature, fmt.Sprintf("%.0f°C", t.Celsius)))
	}
	return lines, nil
}

// coreLines renders one meter per core, in two columns when there is room.
func (r renderer) coreLines(inner int) []string {
	cores := r.sample.CPU.PerCore
	if len(cores) == 0 {
		return nil
	}

	cols := 1
	if inner >= twoColumnCores {
		cols = 2
	}
	colWidth := (inner - (cols - 1)) / cols

	rows := (len(cores) + cols - 1) / cols
	lines := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		var cells []string
		for col := 0; col < cols; col++ {
			i := col*rows + row
			if i >= len(cores) {
				break
			}
			cells = append(cells, r.meterLine(fmt.Sprintf("C%d", i), cores[i], colWidth,
				theme.CPU, r.settings.Thresholds.CPU, percentText(cores[i])))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return lines
}

func (r renderer) memoryContent(inner int) ([]string, error) {
	mem := r.sample.Memory
	lines, err := r.graph(r.history.All(SeriesMemory), inner, r.smallGraphHeight(), theme.Memory, false, 0)
	if err != nil {
		return nil, err
	}

	lines = append(lines, r.meterLine("Used", mem.Percent, inner, theme.Memory, r.settings.Thresholds.Memory, percentText(mem.Percent)))
	lines = append(lines, r.st.label.Render(pad("", labelWidth))+
		r.st.text.Render(util.FormatBytes(mem.UsedBytes, r.decimal())+" of "+r.total(mem.TotalBytes)))
	return lines, nil
}

// networkContent draws download growing up and upload hanging down, each
// scaled to its own recent peak.
func (r renderer) networkContent(inner int) ([]string, error) {
	h := r.smallGraphHeight()

	down := r.history.All(SeriesDownload)
	downLines, err := r.graph(down, inner, h, theme.Download, false, graph.Peak(down, minNetScale))
	if err != nil {
		return nil, err
	}
	up := r.history.All(SeriesUpload)
	upLines, err := r.graph(up, inner, h, theme.Upload, true, graph.Peak(up, minNetScale))
	if err != nil {
		return nil, err
	}

	lines := downLines
	lines = append(lines, r.rateLine("▼ Rx", down, r.sample.Network.RxBytes, theme.Download))
	lines = append(lines, r.rateLine("▲ Tx", up, r.sample.Network.TxBytes, theme.Upload))
	return append(lines, upLines...), nil
}

func (r renderer) rateLine(label string, series []float64, total uint64, metric theme.Metric) string {
	var rate float64
	if len(series) > 0 {
		rate = series[len(series)-1]
	}
	return r.st.label.Render(pad(label, labelWidth)) +
		paint(r.th.Gradient(metric).At(100), util.FormatRate(rate, r.decimal())) +
		r.st.muted.Render("  peak "+util.FormatRate(graph.Peak(series, 0), r.decimal())+"  total "+r.total(total))
}

// diskContent draws reads growing up and writes hanging down around the
// usage meter.
func (r renderer) diskContent(inner int) ([]string, error) {
	d := r.sample.Disk
	h := r.smallGraphHeight()

	read := r.history.All(SeriesDiskRead)
	lines, err := r.graph(read, inner, h, theme.Download, false, graph.Peak(read, minNetScale))
	if err != nil {
		return nil, err
	}
	write := r.history.All(SeriesDiskWrite)
	writeLines, err := r.graph(write, inner, h, theme.Upload, true, graph.Peak(write, minNetScale))
	if err != nil {
		return nil, err
	}

	readRate, _ := r.history.Latest(SeriesDiskRead)
	writeRate, _ := r.history.Latest(SeriesDiskWrite)
	lines = append(lines,
		r.meterLine("Used", d.UsedPercent, inner, theme.Memory, r.settings.Thresholds.Disk, percentText(d.UsedPercent)),
		r.st.label.Render(pad("", labelWidth))+
			r.st.text.Render(util.FormatBytes(d.UsedBytes, r.decimal())+" of "+r.total(d.TotalBytes)+" on "+d.Path),
		r.st.label.Render(pad("I/O", labelWidth))+
			r.st.text.Render("R "+util.FormatRate(readRate, r.decimal())+"  W "+util.FormatRate(writeRate, r.decimal())),
	)
	return append(lines, writeLines...), nil
}

// gpuContent draws average utilization over all GPUs, then meters and
// details for each one.
func (r renderer) gpuContent(inner int) ([]string, error) {
	lines, err := r.graph(r.history.All(SeriesGPU), inner, r.smallGraphHeight(), theme.CPU, false, 0)
	if err != nil {
		return nil, err
	}

	for _, g := range r.sample.GPUs {
		lines = append(lines,
			r.meterLine(fmt.Sprintf("GPU%d", g.Index), g.Utilization, inner, theme.CPU, r.settings.Thresholds.CPU, percentText(g.Utilization)),
			r.meterLine("VRAM", g.MemoryPercent(), inner, theme.Memory, r.settings.Thresholds.Memory, percentText(g.MemoryPercent())),
			r.st.label.Render(pad("", labelWidth))+r.st.text.Render(g.Name),
			r.st.label.Render(pad("", labelWidth))+r.st.muted.Render(r.gpuDetail(g)),
		)
	}
	return lines, nil
}

func (r renderer) gpuDetail(g GPUMetrics) string {
	parts := []string{util.FormatBytes(g.MemoryUsedBytes, r.decimal()) + " of " + r.total(g.MemoryTotalBytes)}
	if g.Celsius > 0 {
		parts = append(parts, fmt.Sprintf("%.0f°C", g.Celsius))
	}
	if g.PowerWatts > 0 {
		parts = append(parts, fmt.Sprintf("%.0f W", g.PowerWatts))
	}
	return strings.Join(parts, "  ")
}

// processContent lists the top ProcessRows processes in the current sort
// order. CPU percentages are colored from the process gradient.
func (r renderer) processContent(inner int) ([]string, error) {
	showUser := inner >= userColumn
	fixed := pidWidth + cpuWidth + memWidth
	if showUser {
		fixed += userWidth
	}
	nameWidth := inner - fixed
	if nameWidth < minNameWidth {
		return nil, errors.New(errors.ErrInvalidDimensions,
			fmt.Sprintf("Process list needs %d columns, got %d", fixed+minNameWidth, inner),
			"")
	}

	lines := []string{r.processHeader(nameWidth, showUser)}
	procs := SortProcesses(r.sample.Processes, r.settings.ProcessSort, r.settings.ProcessReverse)
	if len(procs) == 0 {
		return append(lines, r.st.muted.Render("No processes")), nil
	}
	if len(procs) > r.settings.ProcessRows {
		procs = procs[:r.settings.ProcessRows]
	}

	g := r.gradient(theme.Process)
	for _, p := range procs {
		line := r.st.muted.Render(padLeft(strconv.Itoa(int(p.PID)), pidWidth-1)+" ") +
			r.st.text.Render(pad(ansi.Truncate(p.Name, nameWidth-1, "…"), nameWidth))
		if showUser {
			line += r.st.muted.Render(pad(ansi.Truncate(p.User, userWidth-1, "…"), userWidth))
		}
		line += paint(g.At(p.CPUPercent), padLeft(fmt.Sprintf("%.1f", p.CPUPercent), cpuWidth-1)) + " " +
			r.st.text.Render(padLeft(r.total(p.MemoryBytes), memWidth))
		lines = append(lines, line)
	}
	return lines, nil
}

// processHeader marks the sorted column with ▼, or ▲ when reversed.
func (r renderer) processHeader(nameWidth int, showUser bool) string {
	mark := func(col ProcessSort, text string) string {
		switch {
		case r.settings.ProcessSort != col:
			return text
		case r.settings.ProcessReverse:
			return text + "▲"
		default:
			return text + "▼"
		}
	}

	h := padLeft(mark(SortPID, "PID"), pidWidth-1) + " " + pad(mark(SortName, "Name"), nameWidth)
	if showUser {
		h += pad("User", userWidth)
	}
	h += padLeft(mark(SortCPU, "CPU%"), cpuWidth-1) + " " + padLeft(mark(SortMemory, "Mem"), memWidth)
	return r.st.label.Render(h)
}

// graph renders samples and colors each row from the metric gradient.
func (r renderer) graph(samples []float64, width, height int, metric theme.Metric, inverted bool, limit float64) ([]string, error) {
	cfg := graph.Config{
		Width:    width,
		Height:   height,
		Style:    r.settings.Style,
		Inverted: inverted,
		Max:      limit,
		NoZero:   r.settings.NoZero,
	}
	lines, err := graph.Render(samples, cfg)
	if err != nil {
		return nil, err
	}
	colors := graph.RowColors(r.gradient(metric), cfg)
	for i := range lines {
		lines[i] = paint(colors[i], lines[i])
	}
	return lines, nil
}

// meterLine renders "label [meter] value" in width cells. The meter is
// dropped when there is no room for it.
func (r renderer) meterLine(label string, percent float64, width int, metric theme.Metric, t config.ThresholdValues, value string) string {
	value = fmt.Sprintf("%5s", value)
	line := r.st.label.Render(pad(label, labelWidth))
	if mw := width - labelWidth - ansi.StringWidth(value) - 1; mw > 0 {
		line += r.meter(percent, mw, metric) + " "
	}
	return line + r.st.value(percent, t).Render(value)
}

func (r renderer) meter(percent float64, width int, metric theme.Metric) string {
	bg := r.th.Color(theme.KeyMeterBG)
	g := r.th.Gradient(metric)
	if r.settings.Gradient {
		return meter.Styled(meter.RenderSegmented(percent, width, g), bg)
	}
	return meter.Flat(percent, width, g.At(50), bg)
}

// gradient returns the metric's gradient, or its midpoint as a single color
// when gradients are off.
func (r renderer) gradient(metric theme.Metric) *color.Gradient {
	g := r.th.Gradient(metric)
	if r.settings.Gradient {
		return g
	}
	return color.Solid(g.At(50))
}

func (r renderer) smallGraphHeight() int {
	if h := r.settings.GraphHeight / 2; h > 0 {
		return h
	}
	return 1
}

func (r renderer) decimal() bool {
	return r.settings.Display.DecimalUnits
}

// total formats a byte count with humanize's rounding.
func (r renderer) total(bytes uint64) string {
	if r.decimal() {
		return humanize.Bytes(bytes)
	}
	return humanize.IBytes(bytes)
}

func percentText(p float64) string {
	return fmt.Sprintf("%.0f%%", p)
}

func padLeft(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

func pad(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
