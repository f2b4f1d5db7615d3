// Package monitor implements the rtop dashboard: a Bubble Tea program that
// samples local system metrics and draws them as themed graphs, meters and
// boxes.
//
// # Architecture
//
// The package follows The Elm Architecture (Model-Update-View):
//
//   - Model: the latest Sample, a History of past samples, the theme
//     manager and the current display settings
//   - Update: handles keystrokes, refresh ticks, collected samples and theme
//     reloads
//   - View: lays out one box per widget and renders it with the active theme
//
// # Key Components
//
//	Model       - The Bubble Tea model holding dashboard state
//	Collector   - Gathers local CPU, memory, network, disk, sensor and process
//	              metrics via gopsutil, and NVIDIA GPU readings via nvidia-smi
//	History     - Ring buffers of per-series samples for graph rendering
//
// # Message Flow
//
//  1. tickMsg fires at the configured interval (default 1s)
//  2. collectCmd() runs Source.Collect with a timeout
//  3. sampleMsg arrives and is pushed into History
//  4. View() re-renders every widget from History
//
// Theme reloads run the same way: reloadCmd() rescans the theme directories
// off the UI goroutine and reports back with reloadMsg.
//
// # Layout
//
// Terminals narrower than BreakpointColumns get a single column of boxes.
// Wider terminals put memory and network side by side under a full-width
// CPU box, and disk shares a row with the GPU box when one is present. The
// process list always gets a full-width row at the bottom. A widget that
// doesn't fit is skipped rather than drawn broken.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	t / T       - Next / previous theme
//	g           - Cycle graph symbols (braille, block, tty)
//	c           - Toggle rounded / square corners
//	G           - Toggle gradients
//	r           - Reload themes from disk
//	s / S       - Cycle process sort (cpu, mem, pid, name) / reverse it
//	↑/↓, j/k    - Scroll
//	?           - Toggle full help
package monitor
