package theme

// Key names a color in a theme file.
type Key string

// Role keys.
const (
	KeyMainFG     Key = "main_fg"
	KeyMainBG     Key = "main_bg"
	KeyTitle      Key = "title"
	KeyHiFG       Key = "hi_fg"
	KeySelectedBG Key = "selected_bg"
	KeySelectedFG Key = "selected_fg"
	KeyInactiveFG Key = "inactive_fg"
	KeyDivLine    Key = "div_line"
	KeyGraphText  Key = "graph_text"
	KeyMeterBG    Key = "meter_bg"
	KeyCPUBox     Key = "cpu_box"
	KeyMemBox     Key = "mem_box"
	KeyNetBox     Key = "net_box"
	KeyProcBox    Key = "proc_box"
	KeyGPUBox     Key = "gpu_box"
)

// RoleKeys lists the non-gradient keys in theme file order.
var RoleKeys = []Key{
	KeyMainFG,
	KeyMainBG,
	KeyTitle,
	KeyHiFG,
	KeySelectedBG,
	KeySelectedFG,
	KeyInactiveFG,
	KeyDivLine,
	KeyGraphText,
	KeyMeterBG,
	KeyCPUBox,
	KeyMemBox,
	KeyNetBox,
	KeyProcBox,
	KeyGPUBox,
}

// Metric selects one of the per-metric gradients.
type Metric int

const (
	CPU Metric = iota
	Memory
	Network
	Download
	Upload
	Temperature
	Process
)

// Metrics lists every metric with a gradient.
var Metrics = []Metric{CPU, Memory, Network, Download, Upload, Temperature, Process}

var metricPrefixes = map[Metric]string{
	CPU:         "cpu",
	Memory:      "mem",
	Network:     "net",
	Download:    "download",
	Upload:      "upload",
	Temperature: "temp",
	Process:     "proc",
}

// String returns the metric's key prefix in theme files.
func (m Metric) String() string {
	if p, ok := metricPrefixes[m]; ok {
		return p
	}
	return "unknown"
}

// Keys returns the start, mid and end anchor keys for m.
func (m Metric) Keys() (start, mid, end Key) {
	p := m.String()
	return Key(p + "_start"), Key(p + "_mid"), Key(p + "_end")
}
