package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/rtop/internal/color"
	"github.com/rileyhilliard/rtop/internal/config"
	"github.com/rileyhilliard/rtop/internal/theme"
)

func TestStyles_Value(t *testing.T) {
	th := theme.Default()
	st := newStyles(th)
	thresholds := config.ThresholdValues{Warning: 60, Critical: 80}

	tests := []struct {
		name  string
		value float64
		want  color.Color
	}{
		{"normal", 10, th.Color(theme.KeyMainFG)},
		{"at warning", 60, th.Color(theme.KeyHiFG)},
		{"critical", 95, th.Color(theme.KeyHiFG)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := st.value(tt.value, thresholds).GetForeground()
			assert.Equal(t, tt.want.Lipgloss(), got)
		})
	}

	unset := st.value(100, config.ThresholdValues{}).GetForeground()
	assert.Equal(t, th.Color(theme.KeyMainFG).Lipgloss(), unset, "zero thresholds never highlight")
}

func TestBoxColor(t *testing.T) {
	th := theme.Default()

	assert.Equal(t, th.Color(theme.KeyCPUBox), boxColor(th, widgetCPU))
	assert.Equal(t, th.Color(theme.KeyMemBox), boxColor(th, widgetMemory))
	assert.Equal(t, th.Color(theme.KeyNetBox), boxColor(th, widgetNetwork))
	assert.Equal(t, th.Color(theme.KeyMemBox), boxColor(th, widgetDisk))
	assert.Equal(t, th.Color(theme.KeyGPUBox), boxColor(th, widgetGPU))
	assert.Equal(t, th.Color(theme.KeyProcBox), boxColor(th, widgetProcess))
}

func TestHelpStyles(t *testing.T) {
	th := theme.Default()
	hs := helpStyles(th)

	assert.Equal(t, th.Color(theme.KeyHiFG).Lipgloss(), hs.ShortKey.GetForeground())
	assert.Equal(t, th.Color(theme.KeyMainFG).Lipgloss(), hs.FullDesc.GetForeground())
	assert.Equal(t, th.Color(theme.KeyDivLine).Lipgloss(), hs.ShortSeparator.GetForeground())
}
