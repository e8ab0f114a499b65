package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tonhe/opsdeck/tui/styles"
)

// SlowLatency is the round-trip time at which the latency gradient reaches
// the theme's warning color.
const SlowLatency = 100

// LatencyColor blends from the theme's green through yellow to red as ms
// approaches twice SlowLatency. Offline targets are always red.
func LatencyColor(theme styles.Theme, ms int64, online bool) lipgloss.Color {
	if !online {
		return theme.Base08
	}
	good, err1 := colorful.Hex(string(theme.Base0B))
	warn, err2 := colorful.Hex(string(theme.Base0A))
	bad, err3 := colorful.Hex(string(theme.Base08))
	if err1 != nil || err2 != nil || err3 != nil {
		return theme.Base0B
	}
	var c colorful.Color
	switch {
	case ms <= 0:
		c = good
	case ms < SlowLatency:
		c = good.BlendLab(warn, float64(ms)/SlowLatency)
	case ms < 2*SlowLatency:
		c = warn.BlendLab(bad, float64(ms-SlowLatency)/SlowLatency)
	default:
		c = bad
	}
	return lipgloss.Color(c.Clamped().Hex())
}
