package components

import (
	"testing"

	"github.com/tonhe/opsdeck/tui/styles"
)

func TestLatencyColorEndpoints(t *testing.T) {
	theme := styles.Resolve("solarized-dark")

	if got := LatencyColor(theme, 5, false); got != theme.Base08 {
		t.Errorf("offline color = %v, want %v", got, theme.Base08)
	}
	if got := LatencyColor(theme, 0, true); got != theme.Base0B {
		t.Errorf("zero latency color = %v, want %v", got, theme.Base0B)
	}
	if got := LatencyColor(theme, 500, true); got != theme.Base08 {
		t.Errorf("slow color = %v, want %v", got, theme.Base08)
	}
	mid := LatencyColor(theme, 50, true)
	if mid == theme.Base0B || mid == theme.Base08 {
		t.Errorf("mid latency color %v not blended", mid)
	}
}
