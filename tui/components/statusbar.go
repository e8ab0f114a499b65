package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/opsdeck/tui/styles"
)

// Hint is one key/description pair in the footer.
type Hint struct {
	Key  string
	Desc string
}

// RenderStatusBar renders the two-line footer: a status message above the
// key hints for the current view.
func RenderStatusBar(theme styles.Theme, message string, hints []Hint, width int) string {
	bg := theme.Base01
	bgStyle := lipgloss.NewStyle().Background(bg)

	top := bgStyle.Render(" ") + lipgloss.NewStyle().Foreground(theme.Base05).Background(bg).Render(message)
	top = padRight(bgStyle, top, width)

	keyStyle := lipgloss.NewStyle().Foreground(theme.Base0D).Background(bg).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.Base04).Background(bg)
	spacer := bgStyle.Render("  ")

	keys := bgStyle.Render(" ")
	for i, h := range hints {
		if i > 0 {
			keys += spacer
		}
		keys += keyStyle.Render(h.Key) + descStyle.Render(":"+h.Desc)
	}
	keys = padRight(bgStyle, keys, width)

	return lipgloss.JoinVertical(lipgloss.Left, top, keys)
}

func padRight(bg lipgloss.Style, s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		s += bg.Render(strings.Repeat(" ", width-w))
	}
	return s
}
