package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/opsdeck/tui/styles"
)

// RenderHeader renders the top header bar with app name, target health,
// pending task count, clock and version.
func RenderHeader(theme styles.Theme, online, total, pending int, now time.Time, width int, ver string) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Base0D).
		Background(theme.Base01).
		Bold(true).
		Render("opsdeck")

	healthColor := theme.Base0B
	if online < total {
		healthColor = theme.Base08
	}
	health := lipgloss.NewStyle().
		Foreground(healthColor).
		Background(theme.Base01).
		Render(fmt.Sprintf("%d/%d online", online, total))

	tasks := lipgloss.NewStyle().
		Foreground(theme.Base0A).
		Background(theme.Base01).
		Render(fmt.Sprintf("%d pending", pending))

	clock := lipgloss.NewStyle().
		Foreground(theme.Base05).
		Background(theme.Base01).
		Render(now.Format("15:04:05"))

	versionSeg := lipgloss.NewStyle().
		Foreground(theme.Base04).
		Background(theme.Base01).
		Render("v" + ver)

	content := fmt.Sprintf(" %s  |  %s  |  %s  |  %s  |  %s ", left, health, tasks, clock, versionSeg)

	return lipgloss.NewStyle().
		Background(theme.Base01).
		Width(width).
		Render(content)
}
