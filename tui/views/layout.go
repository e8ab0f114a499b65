package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/tonhe/opsdeck/tui/styles"
)

// padRight pads s with spaces on the right to the given display width,
// truncating when it is wider.
func padRight(s string, width int) string {
	s = truncateTail(s, width)
	if w := ansi.PrintableRuneWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// padLeft pads s with spaces on the left to the given display width.
func padLeft(s string, width int) string {
	s = truncateTail(s, width)
	if w := ansi.PrintableRuneWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// truncateTail shortens s to width cells, ending in ".." when cut.
func truncateTail(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.PrintableRuneWidth(s) <= width {
		return s
	}
	if width <= 2 {
		return truncate.String(s, uint(width))
	}
	return truncate.StringWithTail(s, uint(width), "..")
}

// renderModal draws content in a rounded box with title set into the top
// border.
func renderModal(theme styles.Theme, sty *styles.Styles, title, content string, innerWidth int) string {
	noTopBorder := sty.ModalBorder.BorderTop(false)
	body := noTopBorder.Width(innerWidth).Render(content)

	borderFg := lipgloss.NewStyle().Foreground(theme.Base0D).Background(theme.Base00)
	titleText := " " + title + " "
	titleRendered := sty.ModalTitle.Render(titleText)

	fullWidth := lipgloss.Width(body)
	rightDashes := fullWidth - 2 - 1 - lipgloss.Width(titleText)
	if rightDashes < 0 {
		rightDashes = 0
	}
	top := borderFg.Render("╭─") + titleRendered + borderFg.Render(strings.Repeat("─", rightDashes)+"╮")
	return top + "\n" + body
}

// modalWidth picks a box width for a terminal of the given width.
func modalWidth(width, lo, hi int) int {
	w := width / 2
	if w > hi {
		w = hi
	}
	if w < lo {
		w = lo
	}
	return w
}

// renderPanel draws a bordered panel of exactly width x height cells with a
// title in the top border.
func renderPanel(sty *styles.Styles, title, body string, width, height int, active bool) string {
	box := sty.Panel
	if active {
		box = sty.PanelActive
	}
	innerW := width - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	lines := strings.Split(body, "\n")
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	for i, l := range lines {
		lines[i] = padRight(l, innerW)
	}
	for len(lines) < innerH {
		lines = append(lines, strings.Repeat(" ", innerW))
	}

	rendered := box.BorderTop(false).Render(strings.Join(lines, "\n"))

	border := lipgloss.RoundedBorder()
	fg := lipgloss.NewStyle().Foreground(box.GetBorderTopForeground())
	label := sty.PanelTitle.Render(" " + title + " ")
	dashes := innerW - 1 - lipgloss.Width(" "+title+" ")
	if dashes < 0 {
		dashes = 0
	}
	top := fg.Render(border.TopLeft+border.Top) + label + fg.Render(strings.Repeat(border.Top, dashes)+border.TopRight)
	return top + "\n" + rendered
}
