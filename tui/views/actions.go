package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/opsdeck/internal/config"
	"github.com/tonhe/opsdeck/tui/styles"
)

// ActionsView lists the configured admin commands.
type ActionsView struct {
	theme  styles.Theme
	sty    *styles.Styles
	width  int
	height int
}

// NewActionsView creates a new ActionsView with the given theme.
func NewActionsView(theme styles.Theme) ActionsView {
	return ActionsView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// SetSize updates the outer dimensions of the panel.
func (v *ActionsView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// View renders the command list with selected highlighted.
func (v ActionsView) View(commands []config.AdminCommand, selected int) string {
	inner := v.width - 2
	var lines []string
	if len(commands) == 0 {
		dim := lipgloss.NewStyle().Foreground(v.theme.Base04)
		lines = append(lines, dim.Render("No commands configured."))
	}

	// Keep the selection on screen.
	visible := max(v.height-2, 1)
	start := 0
	if selected >= visible {
		start = selected - visible + 1
	}
	for i := start; i < len(commands); i++ {
		lines = append(lines, v.renderItem(commands[i], i == selected, inner))
	}
	return renderPanel(v.sty, "Commands", strings.Join(lines, "\n"), v.width, v.height, true)
}

func (v ActionsView) renderItem(cmd config.AdminCommand, selected bool, width int) string {
	cursor := "   "
	style := v.sty.TableRow
	if selected {
		cursor = ">> "
		style = v.sty.TableRowSel
	}
	name := cmd.Name
	if cmd.NeedsInput() {
		name += " …"
	}
	return style.Render(padRight(cursor+name, width))
}
