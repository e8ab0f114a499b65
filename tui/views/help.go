package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/opsdeck/tui/styles"
)

// HelpView renders a modal overlay showing all keyboard shortcuts.
type HelpView struct {
	theme   styles.Theme
	sty     *styles.Styles
	width   int
	height  int
	visible bool
}

// NewHelpView creates a new HelpView with the given theme.
func NewHelpView(theme styles.Theme) HelpView {
	return HelpView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// Toggle flips the help overlay visibility.
func (v *HelpView) Toggle() {
	v.visible = !v.visible
}

// IsVisible returns whether the help overlay is currently shown.
func (v HelpView) IsVisible() bool {
	return v.visible
}

// SetSize updates the available dimensions for the overlay.
func (v *HelpView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// View renders the help overlay as a centered modal box.
func (v HelpView) View() string {
	innerWidth := modalWidth(v.width, 44, 60) - 6 // border + padding

	sectionStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base0E).
		Bold(true)
	keyStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base0D).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base05)
	dimStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base04)

	bindingLine := func(keys, desc string) string {
		return fmt.Sprintf("  %s  %s",
			keyStyle.Render(padRight(keys, 18)),
			descStyle.Render(desc),
		)
	}

	var lines []string

	lines = append(lines, sectionStyle.Render("Global"))
	lines = append(lines, bindingLine("Ctrl+Q", "Save and quit"))
	lines = append(lines, bindingLine("Alt+T", "New task"))
	lines = append(lines, bindingLine("F1", "Toggle this help"))
	lines = append(lines, bindingLine("F2", "Settings"))
	lines = append(lines, "")

	lines = append(lines, sectionStyle.Render("Editor"))
	lines = append(lines, bindingLine("Alt+1 / 2 / 3", "Notes / Todo / Logs"))
	lines = append(lines, bindingLine("Tab", "Actions"))
	lines = append(lines, bindingLine("Ctrl+F", "Search"))
	lines = append(lines, bindingLine("Ctrl+C / X / V", "Copy / cut / paste"))
	lines = append(lines, bindingLine("Ctrl+Z / Y", "Undo / redo"))
	lines = append(lines, bindingLine("Ctrl+A", "Select all"))
	lines = append(lines, bindingLine("Ctrl+Left / Right", "Word left / right"))
	lines = append(lines, bindingLine("Shift+arrows", "Extend selection"))
	lines = append(lines, bindingLine("Ctrl+W", "Delete word"))
	lines = append(lines, bindingLine("Esc", "Save and quit"))
	lines = append(lines, "")

	lines = append(lines, sectionStyle.Render("Search"))
	lines = append(lines, bindingLine("Enter", "Next match"))
	lines = append(lines, bindingLine("Esc", "Close search"))
	lines = append(lines, "")

	lines = append(lines, sectionStyle.Render("Actions"))
	lines = append(lines, bindingLine("Up / Down", "Select command"))
	lines = append(lines, bindingLine("Enter", "Run command"))
	lines = append(lines, bindingLine("Tab / Esc", "Back to notes"))
	lines = append(lines, "")

	lines = append(lines, dimStyle.Render("[F1] close"))

	modal := renderModal(v.theme, v.sty, "Keyboard Shortcuts", strings.Join(lines, "\n"), innerWidth)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, modal)
}
