package views

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/opsdeck/tui/state"
	"github.com/tonhe/opsdeck/tui/styles"
)

// SearchBar renders the query line shown under the editor while searching.
func SearchBar(theme styles.Theme, query string, width int) string {
	sty := styles.NewStyles(theme)
	return sty.SearchBar.Width(max(width-4, 1)).Render("Search: " + query + "▏")
}

// InputPopup renders the modal collecting a command's placeholder value.
func InputPopup(theme styles.Theme, command, input string, width, height int) string {
	sty := styles.NewStyles(theme)
	w := modalWidth(width, 30, 60)
	content := lipgloss.JoinVertical(lipgloss.Left,
		sty.FormLabel.Render(command),
		"",
		sty.FormInput.Width(w-6).Render(input+"▏"),
		"",
		hintLine(theme, "enter", "run", "esc", "back"),
	)
	modal := renderModal(theme, sty, "Enter argument (IP/Host)", content, w-6)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

// Wizard renders the three-step new task dialog.
func Wizard(theme styles.Theme, w state.TaskWizard, width, height int) string {
	sty := styles.NewStyles(theme)
	mw := modalWidth(width, 36, 64)

	var title, prompt string
	switch w.Step {
	case state.StepTitle:
		title, prompt = "1/3: Task title", "Enter a title:"
	case state.StepDescription:
		title, prompt = "2/3: Description", "Enter a description (may be empty):"
	case state.StepTime:
		title, prompt = "3/3: Reminder time", "Enter a time (HH:MM) or press Enter to skip:"
	}

	var rows []string
	if w.Step != state.StepTitle {
		rows = append(rows, sty.FormLabel.Render("Title: ")+sty.TableRow.Render(w.Title), "")
	}
	rows = append(rows,
		sty.FormLabel.Render(prompt),
		sty.FormCursor.Render("> ")+sty.FormInput.Render(w.Input+"▏"),
		"",
		hintLine(theme, "enter", "next", "esc", "cancel"),
	)
	modal := renderModal(theme, sty, title, lipgloss.JoinVertical(lipgloss.Left, rows...), mw-6)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

// hintLine renders key/description pairs in the footer style.
func hintLine(theme styles.Theme, pairs ...string) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Base0D).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.Base04)
	var out string
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			out += "  "
		}
		out += fmt.Sprintf("%s:%s", keyStyle.Render(pairs[i]), descStyle.Render(pairs[i+1]))
	}
	return out
}
