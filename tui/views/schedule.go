package views

import (
	"strings"

	"github.com/tonhe/opsdeck/internal/tasks"
	"github.com/tonhe/opsdeck/tui/styles"
)

// ScheduleLimit is the number of pending tasks shown in the schedule panel.
const ScheduleLimit = 5

// ScheduleView lists the next pending tasks, timed tasks first.
type ScheduleView struct {
	sty    *styles.Styles
	tasks  []tasks.Task
	width  int
	height int
}

// NewScheduleView creates a new ScheduleView with the given theme.
func NewScheduleView(theme styles.Theme) ScheduleView {
	return ScheduleView{sty: styles.NewStyles(theme)}
}

// SetTasks replaces the task list the panel draws from.
func (v *ScheduleView) SetTasks(list []tasks.Task) {
	v.tasks = list
}

// SetSize updates the outer dimensions of the panel.
func (v *ScheduleView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// Pending returns the number of tasks not yet completed.
func (v ScheduleView) Pending() int {
	n := 0
	for _, t := range v.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// View renders the schedule panel.
func (v ScheduleView) View() string {
	return renderPanel(v.sty, "Schedule", v.renderList(), v.width, v.height, false)
}

func (v ScheduleView) renderList() string {
	next := tasks.Schedule(v.tasks, ScheduleLimit)
	if len(next) == 0 {
		return v.sty.TableCellDim.Render(" (No active tasks)")
	}
	inner := v.width - 2
	titleWidth := inner - len(" 00:00 │ ")
	if titleWidth < 4 {
		titleWidth = 4
	}

	var lines []string
	separated := false
	for i, t := range next {
		if !t.HasTime() && !separated {
			if i > 0 {
				lines = append(lines, v.sty.TableCellDim.Render(" "+strings.Repeat("─", max(inner-2, 0))))
			}
			separated = true
		}
		if t.HasTime() {
			lines = append(lines, v.sty.TaskTime.Render(" "+padRight(t.Time, 5)+" │ ")+v.sty.TableRow.Render(truncateTail(t.Title, titleWidth)))
		} else {
			lines = append(lines, v.sty.TableCellDim.Render("  --   │ ")+v.sty.TableRow.Render(truncateTail(t.Title, titleWidth)))
		}
	}
	return strings.Join(lines, "\n")
}
