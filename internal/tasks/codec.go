package tasks

import "strings"

const taskPrefix = "- ["

// Parse derives the task list from the Todo buffer text. A line of the form
// "- [<marker>] <title>" starts a task; following lines up to the next task
// line make up its description. Text before the first task is ignored.
func Parse(text string) []Task {
	var (
		list    []Task
		current *Task
	)
	flush := func() {
		if current != nil {
			list = append(list, *current)
			current = nil
		}
	}

	for _, line := range splitLines(text) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if marker, title, ok := parseTaskLine(trimmed); ok {
			flush()
			t := Task{Title: title}
			if strings.ContainsAny(marker, "xX") {
				t.Completed = true
			} else {
				t.Time = strings.TrimSpace(marker)
			}
			current = &t
			continue
		}
		if current == nil {
			continue
		}
		if current.Description != "" {
			current.Description += "\n"
		}
		current.Description += trimmed
	}
	flush()
	return list
}

// Render formats t as a block ready to append to the Todo buffer: the task
// line followed by the description indented by two spaces. An empty
// description still produces one (indented, empty) line.
func Render(t Task) string {
	marker := t.Time
	switch {
	case t.Completed:
		marker = "x"
	case marker == "":
		marker = " "
	}

	var sb strings.Builder
	sb.WriteString(taskPrefix + marker + "] " + t.Title + "\n")
	for _, line := range strings.Split(t.Description, "\n") {
		sb.WriteString("  " + strings.TrimSpace(line) + "\n")
	}
	return sb.String()
}

// MarkCompleted finds the first task line mentioning title whose marker is
// not already "x" and returns its index and the line with the marker
// replaced by "x". Title and description text are left alone.
func MarkCompleted(lines []string, title string) (int, string, bool) {
	for i, line := range lines {
		marker, _, ok := parseTaskLine(strings.TrimSpace(line))
		if !ok || !strings.Contains(line, title) {
			continue
		}
		if strings.ContainsAny(marker, "xX") {
			continue
		}
		open := strings.Index(line, "[")
		end := strings.Index(line, "]")
		if open < 0 || end < open {
			continue
		}
		return i, line[:open+1] + "x" + line[end:], true
	}
	return -1, "", false
}

// ValidDescription reports whether desc can be stored under a task without
// any of its lines being read back as a task of its own.
func ValidDescription(desc string) bool {
	for _, line := range splitLines(desc) {
		if _, _, ok := parseTaskLine(strings.TrimSpace(line)); ok {
			return false
		}
	}
	return true
}

// parseTaskLine splits a trimmed "- [marker] title" line.
func parseTaskLine(trimmed string) (marker, title string, ok bool) {
	if !strings.HasPrefix(trimmed, taskPrefix) {
		return "", "", false
	}
	rest := trimmed[len(taskPrefix):]
	end := strings.Index(rest, "]")
	if end < 0 {
		return "", "", false
	}
	return rest[:end], strings.TrimSpace(rest[end+1:]), true
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}
