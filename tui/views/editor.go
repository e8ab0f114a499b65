package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/opsdeck/internal/buffer"
	"github.com/tonhe/opsdeck/tui/state"
	"github.com/tonhe/opsdeck/tui/styles"
)

// EditorView draws one text buffer with cursor, selection and search
// highlights. It keeps a scroll position per buffer.
type EditorView struct {
	theme  styles.Theme
	sty    *styles.Styles
	width  int
	height int
	top    [state.BufferCount]int
	left   [state.BufferCount]int
}

// NewEditorView creates a new EditorView with the given theme.
func NewEditorView(theme styles.Theme) EditorView {
	return EditorView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// SetSize updates the outer dimensions of the editor panel.
func (v *EditorView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

func (v EditorView) inner() (w, h int) {
	return max(v.width-2, 1), max(v.height-2, 1)
}

// Follow scrolls buffer id so the cursor of b is visible.
func (v *EditorView) Follow(id state.BufferID, b *buffer.Buffer) {
	w, h := v.inner()
	c := b.Cursor()
	if c.Row < v.top[id] {
		v.top[id] = c.Row
	}
	if c.Row >= v.top[id]+h {
		v.top[id] = c.Row - h + 1
	}
	if c.Col < v.left[id] {
		v.left[id] = c.Col
	}
	if c.Col >= v.left[id]+w {
		v.left[id] = c.Col - w + 1
	}
}

type cellKind int

const (
	cellText cellKind = iota
	cellSel
	cellMatch
	cellCursor
)

// View renders buffer id. pattern, when non-empty, is highlighted wherever
// it occurs. The cursor is drawn only when focused.
func (v EditorView) View(id state.BufferID, b *buffer.Buffer, pattern string, focused bool) string {
	w, h := v.inner()
	lines := b.Lines()
	cur := b.Cursor()
	selStart, selEnd, hasSel := b.Selection()
	pat := []rune(pattern)

	out := make([]string, 0, h)
	for row := v.top[id]; row < len(lines) && len(out) < h; row++ {
		line := []rune(lines[row])
		kinds := make([]cellKind, len(line)+1)
		if len(pat) > 0 {
			for i := 0; i+len(pat) <= len(line); i++ {
				if string(line[i:i+len(pat)]) == pattern {
					for j := i; j < i+len(pat); j++ {
						kinds[j] = cellMatch
					}
				}
			}
		}
		if hasSel {
			for col := range kinds {
				p := buffer.Pos{Row: row, Col: col}
				if !p.Before(selStart) && p.Before(selEnd) {
					kinds[col] = cellSel
				}
			}
		}
		if focused && row == cur.Row {
			kinds[cur.Col] = cellCursor
		}
		out = append(out, v.renderLine(line, kinds, v.left[id], w))
	}
	return renderPanel(v.sty, id.String(), strings.Join(out, "\n"), v.width, v.height, focused)
}

// renderLine styles the visible slice of line, merging runs of equal kind.
func (v EditorView) renderLine(line []rune, kinds []cellKind, left, width int) string {
	var sb strings.Builder
	end := min(left+width, len(kinds))
	runStart := left
	for i := left; i <= end; i++ {
		if i < end && kinds[i] == kinds[runStart] {
			continue
		}
		if runStart < end {
			sb.WriteString(v.styleFor(kinds[runStart]).Render(visibleRunes(line, runStart, i)))
		}
		runStart = i
	}
	return sb.String()
}

// visibleRunes returns the runes of line in [from, to), using a space for the
// position just past the end so the cursor can sit there.
func visibleRunes(line []rune, from, to int) string {
	if to <= len(line) {
		return string(line[from:to])
	}
	return string(line[from:]) + " "
}

func (v EditorView) styleFor(k cellKind) lipgloss.Style {
	switch k {
	case cellCursor:
		return v.sty.EditorCur
	case cellSel:
		return v.sty.EditorSel
	case cellMatch:
		return v.sty.EditorMatch
	default:
		return v.sty.EditorText
	}
}

// RenderTabs draws the buffer tab row with the actions hint on the right.
func RenderTabs(theme styles.Theme, active state.BufferID, hasActive, actionsOpen bool, width int) string {
	sty := styles.NewStyles(theme)
	var tabs []string
	for id := state.Notes; id <= state.Logs; id++ {
		label := id.String()
		if hasActive && id == active && !actionsOpen {
			tabs = append(tabs, sty.TabActive.Render(label))
		} else {
			tabs = append(tabs, sty.TabInactive.Render(label))
		}
	}
	left := strings.Join(tabs, sty.TabInactive.UnsetPadding().Render("│"))

	var right string
	if actionsOpen {
		right = sty.TabHintHot.Render("[TAB] ACTIONS")
	} else {
		right = sty.TabHint.Render("[TAB] Actions | [ALT+T] New Task ")
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}
