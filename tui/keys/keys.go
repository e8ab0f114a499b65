package keys

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tonhe/opsdeck/internal/buffer"
	"github.com/tonhe/opsdeck/tui/state"
)

// KeyMap defines all key bindings for the application. On a Ukrainian
// layout most terminals send ctrl chords as the Latin control codes. Those
// that report the layout letter with alt instead hit the alt+ aliases bound
// to the same physical keys (alt+й is ctrl+q, alt+я is ctrl+z).
type KeyMap struct {
	Quit       key.Binding
	NewTask    key.Binding
	Help       key.Binding
	Settings   key.Binding
	Find       key.Binding
	Copy       key.Binding
	Cut        key.Binding
	Paste      key.Binding
	Undo       key.Binding
	Redo       key.Binding
	SelectAll  key.Binding
	DeleteWord key.Binding
	Notes      key.Binding
	Todo       key.Binding
	Logs       key.Binding
	Tab        key.Binding
	Escape     key.Binding
	Enter      key.Binding
	Backspace  key.Binding
	Delete     key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
}

// DefaultKeyMap provides the default set of key bindings.
var DefaultKeyMap = KeyMap{
	Quit:       key.NewBinding(key.WithKeys("ctrl+q", "alt+й"), key.WithHelp("ctrl+q", "quit")),
	NewTask:    key.NewBinding(key.WithKeys("alt+t", "alt+е"), key.WithHelp("alt+t", "new task")),
	Help:       key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
	Settings:   key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "settings")),
	Find:       key.NewBinding(key.WithKeys("ctrl+f", "alt+а"), key.WithHelp("ctrl+f", "search")),
	Copy:       key.NewBinding(key.WithKeys("ctrl+c", "alt+с"), key.WithHelp("ctrl+c", "copy")),
	Cut:        key.NewBinding(key.WithKeys("ctrl+x", "alt+ч"), key.WithHelp("ctrl+x", "cut")),
	Paste:      key.NewBinding(key.WithKeys("ctrl+v", "alt+v", "alt+м"), key.WithHelp("ctrl+v", "paste")),
	Undo:       key.NewBinding(key.WithKeys("ctrl+z", "alt+я"), key.WithHelp("ctrl+z", "undo")),
	Redo:       key.NewBinding(key.WithKeys("ctrl+y", "alt+н"), key.WithHelp("ctrl+y", "redo")),
	SelectAll:  key.NewBinding(key.WithKeys("ctrl+a", "alt+ф"), key.WithHelp("ctrl+a", "select all")),
	DeleteWord: key.NewBinding(key.WithKeys("ctrl+w", "alt+backspace", "ctrl+backspace"), key.WithHelp("ctrl+w", "delete word")),
	Notes:      key.NewBinding(key.WithKeys("alt+1"), key.WithHelp("alt+1", "notes")),
	Todo:       key.NewBinding(key.WithKeys("alt+2"), key.WithHelp("alt+2", "todo")),
	Logs:       key.NewBinding(key.WithKeys("alt+3"), key.WithHelp("alt+3", "logs")),
	Tab:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "actions")),
	Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Backspace:  key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete left")),
	Delete:     key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
	Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("up", "up")),
	Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("down", "down")),
	Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("left", "left")),
	Right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("right", "right")),
}

var moves = map[string]buffer.Move{
	"up":         buffer.Up,
	"down":       buffer.Down,
	"left":       buffer.Left,
	"right":      buffer.Right,
	"home":       buffer.Home,
	"end":        buffer.End,
	"ctrl+left":  buffer.WordLeft,
	"ctrl+right": buffer.WordRight,
	"alt+left":   buffer.WordLeft,
	"alt+right":  buffer.WordRight,
	"ctrl+home":  buffer.Top,
	"ctrl+end":   buffer.Bottom,
}

var selects = map[string]buffer.Move{
	"shift+up":         buffer.Up,
	"shift+down":       buffer.Down,
	"shift+left":       buffer.Left,
	"shift+right":      buffer.Right,
	"shift+home":       buffer.Home,
	"shift+end":        buffer.End,
	"ctrl+shift+left":  buffer.WordLeft,
	"ctrl+shift+right": buffer.WordRight,
	"ctrl+shift+home":  buffer.Top,
	"ctrl+shift+end":   buffer.Bottom,
}

// Translate converts a terminal key event into zero or more inputs for the
// view state machine.
func Translate(msg tea.KeyMsg) []state.Input {
	km := DefaultKeyMap

	if msg.Paste {
		return []state.Input{{Kind: state.InText, Text: string(msg.Runes)}}
	}

	switch {
	case key.Matches(msg, km.Quit):
		return one(state.InQuit)
	case key.Matches(msg, km.NewTask):
		return one(state.InNewTask)
	case key.Matches(msg, km.Find):
		return one(state.InFind)
	case key.Matches(msg, km.Copy):
		return one(state.InCopy)
	case key.Matches(msg, km.Cut):
		return one(state.InCut)
	case key.Matches(msg, km.Paste):
		return one(state.InPaste)
	case key.Matches(msg, km.Undo):
		return one(state.InUndo)
	case key.Matches(msg, km.Redo):
		return one(state.InRedo)
	case key.Matches(msg, km.SelectAll):
		return one(state.InSelectAll)
	case key.Matches(msg, km.DeleteWord):
		return one(state.InDeleteWord)
	case key.Matches(msg, km.Notes):
		return []state.Input{{Kind: state.InSwitchBuffer, Buffer: state.Notes}}
	case key.Matches(msg, km.Todo):
		return []state.Input{{Kind: state.InSwitchBuffer, Buffer: state.Todo}}
	case key.Matches(msg, km.Logs):
		return []state.Input{{Kind: state.InSwitchBuffer, Buffer: state.Logs}}
	case key.Matches(msg, km.Tab):
		return one(state.InTab)
	case key.Matches(msg, km.Escape):
		return one(state.InEscape)
	case key.Matches(msg, km.Enter):
		return one(state.InEnter)
	case key.Matches(msg, km.Backspace):
		return one(state.InBackspace)
	case key.Matches(msg, km.Delete):
		return one(state.InDelete)
	}

	s := msg.String()
	if m, ok := moves[s]; ok {
		return []state.Input{{Kind: state.InMove, Move: m}}
	}
	if m, ok := selects[s]; ok {
		return []state.Input{{Kind: state.InSelect, Move: m}}
	}

	switch msg.Type {
	case tea.KeySpace:
		return []state.Input{{Kind: state.InRune, Rune: ' '}}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		out := make([]state.Input, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, state.Input{Kind: state.InRune, Rune: r})
		}
		return out
	}
	return nil
}

func one(kind state.InputKind) []state.Input {
	return []state.Input{{Kind: kind}}
}
