package state

import (
	"strings"

	"github.com/tonhe/opsdeck/internal/buffer"
	"github.com/tonhe/opsdeck/internal/tasks"
)

// Transition returns the view that follows v on input in, plus any effects
// to apply. It does not mutate its arguments.
func Transition(v View, in Input, env Env) (View, []Effect) {
	switch in.Kind {
	case InQuit:
		return v, []Effect{Quit{}}
	case InNewTask:
		switch cur := v.(type) {
		case TaskWizard:
			return v, nil
		case Search:
			return TaskWizard{Step: StepTitle}, []Effect{Find{Buffer: cur.Return}}
		default:
			return TaskWizard{Step: StepTitle}, nil
		}
	}

	switch cur := v.(type) {
	case Editor:
		return editor(cur, in, env)
	case Search:
		return search(cur, in)
	case Actions:
		return actions(cur, in, env)
	case InputPopup:
		return inputPopup(cur, in, env)
	case TaskWizard:
		return wizard(cur, in)
	}
	return v, nil
}

var editOps = map[InputKind]EditOp{
	InRune:       OpInsertRune,
	InText:       OpInsertText,
	InEnter:      OpNewline,
	InBackspace:  OpBackspace,
	InDelete:     OpDelete,
	InDeleteWord: OpDeleteWord,
	InMove:       OpMove,
	InSelect:     OpSelect,
	InSelectAll:  OpSelectAll,
	InCopy:       OpCopy,
	InCut:        OpCut,
	InPaste:      OpPaste,
	InUndo:       OpUndo,
	InRedo:       OpRedo,
}

func editor(v Editor, in Input, env Env) (View, []Effect) {
	switch in.Kind {
	case InTab:
		return Actions{Selected: clampCursor(env.ActionCursor, len(env.Commands))}, nil
	case InEscape:
		return v, []Effect{Quit{}}
	case InFind:
		return Search{Return: v.Buffer}, nil
	case InSwitchBuffer:
		return Editor{Buffer: in.Buffer}, nil
	}
	if op, ok := editOps[in.Kind]; ok {
		return v, []Effect{Edit{Buffer: v.Buffer, Op: op, Rune: in.Rune, Text: in.Text, Move: in.Move}}
	}
	return v, nil
}

func search(v Search, in Input) (View, []Effect) {
	switch in.Kind {
	case InEscape:
		return Editor{Buffer: v.Return}, []Effect{Find{Buffer: v.Return}}
	case InEnter:
		return v, []Effect{Find{Buffer: v.Return, Query: v.Query, Advance: true}}
	case InRune:
		v.Query += string(in.Rune)
	case InText:
		v.Query += strings.ReplaceAll(in.Text, "\n", " ")
	case InBackspace:
		v.Query = dropLastRune(v.Query)
	default:
		return v, nil
	}
	return v, []Effect{Find{Buffer: v.Return, Query: v.Query}}
}

func actions(v Actions, in Input, env Env) (View, []Effect) {
	n := len(env.Commands)
	switch in.Kind {
	case InTab, InEscape:
		return Editor{Buffer: Notes}, nil
	case InMove:
		if n == 0 {
			return v, nil
		}
		switch in.Move {
		case buffer.Up:
			v.Selected = (v.Selected - 1 + n) % n
		case buffer.Down:
			v.Selected = (v.Selected + 1) % n
		}
		return v, nil
	case InEnter:
		if v.Selected < 0 || v.Selected >= n {
			return v, nil
		}
		cmd := env.Commands[v.Selected]
		if cmd.NeedsInput() {
			return InputPopup{Command: v.Selected}, nil
		}
		return Editor{Buffer: Logs}, []Effect{RunCommand{Index: v.Selected, Args: cmd.ExpandArgs("")}}
	}
	return v, nil
}

func inputPopup(v InputPopup, in Input, env Env) (View, []Effect) {
	switch in.Kind {
	case InEscape:
		return Actions{Selected: v.Command}, nil
	case InEnter:
		if v.Command < 0 || v.Command >= len(env.Commands) {
			return Actions{}, nil
		}
		args := env.Commands[v.Command].ExpandArgs(v.Input)
		return Editor{Buffer: Logs}, []Effect{RunCommand{Index: v.Command, Args: args, Input: v.Input}}
	}
	v.Input = editLine(v.Input, in)
	return v, nil
}

func wizard(v TaskWizard, in Input) (View, []Effect) {
	switch in.Kind {
	case InEscape:
		return Editor{Buffer: Todo}, nil
	case InEnter:
		switch v.Step {
		case StepTitle:
			title := strings.TrimSpace(v.Input)
			if title == "" {
				return v, nil
			}
			return TaskWizard{Step: StepDescription, Title: title}, nil
		case StepDescription:
			if !tasks.ValidDescription(v.Input) {
				return v, nil
			}
			return TaskWizard{Step: StepTime, Title: v.Title, Description: v.Input}, nil
		case StepTime:
			at, ok := tasks.NormalizeTime(v.Input)
			if !ok {
				return v, nil
			}
			t := tasks.Task{
				Title:       v.Title,
				Description: v.Description,
				Time:        at,
			}
			return Editor{Buffer: Todo}, []Effect{AppendTask{Task: t}}
		}
	}
	v.Input = editLine(v.Input, in)
	return v, nil
}

// editLine applies single-line text input to s.
func editLine(s string, in Input) string {
	switch in.Kind {
	case InRune:
		return s + string(in.Rune)
	case InText:
		return s + strings.ReplaceAll(in.Text, "\n", " ")
	case InBackspace:
		return dropLastRune(s)
	}
	return s
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

func clampCursor(i, n int) int {
	if i < 0 || i >= n {
		return 0
	}
	return i
}
