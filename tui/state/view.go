// Package state holds the foreground's view state machine. Transition is a
// pure function: it never touches buffers, processes or the clipboard, it
// only returns the next view and the effects the caller must apply.
package state

import "github.com/tonhe/opsdeck/internal/buffer"

// BufferID names one of the three editor buffers.
type BufferID int

const (
	Notes BufferID = iota
	Todo
	Logs
)

// BufferCount is the number of editor buffers.
const BufferCount = 3

func (b BufferID) String() string {
	switch b {
	case Notes:
		return "Notes"
	case Todo:
		return "Todo"
	case Logs:
		return "Logs"
	default:
		return "?"
	}
}

// Step is a TaskWizard stage.
type Step int

const (
	StepTitle Step = iota
	StepDescription
	StepTime
)

func (s Step) String() string {
	switch s {
	case StepTitle:
		return "Title"
	case StepDescription:
		return "Description"
	case StepTime:
		return "Time"
	default:
		return "?"
	}
}

// View is exactly one of Editor, Actions, Search, InputPopup or TaskWizard.
type View interface {
	isView()
}

// Editor edits one buffer.
type Editor struct {
	Buffer BufferID
}

// Actions shows the command list with Selected highlighted.
type Actions struct {
	Selected int
}

// Search overlays the editor for Return with a live query.
type Search struct {
	Return BufferID
	Query  string
}

// InputPopup collects the placeholder value for Command.
type InputPopup struct {
	Command int
	Input   string
}

// TaskWizard collects a new task one field at a time.
type TaskWizard struct {
	Step        Step
	Input       string
	Title       string
	Description string
}

func (Editor) isView()     {}
func (Actions) isView()    {}
func (Search) isView()     {}
func (InputPopup) isView() {}
func (TaskWizard) isView() {}

// ActiveBuffer reports which buffer v shows, if any. The wizard is drawn over
// the Todo buffer.
func ActiveBuffer(v View) (BufferID, bool) {
	switch v := v.(type) {
	case Editor:
		return v.Buffer, true
	case Search:
		return v.Return, true
	case TaskWizard:
		return Todo, true
	default:
		return 0, false
	}
}

// InputKind classifies a translated key press.
type InputKind int

const (
	InQuit InputKind = iota
	InNewTask
	InTab
	InEscape
	InEnter
	InRune
	InText // bracketed paste
	InBackspace
	InDelete
	InDeleteWord
	InMove
	InSelect
	InCopy
	InCut
	InPaste // from the system clipboard
	InUndo
	InRedo
	InSelectAll
	InFind
	InSwitchBuffer
)

// Input is a key press after translation from terminal events.
type Input struct {
	Kind   InputKind
	Rune   rune
	Text   string
	Move   buffer.Move
	Buffer BufferID
}
