package state

import (
	"github.com/tonhe/opsdeck/internal/buffer"
	"github.com/tonhe/opsdeck/internal/config"
	"github.com/tonhe/opsdeck/internal/tasks"
)

// Effect is a side effect requested by Transition.
type Effect interface {
	isEffect()
}

// Quit ends the session after a final save.
type Quit struct{}

// EditOp is a buffer operation.
type EditOp int

const (
	OpInsertRune EditOp = iota
	OpInsertText
	OpNewline
	OpBackspace
	OpDelete
	OpDeleteWord
	OpMove
	OpSelect
	OpSelectAll
	OpCopy
	OpCut
	OpPaste
	OpUndo
	OpRedo
)

// Mutates reports whether op can change buffer text and so dirty it.
func (op EditOp) Mutates() bool {
	switch op {
	case OpMove, OpSelect, OpSelectAll, OpCopy:
		return false
	default:
		return true
	}
}

// Edit applies Op to Buffer.
type Edit struct {
	Buffer BufferID
	Op     EditOp
	Rune   rune
	Text   string
	Move   buffer.Move
}

// Find runs a forward search for Query in Buffer. An empty Query clears the
// active search pattern.
type Find struct {
	Buffer  BufferID
	Query   string
	Advance bool
}

// RunCommand launches command Index with fully expanded Args. Input is the
// placeholder value, if one was collected.
type RunCommand struct {
	Index int
	Args  []string
	Input string
}

// AppendTask appends a rendered task to the Todo buffer.
type AppendTask struct {
	Task tasks.Task
}

func (Quit) isEffect()       {}
func (Edit) isEffect()       {}
func (Find) isEffect()       {}
func (RunCommand) isEffect() {}
func (AppendTask) isEffect() {}

// Env is the read-only context Transition needs.
type Env struct {
	Commands []config.AdminCommand
	// ActionCursor is the selection restored when Actions is reopened.
	ActionCursor int
}
