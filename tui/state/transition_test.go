package state

import (
	"reflect"
	"strings"
	"testing"

	"github.com/tonhe/opsdeck/internal/buffer"
	"github.com/tonhe/opsdeck/internal/config"
	"github.com/tonhe/opsdeck/internal/tasks"
)

func testEnv() Env {
	return Env{Commands: []config.AdminCommand{
		{Name: "Uptime", Cmd: "uptime"},
		{Name: "Ping", Cmd: "ping", Args: []string{"-c", "1", config.InputPlaceholder}},
		{Name: "Disk", Cmd: "df", Args: []string{"-h"}},
	}}
}

func runes(s string) []Input {
	var out []Input
	for _, r := range s {
		out = append(out, Input{Kind: InRune, Rune: r})
	}
	return out
}

func feed(t *testing.T, v View, env Env, inputs ...Input) (View, []Effect) {
	t.Helper()
	var all []Effect
	for _, in := range inputs {
		var effs []Effect
		v, effs = Transition(v, in, env)
		all = append(all, effs...)
	}
	return v, all
}

func enter() Input { return Input{Kind: InEnter} }
func esc() Input   { return Input{Kind: InEscape} }

func TestWizardScenario(t *testing.T) {
	var inputs []Input
	inputs = append(inputs, Input{Kind: InNewTask})
	inputs = append(inputs, runes("Water plants")...)
	inputs = append(inputs, enter(), enter())
	inputs = append(inputs, runes("07:00")...)
	inputs = append(inputs, enter())

	v, effs := feed(t, Editor{Buffer: Notes}, testEnv(), inputs...)
	if v != (Editor{Buffer: Todo}) {
		t.Fatalf("view = %#v, want Editor(Todo)", v)
	}
	if len(effs) != 1 {
		t.Fatalf("effects = %#v, want one AppendTask", effs)
	}
	at, ok := effs[0].(AppendTask)
	if !ok {
		t.Fatalf("effect = %#v, want AppendTask", effs[0])
	}
	want := tasks.Task{Title: "Water plants", Time: "07:00"}
	if at.Task != want {
		t.Errorf("task = %+v, want %+v", at.Task, want)
	}
	rendered := tasks.Render(at.Task)
	if lines := strings.Split(strings.TrimSuffix(rendered, "\n"), "\n"); len(lines) != 2 {
		t.Errorf("rendered %q has %d lines, want 2", rendered, len(lines))
	}
}

func TestWizardValidation(t *testing.T) {
	env := testEnv()

	v, effs := feed(t, TaskWizard{Step: StepTitle}, env, Input{Kind: InRune, Rune: ' '}, enter())
	if w := v.(TaskWizard); w.Step != StepTitle || len(effs) != 0 {
		t.Errorf("blank title advanced: %#v", v)
	}

	v = TaskWizard{Step: StepTime, Title: "T"}
	v, effs = feed(t, v, env, append(runes("24:00"), enter())...)
	w, ok := v.(TaskWizard)
	if !ok || w.Step != StepTime || w.Input != "24:00" || len(effs) != 0 {
		t.Errorf("invalid time accepted: %#v %#v", v, effs)
	}

	// Correct the entry and finish.
	v, effs = feed(t, v, env, Input{Kind: InBackspace}, Input{Kind: InBackspace},
		Input{Kind: InBackspace}, Input{Kind: InBackspace}, Input{Kind: InBackspace})
	v, effs = feed(t, v, env, append(runes("9:5"), enter())...)
	if v != (Editor{Buffer: Todo}) || len(effs) != 1 {
		t.Fatalf("valid time rejected: %#v %#v", v, effs)
	}
	if at := effs[0].(AppendTask); at.Task.Time != "09:05" {
		t.Errorf("time = %q, want 09:05", at.Task.Time)
	}
}

func TestWizardRejectsTaskLineDescription(t *testing.T) {
	v := View(TaskWizard{Step: StepDescription, Title: "School run"})
	v, effs := feed(t, v, testEnv(), append(runes("- [ ] pack lunch first"), enter())...)
	w, ok := v.(TaskWizard)
	if !ok || w.Step != StepDescription || len(effs) != 0 {
		t.Fatalf("task-shaped description accepted: %#v %#v", v, effs)
	}

	w.Input = "pack lunch first"
	v, _ = feed(t, w, testEnv(), enter())
	if w, ok := v.(TaskWizard); !ok || w.Step != StepTime || w.Description != "pack lunch first" {
		t.Errorf("view = %#v, want time step", v)
	}
}

func TestWizardEscapeDiscards(t *testing.T) {
	for _, step := range []Step{StepTitle, StepDescription, StepTime} {
		v, effs := Transition(TaskWizard{Step: step, Input: "x", Title: "t"}, esc(), testEnv())
		if v != (Editor{Buffer: Todo}) || len(effs) != 0 {
			t.Errorf("escape at %v = %#v %#v", step, v, effs)
		}
	}
}

func TestNewTaskIgnoredInsideWizard(t *testing.T) {
	w := TaskWizard{Step: StepDescription, Title: "Keep", Input: "partial"}
	v, effs := Transition(w, Input{Kind: InNewTask}, testEnv())
	if v != w || len(effs) != 0 {
		t.Errorf("wizard reset: %#v", v)
	}
}

func TestNewTaskFromSearchClearsPattern(t *testing.T) {
	v, effs := Transition(Search{Return: Logs, Query: "err"}, Input{Kind: InNewTask}, testEnv())
	if v != (TaskWizard{Step: StepTitle}) {
		t.Errorf("view = %#v", v)
	}
	if len(effs) != 1 || effs[0] != (Find{Buffer: Logs}) {
		t.Errorf("effects = %#v, want clearing Find", effs)
	}
}

func TestQuitFromEveryView(t *testing.T) {
	views := []View{Editor{}, Actions{}, Search{}, InputPopup{}, TaskWizard{}}
	for _, v := range views {
		_, effs := Transition(v, Input{Kind: InQuit}, testEnv())
		if len(effs) != 1 || effs[0] != (Quit{}) {
			t.Errorf("%T quit effects = %#v", v, effs)
		}
	}
	if _, effs := Transition(Editor{Buffer: Todo}, esc(), testEnv()); len(effs) != 1 || effs[0] != (Quit{}) {
		t.Errorf("editor escape effects = %#v", effs)
	}
}

func TestEditorEdits(t *testing.T) {
	tests := []struct {
		in   Input
		want EditOp
	}{
		{Input{Kind: InRune, Rune: 'a'}, OpInsertRune},
		{enter(), OpNewline},
		{Input{Kind: InBackspace}, OpBackspace},
		{Input{Kind: InDeleteWord}, OpDeleteWord},
		{Input{Kind: InCopy}, OpCopy},
		{Input{Kind: InCut}, OpCut},
		{Input{Kind: InPaste}, OpPaste},
		{Input{Kind: InUndo}, OpUndo},
		{Input{Kind: InRedo}, OpRedo},
		{Input{Kind: InSelectAll}, OpSelectAll},
		{Input{Kind: InMove, Move: buffer.WordLeft}, OpMove},
		{Input{Kind: InSelect, Move: buffer.WordRight}, OpSelect},
	}
	for _, tt := range tests {
		v, effs := Transition(Editor{Buffer: Todo}, tt.in, testEnv())
		if v != (Editor{Buffer: Todo}) {
			t.Errorf("%v changed view to %#v", tt.in.Kind, v)
		}
		if len(effs) != 1 {
			t.Fatalf("%v effects = %#v", tt.in.Kind, effs)
		}
		e := effs[0].(Edit)
		if e.Op != tt.want || e.Buffer != Todo || e.Rune != tt.in.Rune || e.Move != tt.in.Move {
			t.Errorf("%v edit = %#v, want op %v", tt.in.Kind, e, tt.want)
		}
	}
}

func TestEditOpMutates(t *testing.T) {
	for _, op := range []EditOp{OpMove, OpSelect, OpSelectAll, OpCopy} {
		if op.Mutates() {
			t.Errorf("%v should not mutate", op)
		}
	}
	for _, op := range []EditOp{OpInsertRune, OpInsertText, OpNewline, OpBackspace, OpDelete, OpDeleteWord, OpCut, OpPaste, OpUndo, OpRedo} {
		if !op.Mutates() {
			t.Errorf("%v should mutate", op)
		}
	}
}

func TestEditorNavigation(t *testing.T) {
	env := testEnv()
	env.ActionCursor = 2
	if v, _ := Transition(Editor{Buffer: Logs}, Input{Kind: InTab}, env); v != (Actions{Selected: 2}) {
		t.Errorf("tab = %#v", v)
	}
	env.ActionCursor = 9
	if v, _ := Transition(Editor{}, Input{Kind: InTab}, env); v != (Actions{Selected: 0}) {
		t.Errorf("tab with stale cursor = %#v", v)
	}
	if v, _ := Transition(Editor{Buffer: Todo}, Input{Kind: InFind}, env); v != (Search{Return: Todo}) {
		t.Errorf("find = %#v", v)
	}
	if v, _ := Transition(Editor{}, Input{Kind: InSwitchBuffer, Buffer: Logs}, env); v != (Editor{Buffer: Logs}) {
		t.Errorf("switch = %#v", v)
	}
}

func TestSearchFlow(t *testing.T) {
	env := testEnv()
	v, effs := feed(t, Search{Return: Notes}, env, runes("ab")...)
	if v != (Search{Return: Notes, Query: "ab"}) {
		t.Fatalf("view = %#v", v)
	}
	want := []Effect{Find{Buffer: Notes, Query: "a"}, Find{Buffer: Notes, Query: "ab"}}
	if !reflect.DeepEqual(effs, want) {
		t.Errorf("effects = %#v", effs)
	}

	_, effs = Transition(v, enter(), env)
	if effs[0] != (Find{Buffer: Notes, Query: "ab", Advance: true}) {
		t.Errorf("enter = %#v", effs)
	}

	v, _ = Transition(v, Input{Kind: InBackspace}, env)
	if v != (Search{Return: Notes, Query: "a"}) {
		t.Errorf("backspace = %#v", v)
	}

	v, effs = Transition(v, esc(), env)
	if v != (Editor{Buffer: Notes}) || effs[0] != (Find{Buffer: Notes}) {
		t.Errorf("escape = %#v %#v", v, effs)
	}
}

func TestActionsWrap(t *testing.T) {
	env := testEnv()
	up := Input{Kind: InMove, Move: buffer.Up}
	down := Input{Kind: InMove, Move: buffer.Down}

	if v, _ := Transition(Actions{Selected: 0}, up, env); v != (Actions{Selected: 2}) {
		t.Errorf("up from top = %#v", v)
	}
	if v, _ := Transition(Actions{Selected: 2}, down, env); v != (Actions{Selected: 0}) {
		t.Errorf("down from bottom = %#v", v)
	}
	for _, in := range []Input{{Kind: InTab}, esc()} {
		if v, _ := Transition(Actions{Selected: 1}, in, env); v != (Editor{Buffer: Notes}) {
			t.Errorf("%v = %#v", in.Kind, v)
		}
	}
}

func TestActionsEmptyList(t *testing.T) {
	v, effs := feed(t, Actions{}, Env{}, Input{Kind: InMove, Move: buffer.Down}, enter())
	if v != (Actions{}) || len(effs) != 0 {
		t.Errorf("empty list = %#v %#v", v, effs)
	}
}

func TestActionsRun(t *testing.T) {
	env := testEnv()
	v, effs := Transition(Actions{Selected: 2}, enter(), env)
	if v != (Editor{Buffer: Logs}) {
		t.Errorf("view = %#v", v)
	}
	want := RunCommand{Index: 2, Args: []string{"-h"}}
	if len(effs) != 1 || !reflect.DeepEqual(effs[0], want) {
		t.Errorf("effects = %#v", effs)
	}
}

func TestPlaceholderCommandOpensPopup(t *testing.T) {
	env := testEnv()
	v, effs := Transition(Actions{Selected: 1}, enter(), env)
	if v != (InputPopup{Command: 1}) || len(effs) != 0 {
		t.Fatalf("enter on placeholder = %#v %#v", v, effs)
	}

	v, effs = feed(t, v, env, append(runes("10.0.0.1"), enter())...)
	if v != (Editor{Buffer: Logs}) {
		t.Errorf("view = %#v", v)
	}
	want := RunCommand{Index: 1, Args: []string{"-c", "1", "10.0.0.1"}, Input: "10.0.0.1"}
	if len(effs) != 1 || !reflect.DeepEqual(effs[0], want) {
		t.Errorf("effects = %#v", effs)
	}
	if env.Commands[1].Args[2] != config.InputPlaceholder {
		t.Error("command definition was mutated")
	}
}

func TestInputPopupEscape(t *testing.T) {
	v, effs := Transition(InputPopup{Command: 1, Input: "abc"}, esc(), testEnv())
	if v != (Actions{Selected: 1}) || len(effs) != 0 {
		t.Errorf("escape = %#v %#v", v, effs)
	}
}

func TestActiveBuffer(t *testing.T) {
	tests := []struct {
		v    View
		want BufferID
		ok   bool
	}{
		{Editor{Buffer: Logs}, Logs, true},
		{Search{Return: Todo}, Todo, true},
		{TaskWizard{}, Todo, true},
		{Actions{}, 0, false},
		{InputPopup{}, 0, false},
	}
	for _, tt := range tests {
		got, ok := ActiveBuffer(tt.v)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ActiveBuffer(%#v) = %v, %v", tt.v, got, ok)
		}
	}
}
