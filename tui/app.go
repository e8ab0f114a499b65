package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/opsdeck/internal/buffer"
	"github.com/tonhe/opsdeck/internal/config"
	"github.com/tonhe/opsdeck/internal/engine"
	"github.com/tonhe/opsdeck/internal/runner"
	"github.com/tonhe/opsdeck/internal/store"
	"github.com/tonhe/opsdeck/internal/tasks"
	"github.com/tonhe/opsdeck/tui/components"
	"github.com/tonhe/opsdeck/tui/keys"
	"github.com/tonhe/opsdeck/tui/state"
	"github.com/tonhe/opsdeck/tui/styles"
	"github.com/tonhe/opsdeck/tui/views"
)

// TickInterval is how often the foreground drains the event bus.
const TickInterval = 100 * time.Millisecond

// LogSeparator follows every block of command output in the Logs buffer.
const LogSeparator = "\n--------------------------\n"

const (
	headerHeight   = 1
	statusHeight   = 2
	scheduleHeight = views.ScheduleLimit + 4
)

var bufferKeys = [state.BufferCount]string{store.NotesKey, store.TodoKey, store.LogsKey}

// TickMsg triggers a bus drain and the debounced save check.
type TickMsg time.Time

// Clipboard is the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard talks to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }
func (SystemClipboard) WriteAll(s string) error  { return clipboard.WriteAll(s) }

// Options carries everything the app model is wired to.
type Options struct {
	Config       *config.Config
	SettingsPath string
	Commands     []config.AdminCommand
	Store        *store.Store
	Monitor      *engine.Monitor
	Runner       *runner.Runner
	Bus          *engine.Bus
	Clipboard    Clipboard
	Logger       *slog.Logger
	// Cancel stops the background workers once the final save is done.
	Cancel  context.CancelFunc
	Version string
}

// AppModel is the root Bubble Tea model. It owns the three buffers and the
// view state, applies effects and folds bus events into the screen.
type AppModel struct {
	theme        styles.Theme
	config       *config.Config
	settingsPath string
	version      string

	view         state.View
	commands     []config.AdminCommand
	actionCursor int

	buffers     [state.BufferCount]*buffer.Buffer
	dirty       [state.BufferCount]bool
	todoChanged bool
	pattern     string
	taskList    []tasks.Task
	statuses    []engine.ServerStatus

	servers      views.ServersView
	schedule     views.ScheduleView
	editor       views.EditorView
	actions      views.ActionsView
	help         views.HelpView
	settings     views.SettingsView
	settingsOpen bool

	store   *store.Store
	saver   *store.Debouncer
	monitor *engine.Monitor
	runner  *runner.Runner
	bus     *engine.Bus
	clip    Clipboard
	logger  *slog.Logger
	cancel  context.CancelFunc
	now     func() time.Time

	width   int
	height  int
	message string
}

// NewAppModel loads the buffers from the store and returns the model. An
// empty Todo buffer is seeded from the tasks.json mirror.
func NewAppModel(opts Options) AppModel {
	theme := styles.Resolve(opts.Config.Theme)
	clip := opts.Clipboard
	if clip == nil {
		clip = SystemClipboard{}
	}
	cancel := opts.Cancel
	if cancel == nil {
		cancel = func() {}
	}

	m := AppModel{
		theme:        theme,
		config:       opts.Config,
		settingsPath: opts.SettingsPath,
		version:      opts.Version,
		view:         state.Editor{Buffer: state.Notes},
		commands:     opts.Commands,
		store:        opts.Store,
		saver:        store.NewDebouncer(opts.Config.SaveDelay),
		monitor:      opts.Monitor,
		runner:       opts.Runner,
		bus:          opts.Bus,
		clip:         clip,
		logger:       opts.Logger,
		cancel:       cancel,
		now:          time.Now,
		message:      "Ready",
	}
	m.buildViews()

	for id := range m.buffers {
		text, err := m.store.LoadBuffer(bufferKeys[id])
		if err != nil {
			m.logger.Warn("load buffer failed", "buffer", state.BufferID(id).String(), "err", err)
		}
		m.buffers[id] = buffer.New(text)
	}
	if m.buffers[state.Todo].Text() == "" {
		mirror, err := m.store.LoadTasks()
		if err != nil {
			m.logger.Warn("load tasks mirror failed", "err", err)
		}
		if len(mirror) > 0 {
			m.buffers[state.Todo].SetText(store.SeedTodo(mirror))
		}
	}
	m.deriveTasks()
	return m
}

func (m *AppModel) buildViews() {
	m.servers = views.NewServersView(m.theme)
	m.servers.SetStatuses(m.statuses)
	m.schedule = views.NewScheduleView(m.theme)
	m.schedule.SetTasks(m.taskList)
	m.editor = views.NewEditorView(m.theme)
	m.actions = views.NewActionsView(m.theme)
	m.help = views.NewHelpView(m.theme)
	m.resize()
}

// Init returns the initial command to start the tick loop.
func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update handles messages and dispatches to the active view.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case TickMsg:
		m.drainEvents()
		m.syncTasks()
		m.autosave(time.Time(msg))
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := keys.DefaultKeyMap
	m.saver.Touch(m.now())

	if m.settingsOpen {
		var cmd tea.Cmd
		var action views.SettingsAction
		m.settings, cmd, action = m.settings.Update(msg)
		switch action {
		case views.SettingsClose:
			m.settingsOpen = false
		case views.SettingsSaved:
			m.settingsOpen = false
			m.applySettings()
		}
		return m, cmd
	}

	if m.help.IsVisible() {
		if key.Matches(msg, km.Help) || key.Matches(msg, km.Escape) {
			m.help.Toggle()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, km.Help):
		m.help.Toggle()
		return m, nil
	case key.Matches(msg, km.Settings):
		if _, ok := m.view.(state.Editor); ok {
			m.settings = views.NewSettingsView(m.config, m.settingsPath)
			m.settings.SetSize(m.width, m.bodyHeight())
			m.settingsOpen = true
		}
		return m, nil
	}

	for _, in := range keys.Translate(msg) {
		next, effects := state.Transition(m.view, in, m.env())
		m.view = next
		if a, ok := next.(state.Actions); ok {
			m.actionCursor = a.Selected
		}
		for _, eff := range effects {
			if m.apply(eff) {
				return m, tea.Quit
			}
		}
	}
	m.syncTasks()
	return m, nil
}

func (m *AppModel) env() state.Env {
	return state.Env{Commands: m.commands, ActionCursor: m.actionCursor}
}

// apply performs one effect and reports whether the session should end.
func (m *AppModel) apply(eff state.Effect) bool {
	switch e := eff.(type) {
	case state.Quit:
		m.shutdown()
		return true
	case state.Edit:
		m.applyEdit(e)
	case state.Find:
		m.pattern = e.Query
		if e.Query != "" {
			b := m.buffers[e.Buffer]
			if !b.SearchForward(e.Query, !e.Advance) {
				m.message = "Not found: " + e.Query
			} else {
				m.message = ""
			}
			m.editor.Follow(e.Buffer, b)
		}
	case state.RunCommand:
		m.runCommand(e)
	case state.AppendTask:
		b := m.buffers[state.Todo]
		b.AppendText(tasks.Render(e.Task))
		m.editor.Follow(state.Todo, b)
		m.markDirty(state.Todo)
		m.message = "Task added: " + e.Task.Title
	}
	return false
}

func (m *AppModel) applyEdit(e state.Edit) {
	b := m.buffers[e.Buffer]
	changed := true
	switch e.Op {
	case state.OpInsertRune:
		b.InsertRune(e.Rune)
	case state.OpInsertText:
		b.InsertString(e.Text)
	case state.OpNewline:
		b.InsertNewline()
	case state.OpBackspace:
		changed = b.Backspace()
	case state.OpDelete:
		changed = b.Delete()
	case state.OpDeleteWord:
		changed = b.DeleteWord()
	case state.OpMove:
		b.MoveCursor(e.Move)
	case state.OpSelect:
		b.SelectMove(e.Move)
	case state.OpSelectAll:
		b.SelectAll()
	case state.OpCopy:
		if text := b.Copy(); text != "" {
			m.writeClipboard(text)
		}
	case state.OpCut:
		text := b.Cut()
		changed = text != ""
		if changed {
			m.writeClipboard(text)
		}
	case state.OpPaste:
		text, err := m.clip.ReadAll()
		if err != nil {
			m.logger.Debug("clipboard read failed", "err", err)
			text = ""
		}
		changed = b.Paste(text)
	case state.OpUndo:
		changed = b.Undo()
	case state.OpRedo:
		changed = b.Redo()
	}
	if e.Op.Mutates() && changed {
		m.markDirty(e.Buffer)
	}
	m.editor.Follow(e.Buffer, b)
}

func (m *AppModel) writeClipboard(text string) {
	if err := m.clip.WriteAll(text); err != nil {
		m.logger.Debug("clipboard write failed", "err", err)
	}
}

func (m *AppModel) runCommand(e state.RunCommand) {
	if e.Index < 0 || e.Index >= len(m.commands) {
		return
	}
	cmd := m.commands[e.Index]
	logs := m.buffers[state.Logs]
	logs.AppendText(runner.Banner(cmd.Name, e.Input))
	m.editor.Follow(state.Logs, logs)
	m.markDirty(state.Logs)
	id := m.runner.Start(cmd.Name, cmd.Cmd, e.Args)
	m.message = "Running " + cmd.Name + " (" + id + ")"
}

func (m *AppModel) markDirty(id state.BufferID) {
	m.dirty[id] = true
	if id == state.Todo {
		m.todoChanged = true
	}
	m.saver.Mark()
}

// drainEvents folds every pending bus event into the model.
func (m *AppModel) drainEvents() {
	for _, evt := range m.bus.Drain() {
		switch e := evt.(type) {
		case engine.StatusEvent:
			m.statuses = e.Statuses
			m.servers.SetStatuses(e.Statuses)
		case engine.LogEvent:
			logs := m.buffers[state.Logs]
			logs.AppendText(e.Text + LogSeparator)
			m.editor.Follow(state.Logs, logs)
			m.markDirty(state.Logs)
		case engine.TaskFiredEvent:
			todo := m.buffers[state.Todo]
			if i, line, ok := tasks.MarkCompleted(todo.Lines(), e.Title); ok {
				todo.ReplaceLine(i, line)
				m.markDirty(state.Todo)
			}
			m.message = "Reminder: " + e.Title
		case engine.ConfigReloadedEvent:
			m.monitor.UpdateTargets(e.Config.Targets)
			m.message = "Targets reloaded"
		}
	}
}

// syncTasks re-derives the task list after the Todo text changed and pushes
// it to the monitor.
func (m *AppModel) syncTasks() {
	if !m.todoChanged {
		return
	}
	m.deriveTasks()
}

func (m *AppModel) deriveTasks() {
	m.todoChanged = false
	m.taskList = tasks.Parse(m.buffers[state.Todo].Text())
	m.schedule.SetTasks(m.taskList)
	m.monitor.UpdateTasks(m.taskList)
}

func (m *AppModel) autosave(now time.Time) {
	if m.saver.Due(now) {
		m.saveDirty()
	}
}

// saveDirty writes every dirty buffer. Failed writes stay dirty and are
// retried after the next quiet period.
func (m *AppModel) saveDirty() {
	for id := range m.buffers {
		if !m.dirty[id] {
			continue
		}
		if err := m.store.SaveBuffer(bufferKeys[id], m.buffers[id].Text()); err != nil {
			m.logger.Error("save buffer failed", "buffer", state.BufferID(id).String(), "err", err)
			m.saver.Touch(m.now())
			continue
		}
		m.dirty[id] = false
		if state.BufferID(id) == state.Todo {
			if err := m.store.SaveTasks(m.taskList); err != nil {
				m.logger.Warn("save tasks mirror failed", "err", err)
			}
		}
	}
}

// shutdown saves all buffers unconditionally and stops the workers.
func (m *AppModel) shutdown() {
	m.syncTasks()
	for id := range m.dirty {
		m.dirty[id] = true
	}
	m.saveDirty()
	m.saver.Reset()
	m.cancel()
}

func (m *AppModel) applySettings() {
	if t, ok := styles.Lookup(m.config.Theme); ok {
		m.theme = t
		m.buildViews()
		for id, b := range m.buffers {
			m.editor.Follow(state.BufferID(id), b)
		}
	}
	pending := m.saver.Pending()
	m.saver = store.NewDebouncer(m.config.SaveDelay)
	if pending {
		m.saver.Touch(m.now())
	}
	if r, err := runner.New(m.bus, m.config.CommandEncoding, m.logger); err == nil {
		m.runner = r
	} else {
		m.logger.Warn("command encoding rejected", "encoding", m.config.CommandEncoding, "err", err)
	}
	m.message = "Settings saved"
}

func (m AppModel) bodyHeight() int {
	return max(m.height-headerHeight-statusHeight, 1)
}

func (m AppModel) leftWidth() int {
	return m.width * 45 / 100
}

func (m *AppModel) resize() {
	bodyH := m.bodyHeight()
	lw := m.leftWidth()
	rw := m.width - lw

	schedH := min(scheduleHeight, bodyH/2)
	m.servers.SetSize(lw, bodyH-schedH)
	m.schedule.SetSize(lw, schedH)
	m.editor.SetSize(rw, bodyH-1)
	m.actions.SetSize(rw, bodyH-1)
	m.help.SetSize(m.width, bodyH)
	m.settings.SetSize(m.width, bodyH)
}

// View renders the full application UI by composing header, body, and status.
func (m AppModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	online, total := m.servers.Counts()
	header := components.RenderHeader(m.theme, online, total, m.schedule.Pending(), m.now(), m.width, m.version)

	bodyH := m.bodyHeight()
	var body string
	switch v := m.view.(type) {
	case state.InputPopup:
		body = views.InputPopup(m.theme, m.commandName(v.Command), v.Input, m.width, bodyH)
	case state.TaskWizard:
		body = views.Wizard(m.theme, v, m.width, bodyH)
	default:
		body = m.renderPanes()
	}
	if m.settingsOpen {
		body = m.settings.View()
	} else if m.help.IsVisible() {
		body = m.help.View()
	}

	statusBar := components.RenderStatusBar(m.theme, m.message, m.hints(), m.width)

	bodyStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(bodyH).
		MaxHeight(bodyH).
		Background(m.theme.Base00).
		Foreground(m.theme.Base05)

	return lipgloss.JoinVertical(lipgloss.Left, header, bodyStyle.Render(body), statusBar)
}

func (m AppModel) renderPanes() string {
	left := lipgloss.JoinVertical(lipgloss.Left, m.servers.View(), m.schedule.View())

	rw := m.width - m.leftWidth()
	active, hasActive := state.ActiveBuffer(m.view)
	actions, actionsOpen := m.view.(state.Actions)
	tabs := views.RenderTabs(m.theme, active, hasActive, actionsOpen, rw)

	var main string
	switch {
	case actionsOpen:
		main = m.actions.View(m.commands, actions.Selected)
	default:
		editor := m.editor
		search, searching := m.view.(state.Search)
		if searching {
			editor.SetSize(rw, m.bodyHeight()-2)
		}
		main = editor.View(active, m.buffers[active], m.pattern, true)
		if searching {
			main = lipgloss.JoinVertical(lipgloss.Left, main, views.SearchBar(m.theme, search.Query, rw))
		}
	}
	right := lipgloss.JoinVertical(lipgloss.Left, tabs, main)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m AppModel) commandName(i int) string {
	if i < 0 || i >= len(m.commands) {
		return ""
	}
	return m.commands[i].Name
}

func (m AppModel) hints() []components.Hint {
	switch m.view.(type) {
	case state.Actions:
		return hints("up/down", "select", "enter", "run", "tab", "back", "f1", "help")
	case state.Search:
		return hints("enter", "next", "esc", "close")
	case state.InputPopup:
		return hints("enter", "run", "esc", "back")
	case state.TaskWizard:
		return hints("enter", "next", "esc", "cancel")
	default:
		return hints("alt+1/2/3", "buffer", "tab", "actions", "ctrl+f", "search",
			"alt+t", "task", "f1", "help", "f2", "settings", "ctrl+q", "quit")
	}
}

func hints(pairs ...string) []components.Hint {
	out := make([]components.Hint, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, components.Hint{Key: pairs[i], Desc: pairs[i+1]})
	}
	return out
}
