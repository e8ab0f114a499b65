package engine

import (
	"time"

	"github.com/tonhe/opsdeck/internal/config"
	"github.com/tonhe/opsdeck/internal/tasks"
)

const (
	// HistorySize is the number of latency samples kept per target.
	HistorySize = 20
	// OfflineSample is the history value recorded for a failed probe. It can
	// never be a real latency because probes time out well before it.
	OfflineSample int64 = 999
	// ProbeTimeout bounds a single TCP connect attempt.
	ProbeTimeout = 500 * time.Millisecond
	// TickInterval is the monitor's probe cadence.
	TickInterval = time.Second
)

// TargetState is the reachability of a target as of the last probe.
type TargetState int

const (
	StateUnknown TargetState = iota
	StateOnline
	StateOffline
)

func (s TargetState) String() string {
	switch s {
	case StateOnline:
		return "online"
	case StateOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// ServerStatus is a point-in-time copy of one target's probe state. History
// always holds exactly HistorySize samples, oldest first.
type ServerStatus struct {
	Name    string
	Address string
	State   TargetState
	Online  bool
	Latency int64 // ms, 0 when offline
	History []int64
}

// ProbeResult is the outcome of probing one target.
type ProbeResult struct {
	Online  bool
	Latency time.Duration
}

// Event is a message carried from background workers to the foreground on
// the event bus.
type Event interface {
	isEvent()
}

// StatusEvent carries the statuses of all targets after a probe cycle.
type StatusEvent struct {
	Statuses []ServerStatus
}

// LogEvent carries text to append to the Logs buffer.
type LogEvent struct {
	Text string
}

// TaskFiredEvent reports that a reminder fired for the task with Title.
type TaskFiredEvent struct {
	Title string
}

// ConfigReloadedEvent carries a freshly reloaded target/command file.
type ConfigReloadedEvent struct {
	Config *config.AppConfig
}

func (StatusEvent) isEvent()         {}
func (LogEvent) isEvent()            {}
func (TaskFiredEvent) isEvent()      {}
func (ConfigReloadedEvent) isEvent() {}

// Bus is the event channel into the foreground.
type Bus = Queue[Event]

// NewBus returns an empty event bus.
func NewBus() *Bus {
	return NewQueue[Event]()
}

// Update is a configuration message sent from the foreground to the monitor.
type Update interface {
	isUpdate()
}

// UpdateTargets replaces the monitored target list.
type UpdateTargets struct {
	Targets []config.Target
}

// UpdateTasks replaces the task snapshot used for reminders.
type UpdateTasks struct {
	Tasks []tasks.Task
}

func (UpdateTargets) isUpdate() {}
func (UpdateTasks) isUpdate()   {}
