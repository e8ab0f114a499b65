package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tonhe/opsdeck/internal/config"
	"github.com/tonhe/opsdeck/internal/tasks"
)

// targetState is the monitor-private record for one target.
type targetState struct {
	target  config.Target
	state   TargetState
	latency int64
	history *RingBuffer[int64]
}

// Monitor probes the configured targets once per tick, raises alerts on
// transitions and fires task reminders. It owns its working copies of the
// target and task lists; the foreground changes them only through Updates.
type Monitor struct {
	bus      *Bus
	updates  *Queue[Update]
	prober   Prober
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time

	targets    []*targetState
	tasks      []tasks.Task
	lastMinute string
}

// NewMonitor creates a Monitor publishing to bus.
func NewMonitor(targets []config.Target, taskList []tasks.Task, bus *Bus, prober Prober, notifier Notifier, logger *slog.Logger) *Monitor {
	m := &Monitor{
		bus:      bus,
		updates:  NewQueue[Update](),
		prober:   prober,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		tasks:    tasks.Clone(taskList),
	}
	m.setTargets(targets)
	return m
}

// SetClock replaces the monitor's time source.
func (m *Monitor) SetClock(now func() time.Time) {
	m.now = now
}

// UpdateTargets queues a replacement target list. Safe for concurrent use.
func (m *Monitor) UpdateTargets(targets []config.Target) {
	m.updates.Send(UpdateTargets{Targets: config.CloneTargets(targets)})
}

// UpdateTasks queues a replacement task snapshot. Safe for concurrent use.
func (m *Monitor) UpdateTasks(list []tasks.Task) {
	m.updates.Send(UpdateTasks{Tasks: tasks.Clone(list)})
}

// Run ticks every TickInterval until ctx is cancelled. The first cycle runs
// immediately.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	m.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Tick(ctx)
		}
	}
}

// Tick performs one monitor cycle and returns the published statuses. A
// cycle cut short by ctx records and publishes nothing.
func (m *Monitor) Tick(ctx context.Context) []ServerStatus {
	m.applyUpdates()

	list := make([]config.Target, len(m.targets))
	for i, ts := range m.targets {
		list[i] = ts.target
	}
	results, err := ProbeAll(ctx, m.prober, list)
	if err != nil {
		return m.Statuses()
	}

	now := m.now()
	for i, ts := range m.targets {
		m.record(ts, results[i], now)
	}

	statuses := m.Statuses()
	m.bus.Send(StatusEvent{Statuses: statuses})

	m.checkReminders(now)
	return statuses
}

// Statuses returns copies of every target's current status.
func (m *Monitor) Statuses() []ServerStatus {
	out := make([]ServerStatus, len(m.targets))
	for i, ts := range m.targets {
		out[i] = ServerStatus{
			Name:    ts.target.Name,
			Address: ts.target.Address,
			State:   ts.state,
			Online:  ts.state == StateOnline,
			Latency: ts.latency,
			History: ts.history.All(),
		}
	}
	return out
}

func (m *Monitor) applyUpdates() {
	var targets *UpdateTargets
	var taskSnap *UpdateTasks
	for _, u := range m.updates.Drain() {
		switch u := u.(type) {
		case UpdateTargets:
			targets = &u
		case UpdateTasks:
			taskSnap = &u
		}
	}
	if targets != nil {
		m.setTargets(targets.Targets)
		m.logger.Info("targets updated", "count", len(targets.Targets))
	}
	if taskSnap != nil {
		m.tasks = taskSnap.Tasks
	}
}

// setTargets installs a new target list. Entries whose name and address are
// unchanged keep their state and history.
func (m *Monitor) setTargets(targets []config.Target) {
	prev := make(map[config.Target]*targetState, len(m.targets))
	for _, ts := range m.targets {
		if _, dup := prev[ts.target]; !dup {
			prev[ts.target] = ts
		}
	}
	next := make([]*targetState, 0, len(targets))
	for _, t := range targets {
		if ts, ok := prev[t]; ok {
			next = append(next, ts)
			delete(prev, t)
			continue
		}
		next = append(next, &targetState{
			target:  t,
			history: NewFilledRingBuffer[int64](HistorySize, 0),
		})
	}
	m.targets = next
}

func (m *Monitor) record(ts *targetState, res ProbeResult, now time.Time) {
	wasOnline := ts.state != StateOffline

	if res.Online {
		ts.state = StateOnline
		ts.latency = res.Latency.Milliseconds()
		ts.history.Add(ts.latency)
	} else {
		ts.state = StateOffline
		ts.latency = 0
		ts.history.Add(OfflineSample)
	}

	stamp := now.Format("15:04:05")
	switch {
	case wasOnline && !res.Online:
		m.bus.Send(LogEvent{Text: fmt.Sprintf("[%s] ALERT: Server '%s' went OFFLINE!", stamp, ts.target.Name)})
		m.notifier.Alert("SERVER DOWN", fmt.Sprintf("Server '%s' stopped responding.", ts.target.Name))
		m.logger.Warn("target offline", "name", ts.target.Name, "address", ts.target.Address)
	case !wasOnline && res.Online:
		m.bus.Send(LogEvent{Text: fmt.Sprintf("[%s] INFO: Server '%s' is back ONLINE.", stamp, ts.target.Name)})
		m.logger.Info("target online", "name", ts.target.Name, "latency_ms", ts.latency)
	}
}

func (m *Monitor) checkReminders(now time.Time) {
	minute := now.Format("15:04")
	if minute == m.lastMinute {
		return
	}
	m.lastMinute = minute
	for _, t := range m.tasks {
		if t.Completed || t.Time == "" || t.Time != minute {
			continue
		}
		m.notifier.Notify("Reminder: "+t.Title, t.Description)
		m.bus.Send(TaskFiredEvent{Title: t.Title})
		m.logger.Info("reminder fired", "title", t.Title, "time", t.Time)
	}
}
