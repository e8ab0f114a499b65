// Package tasks converts between the free-form Todo text buffer and the
// structured task list used for reminders.
package tasks

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Task is a single todo entry. Time is "HH:MM" or empty.
type Task struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"`
	Completed   bool   `json:"completed"`
}

// HasTime reports whether the task carries a reminder time.
func (t Task) HasTime() bool {
	return t.Time != ""
}

// Clone returns an independent copy of list.
func Clone(list []Task) []Task {
	out := make([]Task, len(list))
	copy(out, list)
	return out
}

// IsValidTime accepts the empty string or H:M with hours < 24 and
// minutes < 60. Single digits are allowed, so "9:5" is valid.
func IsValidTime(input string) bool {
	_, _, ok := parseTime(input)
	return ok
}

// NormalizeTime returns a valid time in the zero-padded "HH:MM" form that
// reminders are matched against. Empty input stays empty.
func NormalizeTime(input string) (string, bool) {
	h, m, ok := parseTime(input)
	if !ok {
		return "", false
	}
	if strings.TrimSpace(input) == "" {
		return "", true
	}
	return fmt.Sprintf("%02d:%02d", h, m), true
}

func parseTime(input string) (h, m uint64, ok bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, 0, true
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	if h, ok = parseUnsigned(parts[0]); !ok {
		return 0, 0, false
	}
	if m, ok = parseUnsigned(parts[1]); !ok {
		return 0, 0, false
	}
	return h, m, h < 24 && m < 60
}

// parseUnsigned parses a plain decimal byte value; signs, spaces and
// anything else are rejected.
func parseUnsigned(s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Schedule returns up to limit pending tasks, timed ones first ordered by
// time, then untimed ones ordered by title. A limit <= 0 means no limit.
func Schedule(list []Task, limit int) []Task {
	var pending []Task
	for _, t := range list {
		if !t.Completed {
			pending = append(pending, t)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		a, b := pending[i], pending[j]
		switch {
		case a.HasTime() && b.HasTime():
			return a.Time < b.Time
		case a.HasTime():
			return true
		case b.HasTime():
			return false
		default:
			return a.Title < b.Title
		}
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending
}
