package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tonhe/opsdeck/internal/tasks"
)

func TestBufferRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)

	got, err := s.LoadBuffer(NotesKey)
	if err != nil {
		t.Fatalf("LoadBuffer missing: %v", err)
	}
	if got != "" {
		t.Errorf("missing buffer = %q, want empty", got)
	}

	text := "line one\nline two"
	if err := s.SaveBuffer(NotesKey, text); err != nil {
		t.Fatalf("SaveBuffer: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, NotesKey))
	if err != nil {
		t.Fatalf("file not written flat: %v", err)
	}
	if string(raw) != text {
		t.Errorf("on-disk = %q, want %q", raw, text)
	}

	// A fresh store must read from disk, not a cache.
	got, err = Open(dir).LoadBuffer(NotesKey)
	if err != nil {
		t.Fatal(err)
	}
	if got != text {
		t.Errorf("LoadBuffer = %q, want %q", got, text)
	}
}

func TestTasksMirror(t *testing.T) {
	s := Open(t.TempDir())

	list, err := s.LoadTasks()
	if err != nil || list != nil {
		t.Fatalf("LoadTasks missing = %v, %v", list, err)
	}

	want := []tasks.Task{
		{Title: "Backup", Time: "02:00", Description: "nightly"},
		{Title: "Done", Completed: true},
	}
	if err := s.SaveTasks(want); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadTasks()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("task %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoadTasksMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, TasksKey), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(dir).LoadTasks(); err == nil {
		t.Error("expected error for malformed mirror")
	}
}

func TestSeedTodo(t *testing.T) {
	got := SeedTodo([]tasks.Task{
		{Title: "A", Time: "09:00", Description: "x"},
		{Title: "B", Completed: true},
	})
	want := "- [09:00] A\n  x\n- [x] B\n  \n"
	if got != want {
		t.Errorf("SeedTodo = %q, want %q", got, want)
	}
	parsed := tasks.Parse(got)
	if len(parsed) != 2 || parsed[0].Title != "A" || !parsed[1].Completed {
		t.Errorf("seeded text parses to %+v", parsed)
	}
}

func TestDebouncer(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewDebouncer(30 * time.Second)

	if d.Due(start) {
		t.Fatal("due without activity")
	}
	d.Touch(start)
	if d.Due(start.Add(29 * time.Second)) {
		t.Error("due before delay elapsed")
	}
	d.Touch(start.Add(20 * time.Second))
	if d.Due(start.Add(45 * time.Second)) {
		t.Error("touch did not extend quiescence window")
	}
	if !d.Due(start.Add(50 * time.Second)) {
		t.Error("not due after quiescence")
	}
	if d.Due(start.Add(90 * time.Second)) {
		t.Error("fired twice for one burst")
	}
	d.Touch(start.Add(100 * time.Second))
	d.Reset()
	if d.Pending() || d.Due(start.Add(200*time.Second)) {
		t.Error("Reset did not clear pending save")
	}
}

func TestDebouncerMarkKeepsQuietPeriod(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewDebouncer(30 * time.Second)

	d.Touch(start)
	d.Due(start.Add(31 * time.Second))
	d.Mark()
	if !d.Due(start.Add(40 * time.Second)) {
		t.Error("mark after a quiet period should be due at once")
	}

	d.Touch(start.Add(60 * time.Second))
	d.Mark()
	if d.Due(start.Add(80 * time.Second)) {
		t.Error("mark must not cut the input quiet period short")
	}
	if !d.Due(start.Add(90 * time.Second)) {
		t.Error("not due once input has been quiet")
	}
}
