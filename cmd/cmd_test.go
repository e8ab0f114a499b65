package cmd

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/tonhe/opsdeck/internal/config"
	"github.com/tonhe/opsdeck/internal/engine"
	"github.com/tonhe/opsdeck/internal/store"
	"github.com/tonhe/opsdeck/internal/tasks"
)

func init() {
	color.NoColor = true
}

func TestPrintProbe(t *testing.T) {
	targets := []config.Target{
		{Name: "gw", Address: "10.0.0.1:22"},
		{Name: "db", Address: "10.0.0.2:5432"},
	}
	results := []engine.ProbeResult{
		{Online: true, Latency: 12 * time.Millisecond},
		{},
	}
	var buf bytes.Buffer
	if err := printProbe(&buf, targets, results); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "up") || !strings.Contains(lines[1], "12ms") {
		t.Errorf("online row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "down") || !strings.Contains(lines[2], "---") {
		t.Errorf("offline row = %q", lines[2])
	}
}

func TestLoadTasksPrefersBuffer(t *testing.T) {
	st := store.Open(t.TempDir())
	if err := st.SaveTasks([]tasks.Task{{Title: "mirror"}}); err != nil {
		t.Fatal(err)
	}
	if err := st.SaveBuffer(store.TodoKey, "- [08:00] buffer\n"); err != nil {
		t.Fatal(err)
	}
	list, err := loadTasks(st)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Title != "buffer" {
		t.Errorf("list = %+v", list)
	}
}

func TestLoadTasksFallsBackToMirror(t *testing.T) {
	st := store.Open(t.TempDir())
	if err := st.SaveTasks([]tasks.Task{{Title: "mirror", Time: "07:00"}}); err != nil {
		t.Fatal(err)
	}
	list, err := loadTasks(st)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Title != "mirror" {
		t.Errorf("list = %+v", list)
	}
}

func TestPrintTasks(t *testing.T) {
	var buf bytes.Buffer
	err := printTasks(&buf, []tasks.Task{
		{Title: "Backup", Time: "02:00", Description: "nightly\nfull"},
		{Title: "Done", Completed: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"02:00", "Backup", "nightly / full", "--:--", "Done"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := printTasks(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "No tasks." {
		t.Errorf("empty output = %q", buf.String())
	}
}

func TestConfigSetTheme(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "settings.toml")

	if err := configSetTheme(path, "nord"); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "nord" {
		t.Errorf("theme = %q, want nord", cfg.Theme)
	}

	if err := configSetTheme(path, "no-such-theme"); err == nil {
		t.Error("expected an error for an unknown theme")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"chatty", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadAppliesFlagOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	dataDir := t.TempDir()
	o := &rootOptions{dataDir: dataDir, configFile: "/tmp/targets.json", theme: "dracula"}

	var stderr bytes.Buffer
	env, err := o.load(&stderr)
	if err != nil {
		t.Fatal(err)
	}
	if env.dataDir != dataDir {
		t.Errorf("dataDir = %q", env.dataDir)
	}
	if env.configFile != "/tmp/targets.json" {
		t.Errorf("configFile = %q", env.configFile)
	}
	if env.settings.Theme != "dracula" {
		t.Errorf("theme = %q", env.settings.Theme)
	}
}

func TestVersionCommand(t *testing.T) {
	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "opsdeck v"+Version {
		t.Errorf("version output = %q", out.String())
	}
}
