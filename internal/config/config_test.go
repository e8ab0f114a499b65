package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Theme != "solarized-dark" {
		t.Errorf("expected default theme 'solarized-dark', got %q", cfg.Theme)
	}
	if cfg.SaveDelay != 30*time.Second {
		t.Errorf("expected save delay 30s, got %v", cfg.SaveDelay)
	}
	if cfg.CommandEncoding != "UTF-8" {
		t.Errorf("expected UTF-8 command encoding, got %q", cfg.CommandEncoding)
	}
}

func TestConfigSaveLoad(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "settings.toml")

	cfg := DefaultConfig()
	cfg.Theme = "dracula"
	cfg.SaveDelay = 5 * time.Second
	cfg.CommandEncoding = "IBM866"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.Theme != "dracula" {
		t.Errorf("expected theme 'dracula', got %q", loaded.Theme)
	}
	if loaded.SaveDelay != 5*time.Second {
		t.Errorf("expected save delay 5s, got %v", loaded.SaveDelay)
	}
	if loaded.CommandEncoding != "IBM866" {
		t.Errorf("expected IBM866, got %q", loaded.CommandEncoding)
	}
}

func TestConfigLoadMissing(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/settings.toml")
	if err != nil {
		t.Fatalf("LoadConfig() should return defaults for missing file, got error: %v", err)
	}
	if cfg.Theme != "solarized-dark" {
		t.Errorf("expected default theme, got %q", cfg.Theme)
	}
}

func TestResolveDataDirExpandsHome(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "~/opsdeck-data"
	dir, err := cfg.ResolveDataDir()
	if err != nil {
		t.Fatalf("ResolveDataDir() error: %v", err)
	}
	if strings.HasPrefix(dir, "~") {
		t.Errorf("expected ~ to be expanded, got %q", dir)
	}
	if filepath.Base(dir) != "opsdeck-data" {
		t.Errorf("expected dir to end with 'opsdeck-data', got %q", dir)
	}
}

const testAppConfigJSON = `{
  "targets": [
    {"name": "gateway", "address": "10.0.0.1:22"},
    {"name": "web", "address": "example.org:443"}
  ],
  "commands": [
    {"name": "Ping host", "cmd": "ping", "args": ["-c", "1", "%INPUT%"]},
    {"name": "Uptime", "cmd": "uptime", "args": []}
  ]
}`

func TestLoadAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(testAppConfigJSON), 0644)

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig() error: %v", err)
	}
	if len(cfg.Targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(cfg.Targets))
	}
	if cfg.Targets[1].Address != "example.org:443" {
		t.Errorf("expected address 'example.org:443', got %q", cfg.Targets[1].Address)
	}
	if len(cfg.Commands) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cfg.Commands))
	}
	if !cfg.Commands[0].NeedsInput() {
		t.Error("expected first command to need input")
	}
	if cfg.Commands[1].NeedsInput() {
		t.Error("expected second command to not need input")
	}
}

func TestLoadAppConfigFallsBackToEmpty(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "config.json")
	os.WriteFile(bad, []byte("{ not json"), 0644)

	for _, path := range []string{bad, filepath.Join(dir, "missing.json")} {
		cfg := LoadAppConfigOrEmpty(path, discardLogger())
		if len(cfg.Targets) != 0 || len(cfg.Commands) != 0 {
			t.Errorf("%s: expected empty config, got %+v", path, cfg)
		}
	}
}

func TestExpandArgs(t *testing.T) {
	cmd := AdminCommand{Name: "trace", Cmd: "traceroute", Args: []string{"%INPUT%", "-m", "%INPUT%"}}
	got := cmd.ExpandArgs("10.1.1.1")
	want := []string{"10.1.1.1", "-m", "10.1.1.1"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arg %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if cmd.Args[0] != InputPlaceholder {
		t.Error("ExpandArgs must not modify the command")
	}
}
