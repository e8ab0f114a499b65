package config

import (
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error: %v", err)
	}
	if dir == "" {
		t.Fatal("GetConfigDir() returned empty string")
	}
	if filepath.Base(dir) != "opsdeck" {
		t.Errorf("expected dir to end with 'opsdeck', got %q", filepath.Base(dir))
	}
}

func TestGetConfigDirXDG(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG test not applicable on Windows")
	}
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error: %v", err)
	}
	expected := filepath.Join(tmp, "opsdeck")
	if dir != expected {
		t.Errorf("expected %q, got %q", expected, dir)
	}
}

func TestGetDataDir(t *testing.T) {
	dir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir() error: %v", err)
	}
	if filepath.Base(dir) != "opsdeck" {
		t.Errorf("expected dir to end with 'opsdeck', got %q", filepath.Base(dir))
	}
}

func TestSettingsPath(t *testing.T) {
	path, err := GetSettingsPath()
	if err != nil {
		t.Fatalf("GetSettingsPath() error: %v", err)
	}
	if filepath.Base(path) != "settings.toml" {
		t.Errorf("expected 'settings.toml', got %q", filepath.Base(path))
	}
}

func TestResolveConfigFileDefault(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG test not applicable on Windows")
	}
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	path, err := DefaultConfig().ResolveConfigFile()
	if err != nil {
		t.Fatalf("ResolveConfigFile() error: %v", err)
	}
	expected := filepath.Join(tmp, "opsdeck", "config.json")
	if path != expected {
		t.Errorf("expected %q, got %q", expected, path)
	}
}
