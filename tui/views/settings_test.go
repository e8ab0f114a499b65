package views

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tonhe/opsdeck/internal/config"
	"github.com/tonhe/opsdeck/tui/styles"
)

func newTestSettings(t *testing.T) (SettingsView, *config.Config, string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	cfg := config.DefaultConfig()
	path := filepath.Join(t.TempDir(), "conf", "settings.toml")
	return NewSettingsView(cfg, path), cfg, path
}

func press(s SettingsView, msgs ...tea.KeyMsg) (SettingsView, SettingsAction) {
	var action SettingsAction
	for _, m := range msgs {
		s, _, action = s.Update(m)
	}
	return s, action
}

func keyOf(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func TestSettingsCyclesThemeAndSaves(t *testing.T) {
	s, cfg, path := newTestSettings(t)
	s, action := press(s, keyOf(tea.KeyRight), keyOf(tea.KeyEnter))
	if action != SettingsSaved {
		t.Fatalf("action = %v, want saved (err %q)", action, s.err)
	}
	want := styles.Cycle("solarized-dark", 1)
	if cfg.Theme != want {
		t.Errorf("theme = %q, want %q", cfg.Theme, want)
	}
	onDisk, err := config.LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if onDisk.Theme != want || onDisk.SaveDelay != 30*time.Second {
		t.Errorf("saved config = %+v", onDisk)
	}
}

func TestSettingsRejectsShortDelay(t *testing.T) {
	s, cfg, _ := newTestSettings(t)
	s, _ = press(s, keyOf(tea.KeyDown))
	s.inputs[rowSaveDelay].SetValue("500ms")
	s, action := press(s, keyOf(tea.KeyEnter))
	if action != SettingsNone || !strings.Contains(s.err, "at least 1s") {
		t.Errorf("action = %v err = %q", action, s.err)
	}
	if cfg.SaveDelay != 30*time.Second {
		t.Errorf("config changed on a failed save: %v", cfg.SaveDelay)
	}
}

func TestSettingsRejectsUnknownEncoding(t *testing.T) {
	s, cfg, _ := newTestSettings(t)
	s.inputs[rowEncoding].SetValue("no-such-charset")
	s, action := press(s, keyOf(tea.KeyEnter))
	if action != SettingsNone || s.err == "" {
		t.Errorf("action = %v err = %q", action, s.err)
	}
	if cfg.CommandEncoding != "UTF-8" {
		t.Errorf("encoding = %q", cfg.CommandEncoding)
	}
}

func TestSettingsRowsWrap(t *testing.T) {
	s, _, _ := newTestSettings(t)
	s, _ = press(s, keyOf(tea.KeyUp))
	if s.row != rowEncoding || !s.inputs[rowEncoding].Focused() {
		t.Errorf("row = %d, want the last row focused", s.row)
	}
	s, _ = press(s, keyOf(tea.KeyTab))
	if s.row != rowTheme || s.inputs[rowEncoding].Focused() {
		t.Errorf("row = %d, want theme", s.row)
	}
	if _, action := press(s, keyOf(tea.KeyEsc)); action != SettingsClose {
		t.Errorf("esc action = %v", action)
	}
}

func TestSettingsViewPreviewsTheme(t *testing.T) {
	s, _, _ := newTestSettings(t)
	s.SetSize(100, 40)
	out := s.View()
	for _, want := range []string{"Settings", "Solarized Dark", "gateway", "db-primary", "Autosave after"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
