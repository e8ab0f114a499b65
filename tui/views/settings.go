package views

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/opsdeck/internal/config"
	"github.com/tonhe/opsdeck/internal/engine"
	"github.com/tonhe/opsdeck/internal/runner"
	"github.com/tonhe/opsdeck/tui/keys"
	"github.com/tonhe/opsdeck/tui/styles"
)

// SettingsAction tells the app what to do after a key reaches the settings
// screen.
type SettingsAction int

const (
	SettingsNone SettingsAction = iota
	SettingsClose
	// SettingsSaved means settings.toml was written and the config updated.
	SettingsSaved
)

type settingsRow int

const (
	rowTheme settingsRow = iota
	rowSaveDelay
	rowEncoding
	rowCount
)

var rowLabels = [rowCount]string{"Theme", "Autosave after", "Output encoding"}

// SettingsView edits settings.toml. The whole screen renders in the theme
// being chosen so the choice previews live.
type SettingsView struct {
	config *config.Config
	path   string

	slug   string
	row    settingsRow
	inputs [rowCount]textinput.Model

	width  int
	height int
	err    string
}

// NewSettingsView returns a settings screen seeded from cfg. Saving updates
// cfg in place and writes it to path.
func NewSettingsView(cfg *config.Config, path string) SettingsView {
	s := SettingsView{config: cfg, path: path, slug: cfg.Theme}
	if _, ok := styles.Lookup(s.slug); !ok {
		s.slug = styles.FallbackTheme
	}
	s.inputs[rowSaveDelay] = newSettingsInput(config.DefaultConfig().SaveDelay.String(), cfg.SaveDelay.String(), 16)
	s.inputs[rowEncoding] = newSettingsInput(runner.DefaultEncoding, cfg.CommandEncoding, 32)
	return s
}

func newSettingsInput(placeholder, value string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	in.SetValue(value)
	return in
}

// SetSize updates the available dimensions.
func (s *SettingsView) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *SettingsView) focus(row settingsRow) {
	s.row = (row + rowCount) % rowCount
	for r := range s.inputs {
		s.inputs[r].Blur()
	}
	if s.row != rowTheme {
		s.inputs[s.row].Focus()
	}
}

// Update handles one message while the settings screen is open.
func (s SettingsView) Update(msg tea.Msg) (SettingsView, tea.Cmd, SettingsAction) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil, SettingsNone
	}
	k := keys.DefaultKeyMap
	switch {
	case key.Matches(km, k.Escape):
		return s, nil, SettingsClose
	case key.Matches(km, k.Enter):
		return s.save()
	case key.Matches(km, k.Up), km.String() == "shift+tab":
		s.focus(s.row - 1)
	case key.Matches(km, k.Down), km.String() == "tab":
		s.focus(s.row + 1)
	case s.row == rowTheme:
		if key.Matches(km, k.Left) {
			s.slug = styles.Cycle(s.slug, -1)
		} else if key.Matches(km, k.Right) {
			s.slug = styles.Cycle(s.slug, 1)
		}
	default:
		var cmd tea.Cmd
		s.inputs[s.row], cmd = s.inputs[s.row].Update(km)
		return s, cmd, SettingsNone
	}
	return s, nil, SettingsNone
}

func (s SettingsView) save() (SettingsView, tea.Cmd, SettingsAction) {
	delay, encoding, err := s.values()
	if err == nil {
		err = config.EnsureDirs(filepath.Dir(s.path))
	}
	if err == nil {
		next := *s.config
		next.Theme = s.slug
		next.SaveDelay = delay
		next.CommandEncoding = encoding
		if err = config.SaveConfig(&next, s.path); err == nil {
			*s.config = next
		}
	}
	if err != nil {
		s.err = err.Error()
		return s, nil, SettingsNone
	}
	s.err = ""
	return s, nil, SettingsSaved
}

// values validates the text rows. Blank rows take their defaults.
func (s SettingsView) values() (time.Duration, string, error) {
	raw := strings.TrimSpace(s.inputs[rowSaveDelay].Value())
	if raw == "" {
		raw = s.inputs[rowSaveDelay].Placeholder
	}
	delay, err := time.ParseDuration(raw)
	if err != nil {
		return 0, "", fmt.Errorf("autosave delay: %w", err)
	}
	if delay < time.Second {
		return 0, "", errors.New("autosave delay must be at least 1s")
	}

	encoding := strings.TrimSpace(s.inputs[rowEncoding].Value())
	if encoding == "" {
		encoding = runner.DefaultEncoding
	}
	if _, err := runner.Lookup(encoding); err != nil {
		return 0, "", err
	}
	return delay, encoding, nil
}

// View renders the settings screen in the selected theme.
func (s SettingsView) View() string {
	theme := styles.Resolve(s.slug)
	sty := styles.NewStyles(theme)
	accent := lipgloss.NewStyle().Foreground(theme.Base0D).Bold(true)

	var b strings.Builder
	b.WriteString("\n  " + accent.Render("Settings") + "\n\n")
	if s.err != "" {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Base08).Render(s.err) + "\n\n")
	}
	for r := settingsRow(0); r < rowCount; r++ {
		marker, label := "  ", sty.FormLabel
		if r == s.row {
			marker, label = accent.Render("> "), accent
		}
		b.WriteString("  " + marker + label.Render(padRight(rowLabels[r]+":", 20)) + s.rowValue(r, theme) + "\n")
	}

	b.WriteString("\n" + indent(s.preview(theme), "  ") + "\n\n")

	hints := []string{"up/down", "move", "enter", "save", "esc", "cancel"}
	if s.row == rowTheme {
		hints = append([]string{"left/right", "theme"}, hints...)
	}
	b.WriteString("  " + hintLine(theme, hints...) + "\n")
	return b.String()
}

func (s SettingsView) rowValue(r settingsRow, theme styles.Theme) string {
	if r != rowTheme {
		return s.inputs[r].View()
	}
	text := fmt.Sprintf("< %s >  (%d/%d)", theme.Name, styles.Position(s.slug)+1, len(styles.Themes))
	return lipgloss.NewStyle().Foreground(theme.Base06).Render(text)
}

// preview renders the servers panel with sample targets.
func (s SettingsView) preview(theme styles.Theme) string {
	width := 60
	if s.width > 0 {
		width = min(width, s.width-4)
	}
	samples := previewStatuses()
	v := NewServersView(theme)
	v.SetStatuses(samples)
	v.SetSize(max(width, 30), len(samples)+3)
	return v.View()
}

func previewStatuses() []engine.ServerStatus {
	trend := func(base int64) []int64 {
		h := make([]int64, engine.HistorySize)
		for i := range h {
			h[i] = base + int64(i%5)*base/4
		}
		return h
	}
	down := make([]int64, engine.HistorySize)
	for i := range down {
		down[i] = engine.OfflineSample
	}
	return []engine.ServerStatus{
		{Name: "gateway", State: engine.StateOnline, Online: true, Latency: 3, History: trend(3)},
		{Name: "db-primary", State: engine.StateOffline, History: down},
		{Name: "web-edge", State: engine.StateOnline, Online: true, Latency: 180, History: trend(120)},
		{Name: "backup", State: engine.StateUnknown, History: make([]int64, engine.HistorySize)},
	}
}

func indent(block, prefix string) string {
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
