package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/tonhe/opsdeck/internal/config"
	"github.com/tonhe/opsdeck/internal/engine"
	"github.com/tonhe/opsdeck/internal/runner"
	"github.com/tonhe/opsdeck/internal/store"
	"github.com/tonhe/opsdeck/tui"
	"golang.org/x/term"
)

// Version is the release string shown by the header and `opsdeck version`.
const Version = "0.1.0"

const logFileName = "opsdeck.log"

// ErrNotTerminal is returned when the session is started without a TTY.
var ErrNotTerminal = errors.New("opsdeck needs an interactive terminal")

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configFile string
	dataDir    string
	theme      string
}

// environment is the resolved set of paths and preferences for one run.
type environment struct {
	settings     *config.Config
	settingsPath string
	dataDir      string
	configFile   string
}

// New builds the opsdeck command tree.
func New() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "opsdeck",
		Short:         "Terminal dashboard for notes, reminders, TCP health checks and admin commands.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(o)
		},
	}

	cmd.PersistentFlags().StringVar(&o.configFile, "config", "", "target/command JSON file (default <config dir>/config.json)")
	cmd.PersistentFlags().StringVar(&o.dataDir, "data-dir", "", "directory holding notes, todo and logs")
	cmd.PersistentFlags().StringVar(&o.theme, "theme", "", "color theme for this session")

	addProbe(cmd, o)
	addTasks(cmd, o)
	addConfig(cmd)
	addThemes(cmd)
	addVersion(cmd)
	return cmd
}

// load resolves settings.toml and the flag overrides. A broken settings file
// falls back to defaults.
func (o *rootOptions) load(stderr io.Writer) (*environment, error) {
	path, err := config.GetSettingsPath()
	if err != nil {
		return nil, fmt.Errorf("settings path: %w", err)
	}
	settings, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %s unreadable, using defaults: %v\n", path, err)
		settings = config.DefaultConfig()
	}
	if o.theme != "" {
		settings.Theme = o.theme
	}

	env := &environment{settings: settings, settingsPath: path}

	if o.dataDir != "" {
		env.dataDir, err = homedir.Expand(o.dataDir)
	} else {
		env.dataDir, err = settings.ResolveDataDir()
	}
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	if o.configFile != "" {
		env.configFile, err = homedir.Expand(o.configFile)
	} else {
		env.configFile, err = settings.ResolveConfigFile()
	}
	if err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	return env, nil
}

func runSession(o *rootOptions) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	env, err := o.load(os.Stderr)
	if err != nil {
		return err
	}
	if err := config.EnsureDirs(env.dataDir); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	logger, closeLog, err := openLog(filepath.Join(env.dataDir, logFileName), env.settings.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	appCfg := config.LoadAppConfigOrEmpty(env.configFile, logger)
	logger.Info("session starting",
		"data_dir", env.dataDir,
		"config", env.configFile,
		"targets", len(appCfg.Targets),
		"commands", len(appCfg.Commands),
	)

	bus := engine.NewBus()
	run, err := runner.New(bus, env.settings.CommandEncoding, logger)
	if err != nil {
		logger.Warn("falling back to UTF-8 command output", "encoding", env.settings.CommandEncoding, "err", err)
		run, _ = runner.New(bus, runner.DefaultEncoding, logger)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mon := engine.NewMonitor(appCfg.Targets, nil, bus, engine.NewTCPProber(), engine.NewDesktopNotifier(logger), logger)
	go mon.Run(ctx)
	go func() {
		err := config.Watch(ctx, env.configFile, func(c *config.AppConfig) {
			bus.Send(engine.ConfigReloadedEvent{Config: c})
		}, logger)
		if err != nil {
			logger.Warn("config hot reload disabled", "err", err)
		}
	}()

	model := tui.NewAppModel(tui.Options{
		Config:       env.settings,
		SettingsPath: env.settingsPath,
		Commands:     appCfg.Commands,
		Store:        store.Open(env.dataDir),
		Monitor:      mon,
		Runner:       run,
		Bus:          bus,
		Logger:       logger,
		Cancel:       cancel,
		Version:      Version,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("session ended")
	return nil
}

// openLog opens the session log file. The TUI owns stdout, so nothing is
// logged there.
func openLog(path, level string) (*slog.Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: parseLevel(level)}))
	return logger, func() { f.Close() }, nil
}

// parseLevel maps a settings log_level to a slog level, defaulting to info.
func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// discardLogger is used by the one-shot subcommands.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
