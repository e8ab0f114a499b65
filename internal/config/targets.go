package config

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"
)

// InputPlaceholder is the argument token replaced with text typed into the
// input popup before a command runs.
const InputPlaceholder = "%INPUT%"

// Target is a host:port endpoint probed by the monitor.
type Target struct {
	Name    string `mapstructure:"name" json:"name"`
	Address string `mapstructure:"address" json:"address"`
}

// AdminCommand is an external program the operator can launch from the
// actions list.
type AdminCommand struct {
	Name string   `mapstructure:"name" json:"name"`
	Cmd  string   `mapstructure:"cmd" json:"cmd"`
	Args []string `mapstructure:"args" json:"args"`
}

// NeedsInput reports whether any argument is the input placeholder.
func (c AdminCommand) NeedsInput() bool {
	for _, a := range c.Args {
		if a == InputPlaceholder {
			return true
		}
	}
	return false
}

// ExpandArgs returns a copy of the arguments with every placeholder argument
// replaced by input.
func (c AdminCommand) ExpandArgs(input string) []string {
	out := make([]string, len(c.Args))
	for i, a := range c.Args {
		if a == InputPlaceholder {
			out[i] = input
		} else {
			out[i] = a
		}
	}
	return out
}

// AppConfig is the target and command list read from config.json.
type AppConfig struct {
	Targets  []Target       `mapstructure:"targets" json:"targets"`
	Commands []AdminCommand `mapstructure:"commands" json:"commands"`
}

// EmptyAppConfig returns a config with no targets and no commands.
func EmptyAppConfig() *AppConfig {
	return &AppConfig{Targets: []Target{}, Commands: []AdminCommand{}}
}

// LoadAppConfig reads the JSON target/command file at path.
func LoadAppConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cfg := EmptyAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if cfg.Targets == nil {
		cfg.Targets = []Target{}
	}
	if cfg.Commands == nil {
		cfg.Commands = []AdminCommand{}
	}
	return cfg, nil
}

// LoadAppConfigOrEmpty is LoadAppConfig with a missing or malformed file
// replaced by an empty configuration.
func LoadAppConfigOrEmpty(path string, logger *slog.Logger) *AppConfig {
	cfg, err := LoadAppConfig(path)
	if err != nil {
		logger.Warn("using empty target/command config", "path", path, "err", err)
		return EmptyAppConfig()
	}
	return cfg
}

// CloneTargets returns an independent copy of targets.
func CloneTargets(targets []Target) []Target {
	out := make([]Target, len(targets))
	copy(out, targets)
	return out
}
