package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
)

// Config holds the application preferences stored in settings.toml.
type Config struct {
	Theme           string        `toml:"theme"`
	DataDir         string        `toml:"data_dir"`
	ConfigFile      string        `toml:"config_file"`
	SaveDelay       time.Duration `toml:"-"`
	SaveDelayStr    string        `toml:"save_delay"`
	CommandEncoding string        `toml:"command_encoding"`
	LogLevel        string        `toml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:           "solarized-dark",
		SaveDelay:       30 * time.Second,
		SaveDelayStr:    "30s",
		CommandEncoding: "UTF-8",
		LogLevel:        "info",
	}
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.SaveDelayStr != "" {
		d, err := time.ParseDuration(cfg.SaveDelayStr)
		if err == nil && d > 0 {
			cfg.SaveDelay = d
		}
	}
	return cfg, nil
}

func SaveConfig(cfg *Config, path string) error {
	cfg.SaveDelayStr = cfg.SaveDelay.String()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// ResolveDataDir returns the directory holding the text buffers, expanding a
// leading ~ and falling back to the platform data directory.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return homedir.Expand(c.DataDir)
	}
	return GetDataDir()
}

// ResolveConfigFile returns the path of the target/command JSON file.
func (c *Config) ResolveConfigFile() (string, error) {
	if c.ConfigFile != "" {
		return homedir.Expand(c.ConfigFile)
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
