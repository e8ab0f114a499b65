package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"github.com/tonhe/opsdeck/internal/config"
	"github.com/tonhe/opsdeck/tui/styles"
)

func addConfig(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the config, settings and data paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return configPath(cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "theme NAME",
		Short: "Set the default theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetSettingsPath()
			if err != nil {
				return err
			}
			if err := configSetTheme(path, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default theme set to %q.\n", args[0])
			return nil
		},
	})

	topLevel.AddCommand(cmd)
}

func configPath(w io.Writer) error {
	dir, err := config.GetConfigDir()
	if err != nil {
		return err
	}
	settingsPath, err := config.GetSettingsPath()
	if err != nil {
		return err
	}
	cfg := loadOrDefaultConfig(settingsPath)
	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return err
	}
	configFile, err := cfg.ResolveConfigFile()
	if err != nil {
		return err
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("config dir", dir)
	tbl.AddRow("settings", settingsPath)
	tbl.AddRow("targets", configFile)
	tbl.AddRow("data dir", dataDir)
	_, err = fmt.Fprintln(w, tbl)
	return err
}

// configSetTheme validates name and stores it in the settings file at path.
func configSetTheme(path, name string) error {
	if _, ok := styles.Lookup(name); !ok {
		return fmt.Errorf("unknown theme %q (run 'opsdeck themes' to list them)", name)
	}
	cfg := loadOrDefaultConfig(path)
	cfg.Theme = name
	return saveConfig(cfg, path)
}

func addThemes(topLevel *cobra.Command) {
	topLevel.AddCommand(&cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl := uitable.New()
			tbl.Separator = "  "
			bold := color.New(color.Bold).SprintFunc()
			tbl.AddRow(bold("SLUG"), bold("NAME"))
			for _, slug := range styles.Names() {
				t, _ := styles.Lookup(slug)
				tbl.AddRow(slug, t.Name)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return err
		},
	})
}

func addVersion(topLevel *cobra.Command) {
	topLevel.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "opsdeck v%s\n", Version)
		},
	})
}

// loadOrDefaultConfig loads the settings from disk, falling back to defaults.
func loadOrDefaultConfig(path string) *config.Config {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// saveConfig writes the settings to disk, creating directories as needed.
func saveConfig(cfg *config.Config, path string) error {
	if err := config.EnsureDirs(); err != nil {
		return fmt.Errorf("create config directories: %w", err)
	}
	if err := config.SaveConfig(cfg, path); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
