// ABOUTME: Config command for creating and locating the configuration file.
// ABOUTME: "config init" writes the defaults so they can be edited by hand.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/harper/notepad/internal/config"
	"github.com/harper/notepad/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long:  `Write the default recorder, log level and rendering settings to the config file. An existing file is kept unless --force is given.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolvedConfigPath()
		force, _ := cmd.Flags().GetBool("force")

		_, err := os.Stat(path)
		switch {
		case err == nil && !force:
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		case err != nil && !errors.Is(err, os.ErrNotExist):
			return fmt.Errorf("failed to check config: %w", err)
		}

		if err := config.Save(path, config.DefaultConfig()); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Wrote "+path))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), resolvedConfigPath())
	},
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.ConfigPath()
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
