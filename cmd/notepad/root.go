// ABOUTME: Root command, global flags and shared setup.
// ABOUTME: Loads config, builds the logger and opens the session notebook.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/harper/notepad/internal/capture"
	"github.com/harper/notepad/internal/config"
	"github.com/harper/notepad/internal/logging"
	"github.com/harper/notepad/internal/notebook"
	"github.com/harper/notepad/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string

	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "notepad",
	Short: "Session notes with images and voice recordings",
	Long: `notepad keeps notes in memory for the lifetime of the process.
Each note has a title, a body, and optionally an image and a voice recording.
Use "notepad shell" for the interactive form or "notepad mcp" for AI agents.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if verbose {
			level = zerolog.LevelDebugValue
		}
		logger = logging.New(os.Stderr, level)
		return nil
	},
}

// Execute runs the root command and prints any error.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}

// openNotebook builds the notebook with the configured recorder.
func openNotebook() (*notebook.Notebook, error) {
	device := capture.NewCommandDevice(cfg.Recorder.Command, cfg.Recorder.MimeType)
	nb, err := notebook.Open(device, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open notebook: %w", err)
	}
	return nb, nil
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/notepad/config.yaml)")
}
