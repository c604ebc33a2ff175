package main

import (
	"fmt"
	"os"

	"github.com/bookwright/bookwright/internal/catalog"
	"github.com/bookwright/bookwright/internal/client"
	"github.com/bookwright/bookwright/internal/config"
	"github.com/bookwright/bookwright/internal/logger"
	"github.com/bookwright/bookwright/internal/tui"
	"github.com/bookwright/bookwright/internal/wizard"
	"github.com/spf13/cobra"
)

var wizardFlags struct {
	server  string
	dataDir string
}

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Launch the interactive book creation wizard",
	Long: `Launch the full-screen book creation wizard.

The wizard connects to a bookwright server (start one with 'bookwright serve'),
walks through the nine definition steps and writes the finished book definition
as a YAML file into the data directory.`,
	RunE: runWizard,
}

func init() {
	wizardCmd.Flags().StringVarP(&wizardFlags.server, "server", "s", "", "Server URL (default: http://localhost:8055)")
	wizardCmd.Flags().StringVar(&wizardFlags.dataDir, "data-dir", "", "Directory for saved book definitions")
}

func runWizard(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyLoggerConfig(cfg)

	if wizardFlags.server != "" {
		cfg.ServerURL = wizardFlags.server
	}
	if wizardFlags.dataDir != "" {
		cfg.DataDir = wizardFlags.dataDir
	}

	backend := client.New(cfg.ServerURL)
	ctrl := wizard.New(backend, wizard.WithFallback(catalog.Fallback{}))

	path, err := tui.Run(cfg, ctrl)
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Printf("Book definition saved to %s\n", path)
	}
	return nil
}

// applyLoggerConfig applies level and file settings from the loaded config to
// the package default logger. Environment variables already took effect at
// init time, config values fill in the rest.
func applyLoggerConfig(cfg *config.Config) {
	if cfg.LogLevel != "" {
		if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
			logger.Default.SetLevel(level)
		}
	}
	if cfg.LogFile != "" {
		if f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			logger.Default.SetOutput(f)
		}
	}
}
