package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bookwright/bookwright/internal/client"
	"github.com/bookwright/bookwright/internal/config"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the local bookwright setup",
	Long: `Check the local bookwright setup.

Verifies that configuration is readable, the data directory is writable,
the wizard server is reachable and an LLM API key is configured. Exits
non-zero when a required check fails.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("✗ config: %v\n", err)
		return fmt.Errorf("doctor found problems")
	}

	failed := false

	if config.Exists() {
		path := config.GlobalPath()
		if _, err := os.Stat(config.ProjectPath()); err == nil {
			path = config.ProjectPath()
		}
		fmt.Printf("✓ config file: %s\n", path)
	} else {
		fmt.Println("· config file: none (using defaults, run 'bookwright setup' to create one)")
	}

	if err := checkWritable(cfg.DataDir); err != nil {
		fmt.Printf("✗ data dir %s: %v\n", cfg.DataDir, err)
		failed = true
	} else {
		fmt.Printf("✓ data dir: %s\n", cfg.DataDir)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Second)
	defer cancel()
	c := client.New(cfg.ServerURL, client.WithTimeout(3*time.Second))
	if health, err := c.Health(ctx); err != nil {
		fmt.Printf("✗ server %s: unreachable (%v)\n", cfg.ServerURL, err)
		fmt.Println("  start one with 'bookwright serve'")
		failed = true
	} else {
		fmt.Printf("✓ server: %s (%s)\n", cfg.ServerURL, health.Status)
	}

	if cfg.LLMAPIKey != "" {
		fmt.Printf("✓ llm: %s\n", cfg.LLMModel)
	} else {
		fmt.Println("· llm: no API key, server falls back to static option ranking")
	}

	if failed {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Println("\nAll checks passed.")
	return nil
}

// checkWritable verifies the directory exists (creating it if needed) and
// accepts a test file.
func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return err
	}
	return os.Remove(probe)
}
