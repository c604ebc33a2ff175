package main

import (
	"context"
	"os"
	"strings"

	"github.com/bookwright/bookwright/internal/logger"
	"github.com/bookwright/bookwright/internal/tui/theme"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█▄▄ █▀█ █▀█ █▄▀ █ █ █ █▀█ █ █▀▀ █ █ ▀█▀"
	logoText2 = "█▄█ █▄█ █▄█ █ █ ▀▄▀▄▀ █▀▄ █ █▄█ █▀█  █ "
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bookwright",
	Short: "Guided book creation wizard with embedded persistence and TUI",
	RunE:  runWizard,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	// Set Long description with logo
	rootCmd.Long = renderLogo() + `

bookwright walks you through defining a book in nine guided steps, from the
initial concept to genre, audience, style, length, structure, world building
and content preferences. A companion server ranks the options for each step
and persists sessions via embedded NATS JetStream. Running bookwright with
no subcommand launches the interactive wizard.`

	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(setupCmd)
}
