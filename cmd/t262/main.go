package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"t262/internal/cli"
	"t262/internal/cli/commands"
	"t262/internal/config"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "t262",
		Short:         "Parallel conformance runner for a JavaScript parser and printer",
		Long:          `Runs the test262 corpus through an external parser/printer in parallel, checks each case against the expectation in its metadata, and verifies that printed and minified output reparses and reprints stably.`,
		Version:       version,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		// The report already explains conformance failures
		if !errors.Is(err, commands.ErrConformanceFailures) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
