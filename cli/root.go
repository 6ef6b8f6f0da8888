// Package cli implements the splice command line interface: template
// generation with caching and watch mode, the function listing, an
// interactive evaluator and project configuration.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// errReported signals that a command already printed its own
// diagnostics and Execute should only set the exit code.
var errReported = errors.New("error already reported")

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// NewRootCommand builds the splice command tree.
func NewRootCommand() *cobra.Command {
	var (
		debug   bool
		noColor bool
		config  string
	)

	root := &cobra.Command{
		Use:           "splice",
		Short:         "Generate Go code from splice templates",
		Long:          "Splice rewrites identifiers inside code blocks from declarative alias\nspecifications, expanding loop clauses into one block per combination.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().StringVar(&config, "config", "", "Path to config file (default "+DefaultConfigFile+")")

	root.AddCommand(newGenCommand())
	root.AddCommand(newFuncsCommand())
	root.AddCommand(newReplCommand())
	root.AddCommand(newVersionCommand())
	return root
}

// rootFlags reads the persistent flags a subcommand needs.
func rootFlags(cmd *cobra.Command) (configPath string, noColor bool) {
	configPath, _ = cmd.Flags().GetString("config")
	noColor, _ = cmd.Flags().GetBool("no-color")
	return configPath, noColor
}
