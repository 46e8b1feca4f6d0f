// Package cmd wires the checker's cobra commands. Command bodies write to an
// injected io.Writer so tests capture output directly.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/UCL-COMP0233-24-25/assignment-submission-checker/internal/config"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

// NewRootCommand creates and returns the root cobra command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submission-checker",
		Short: "Validate the structure of assignment submissions",
		Long: `submission-checker validates that a submission directory matches the
layout an assignment specification expects: compulsory and optional files,
data-file patterns, variable-named directories (such as candidate-number
folders), and clean git repositories where required.

Problems are reported in three sections: FATAL structural problems,
WARNINGs for missing required items, and INFORMATION about unexpected
ones.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "path to the configuration file")

	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewDescribeCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}

// loadConfigFromCmd resolves the configuration for a command invocation: the
// --config flag when given, the default location otherwise.
func loadConfigFromCmd(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.LoadConfig(path)
}
