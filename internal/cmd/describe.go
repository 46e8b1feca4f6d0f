package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UCL-COMP0233-24-25/assignment-submission-checker/internal/spec"
)

// NewDescribeCommand creates and returns the describe subcommand.
func NewDescribeCommand() *cobra.Command {
	var specPath string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the expected submission layout",
		Long: `Print the directory layout the assignment specification expects, as an
indented tree. Optional files are marked [opt]; variable-named directories
show their pattern.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigFromCmd(cmd)
			if err != nil {
				return err
			}
			path := specPath
			if path == "" {
				path = cfg.SpecPath
			}
			if path == "" {
				return fmt.Errorf("no specification document given: pass --spec or set spec_path in the config file")
			}

			assignment, err := spec.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, assignment.Name())
			fmt.Fprintln(out)
			fmt.Fprintln(out, assignment.Structure.String())
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&specPath, "spec", "s", "", "path to the specification document (overrides the config file)")

	return cmd
}
