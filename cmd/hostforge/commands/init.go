package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/hostforge/cmd/hostforge/handlers"
)

// Init returns the command for interactively creating an answers file.
//
// This command runs the same wizard as 'provision' but writes the collected
// inputs to a YAML file instead of provisioning, for later unattended runs.
//
// Flags:
//
//	--output, -o: Path to output file (default "hostforge.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create an answers file",
		Long: `Interactively create an answers file for unattended provisioning.

This command walks through the same questions as 'hostforge provision':

  - Server IP address
  - Domain name
  - MySQL root password
  - phpMyAdmin application password
  - File-share username and password

The answers are written to a YAML file that 'hostforge provision --answers'
can consume. The file contains passwords in plain text, so it is written
with owner-only permissions.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "hostforge.yaml", "Output file path")

	return cmd
}
