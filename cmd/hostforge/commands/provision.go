package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/hostforge/cmd/hostforge/handlers"
)

// Provision returns the command for provisioning the host.
//
// This command handles the complete provisioning pass: collecting inputs,
// installing packages, rendering service configuration, and reconciling
// services. Must run as root.
//
// Optional flags:
//
//	--answers, -a: Path to a YAML answers file (default: interactive wizard)
//
// Environment variables:
//
//	HOSTFORGE_BACKUP_ENDPOINT: S3-compatible endpoint for off-site backup copies (optional)
func Provision() *cobra.Command {
	var answersPath string

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Provision DNS, web, database, and file-share services",
		Long: `Provision DNS, web, database, and file-share services on this host.

This command installs the required packages, regenerates service
configuration from your inputs, and restarts the managed services.
Existing configuration files are backed up before being replaced, so
re-running with the same inputs is safe.

If no answers file is given, an interactive wizard collects the inputs.
Use 'hostforge init' to create an answers file for unattended runs.

Examples:
  # Provision interactively
  sudo hostforge provision

  # Provision from an answers file
  sudo hostforge provision -a hostforge.yaml

  # Re-run after changing inputs
  sudo hostforge provision -a hostforge.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), answersPath)
		},
	}

	cmd.Flags().StringVarP(&answersPath, "answers", "a", "", "Path to answers file (default: interactive wizard)")

	return cmd
}
