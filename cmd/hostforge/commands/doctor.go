package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/hostforge/cmd/hostforge/handlers"
)

// Doctor returns the command for checking host readiness.
//
// This command runs the provisioning preflight checks without changing
// anything: required tools on PATH and effective privileges.
func Doctor() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check host readiness for provisioning",
		Long: `Check whether this host is ready for provisioning.

Reports on the tools 'hostforge provision' depends on (apt-get, dpkg,
systemctl, ...) and whether you are running as root. Nothing is changed.

Examples:
  # Check readiness
  hostforge doctor`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context())
		},
	}
}
