// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the hostforge CLI.
//
// The root command serves as the entry point and parent for all subcommands.
// It provides basic CLI metadata and organizes the command hierarchy.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hostforge",
		Short: "Provision DNS, web, database, and file-share services on a Debian host",
	}

	// Core commands
	cmd.AddCommand(Provision())
	cmd.AddCommand(Init())
	cmd.AddCommand(Doctor())

	// Services
	cmd.AddCommand(Relay())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
