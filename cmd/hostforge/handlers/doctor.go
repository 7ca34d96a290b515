package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/hostforge/internal/util/preflight"
)

// Doctor handles the doctor command.
//
// It reports the provisioning preflight checks without changing anything.
// Returns an error when a required tool is missing so automation can key
// off the exit code.
func Doctor(_ context.Context) error {
	sys := newSystem()

	fmt.Println()
	fmt.Println("hostforge doctor")
	fmt.Println("----------------")
	fmt.Println()

	if err := preflight.RequireRoot(sys); err != nil {
		fmt.Println("  Privileges: not running as root (provisioning will require sudo)")
	} else {
		fmt.Println("  Privileges: root")
	}
	fmt.Println()

	checks := preflight.Check(sys, preflight.DefaultTools())
	fmt.Println("  Tools")
	for _, result := range checks.Results {
		label := "optional"
		if result.Tool.Required {
			label = "required"
		}
		if result.Found {
			fmt.Printf("    ok       %-16s %s\n", result.Tool.Name, result.Path)
		} else {
			fmt.Printf("    missing  %-16s (%s) %s\n", result.Tool.Name, label, result.Tool.Description)
		}
	}
	fmt.Println()

	if err := checks.Error(); err != nil {
		return err
	}

	fmt.Println("  Host is ready. Run 'sudo hostforge provision' to provision.")
	fmt.Println()

	return nil
}
