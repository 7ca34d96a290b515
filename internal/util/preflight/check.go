// Package preflight verifies the host meets the provisioner's preconditions:
// elevated privileges and the presence of the system tools the pipeline
// shells out to.
package preflight

import (
	"fmt"
	"strings"

	"github.com/imamik/hostforge/internal/platform/host"
)

// Tool represents a host binary the pipeline depends on.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string
}

// DefaultTools returns the tools the provisioning pipeline shells out to.
func DefaultTools() []Tool {
	return []Tool{
		{Name: "apt-get", Required: true, Description: "Installs system packages"},
		{Name: "dpkg", Required: true, Description: "Repairs interrupted package state"},
		{Name: "dpkg-query", Required: true, Description: "Queries the package database"},
		{Name: "systemctl", Required: true, Description: "Restarts and enables managed services"},
		{Name: "smbpasswd", Required: false, Description: "Sets the file-share password (installed with samba)"},
		{Name: "apache2ctl", Required: false, Description: "Validates web server configuration (installed with apache2)"},
		{Name: "named-checkconf", Required: false, Description: "Validates DNS configuration (installed with bind9)"},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, tool.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are resolvable on the system.
func Check(sys host.System, tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := sys.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// RequireRoot returns an error unless the process runs with effective UID 0.
// This is checked before the first prompt; violation aborts the whole run.
func RequireRoot(sys host.System) error {
	if uid := sys.EffectiveUID(); uid != 0 {
		return fmt.Errorf("must run with elevated privileges (effective UID %d, want 0)", uid)
	}
	return nil
}
