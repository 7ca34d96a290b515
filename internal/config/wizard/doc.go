// Package wizard provides the interactive prompt flow for hostforge.
//
// It uses charmbracelet/huh for form-based input collection, asking for the
// server IP, domain, and service credentials in a fixed order. Validators
// come from the shared table in internal/config so interactive and
// answers-file input obey identical rules.
//
// The main entry point is Run, which returns a validated config.Request.
package wizard
