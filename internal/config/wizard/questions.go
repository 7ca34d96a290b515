package wizard

import (
	"context"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/imamik/hostforge/internal/config"
)

// fieldValidators indexes the shared validation table by field name so each
// prompt wires the exact same rule the answers-file loader applies.
var fieldValidators = func() map[string]func(string) error {
	m := make(map[string]func(string) error)
	for _, fv := range config.Validators() {
		m[fv.Name] = fv.Validate
	}
	return m
}()

// allowEmpty wraps a validator so empty input passes through to the default.
func allowEmpty(validate func(string) error) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return nil
		}
		return validate(value)
	}
}

// runNetworkGroup prompts for the server IP and domain.
func runNetworkGroup(ctx context.Context, req *config.Request) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Server IP Address").
				Description("Dotted-quad IPv4 address of this host").
				Placeholder("192.168.1.10").
				Value(&req.IPAddress).
				Validate(fieldValidators["ip_address"]),
			huh.NewInput().
				Title("Domain").
				Description("Domain the host will serve (empty for "+config.DefaultDomain+")").
				Placeholder(config.DefaultDomain).
				Value(&req.Domain).
				Validate(allowEmpty(fieldValidators["domain"])),
		).Title("Network"),
	).RunWithContext(ctx)
}

// runDatabaseGroup prompts for the MySQL and phpMyAdmin credentials.
func runDatabaseGroup(ctx context.Context, req *config.Request) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("MySQL Root Password").
				EchoMode(huh.EchoModePassword).
				Value(&req.MySQLRootPassword).
				Validate(fieldValidators["mysql_root_password"]),
			huh.NewInput().
				Title("phpMyAdmin Password").
				EchoMode(huh.EchoModePassword).
				Value(&req.PHPMyAdminPassword).
				Validate(fieldValidators["phpmyadmin_password"]),
		).Title("Database"),
	).RunWithContext(ctx)
}

// runFileShareGroup prompts for the Samba account.
func runFileShareGroup(ctx context.Context, req *config.Request) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Samba Username").
				Description("Account for the file share (empty for "+config.DefaultSambaUsername+")").
				Placeholder(config.DefaultSambaUsername).
				Value(&req.SambaUsername).
				Validate(allowEmpty(fieldValidators["samba_username"])),
			huh.NewInput().
				Title("Samba Password").
				EchoMode(huh.EchoModePassword).
				Value(&req.SambaPassword).
				Validate(fieldValidators["samba_password"]),
		).Title("File Share"),
	).RunWithContext(ctx)
}
