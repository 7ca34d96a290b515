// Package reconcile applies rendered configuration to the live system:
// filesystem normalization, the file-share account, web server modules, and
// service restarts. Individual failures here are warnings, never fatal; the
// installer's fatal policy does not extend past rendering.
package reconcile

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/imamik/hostforge/internal/config"
	"github.com/imamik/hostforge/internal/platform/host"
	"github.com/imamik/hostforge/internal/provisioning/render"
	"github.com/imamik/hostforge/internal/util/netutil"
)

// ManagedServices is the fixed list of services restarted and enabled after
// configuration is applied.
var ManagedServices = []string{"bind9", "apache2", "mysql", "smbd"}

// validationPorts maps post-restart probes to the service they verify.
var validationPorts = []struct {
	port    int
	service string
}{
	{53, "dns"},
	{80, "web"},
	{445, "file share"},
	{3306, "database"},
}

// Reconciler drives post-render system changes through the host capability.
type Reconciler struct {
	sys host.System

	// ProbeTimeout bounds each validation port probe.
	ProbeTimeout time.Duration
}

// NewReconciler returns a Reconciler over the given system.
func NewReconciler(sys host.System) *Reconciler {
	return &Reconciler{sys: sys, ProbeTimeout: netutil.DefaultProbeTimeout}
}

// Apply runs the full reconcile sequence and returns accumulated warnings.
// It never returns an error for individual service or validation failures.
func (r *Reconciler) Apply(ctx context.Context, req *config.Request) ([]string, error) {
	var warnings []string

	if err := r.normalizeDocumentRoot(ctx); err != nil {
		warnings = appendWarning(warnings, "document root normalization: %v", err)
	}

	if err := r.writeLandingPage(req); err != nil {
		warnings = appendWarning(warnings, "landing page: %v", err)
	}

	if err := r.createShareAccount(ctx, req); err != nil {
		warnings = appendWarning(warnings, "file-share account: %v", err)
	}

	warnings = append(warnings, r.enableWebSite(ctx, req)...)
	warnings = append(warnings, r.restartServices(ctx)...)

	return warnings, nil
}

// Validate runs the read-only post-apply checks. All failures are warnings.
func (r *Reconciler) Validate(ctx context.Context, req *config.Request) []string {
	var warnings []string

	if _, err := r.sys.Run(ctx, "apache2ctl", "configtest"); err != nil {
		warnings = appendWarning(warnings, "web config syntax check failed: %v", err)
	}
	if _, err := r.sys.Run(ctx, "named-checkconf"); err != nil {
		warnings = appendWarning(warnings, "DNS config syntax check failed: %v", err)
	}

	for _, probe := range validationPorts {
		if err := netutil.ProbePort(req.IPAddress, probe.port, r.ProbeTimeout); err != nil {
			warnings = appendWarning(warnings, "%s port probe failed: %v", probe.service, err)
		}
	}

	return warnings
}

// normalizeDocumentRoot hands the web root to the service account and opens
// read access: directories read/execute-for-others, files read-for-others.
func (r *Reconciler) normalizeDocumentRoot(ctx context.Context) error {
	if err := r.sys.MkdirAll(render.DocumentRoot, 0o755); err != nil {
		return err
	}
	steps := [][]string{
		{"chown", "-R", render.WebUser + ":" + render.WebUser, render.DocumentRoot},
		{"find", render.DocumentRoot, "-type", "d", "-exec", "chmod", "755", "{}", "+"},
		{"find", render.DocumentRoot, "-type", "f", "-exec", "chmod", "644", "{}", "+"},
	}
	for _, step := range steps {
		if _, err := r.sys.Run(ctx, step[0], step[1:]...); err != nil {
			return err
		}
	}
	return nil
}

// writeLandingPage creates the initial content page in the document root.
func (r *Reconciler) writeLandingPage(req *config.Request) error {
	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body>
<h1>Welcome to %s</h1>
<p>This server was provisioned by hostforge.</p>
</body>
</html>
`, req.Domain, req.Domain)
	return r.sys.WriteFile(render.DocumentRoot+"/index.html", []byte(page), 0o644)
}

// createShareAccount ensures the file-share OS account exists and sets both
// of its passwords.
func (r *Reconciler) createShareAccount(ctx context.Context, req *config.Request) error {
	if _, err := r.sys.Run(ctx, "id", req.SambaUsername); err != nil {
		if _, err := r.sys.Run(ctx, "useradd", "-M", "-s", "/usr/sbin/nologin", req.SambaUsername); err != nil {
			return fmt.Errorf("failed to create user %s: %w", req.SambaUsername, err)
		}
	}
	return r.setShareCredentials(ctx, req.SambaUsername, req.SambaPassword)
}

// setShareCredentials sets the OS account password and the stand-alone
// share-auth password from one secret. Both subsystems confirm-prompt, so
// the secret is written twice to each. Isolated here so the two stores can
// diverge later without touching call sites.
func (r *Reconciler) setShareCredentials(ctx context.Context, username, password string) error {
	systemInput := fmt.Sprintf("%s\n%s\n", password, password)
	if _, err := r.sys.RunInput(ctx, systemInput, "passwd", username); err != nil {
		return fmt.Errorf("failed to set system password for %s: %w", username, err)
	}

	shareInput := fmt.Sprintf("%s\n%s\n", password, password)
	if _, err := r.sys.RunInput(ctx, shareInput, "smbpasswd", "-a", "-s", username); err != nil {
		return fmt.Errorf("failed to set share password for %s: %w", username, err)
	}

	return nil
}

// enableWebSite enables required apache modules and swaps the default site
// for the provisioned one. Failures are warnings.
func (r *Reconciler) enableWebSite(ctx context.Context, req *config.Request) []string {
	var warnings []string
	steps := [][]string{
		{"a2enmod", "rewrite"},
		{"a2ensite", req.Domain + ".conf"},
		{"a2dissite", "000-default.conf"},
	}
	for _, step := range steps {
		if _, err := r.sys.Run(ctx, step[0], step[1:]...); err != nil {
			warnings = appendWarning(warnings, "%s failed: %v", step[0]+" "+step[1], err)
		}
	}
	return warnings
}

// restartServices restarts then enables each managed service. A failure for
// one service never prevents attempting the rest.
func (r *Reconciler) restartServices(ctx context.Context) []string {
	var warnings []string
	for _, svc := range ManagedServices {
		if _, err := r.sys.Run(ctx, "systemctl", "restart", svc); err != nil {
			warnings = appendWarning(warnings, "failed to restart %s: %v", svc, err)
		}
		if _, err := r.sys.Run(ctx, "systemctl", "enable", svc); err != nil {
			warnings = appendWarning(warnings, "failed to enable %s: %v", svc, err)
		}
	}
	return warnings
}

func appendWarning(warnings []string, format string, args ...any) []string {
	msg := fmt.Sprintf(format, args...)
	log.Printf("Warning: %s", msg)
	return append(warnings, msg)
}
