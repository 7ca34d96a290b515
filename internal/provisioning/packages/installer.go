// Package packages ensures the fixed list of system packages is present,
// retrying transient apt failures under an injected policy.
package packages

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/imamik/hostforge/internal/platform/host"
	"github.com/imamik/hostforge/internal/util/retry"
)

// Required is the fixed ordered package list for a full host.
var Required = []string{
	"bind9",
	"bind9utils",
	"apache2",
	"mysql-server",
	"php",
	"libapache2-mod-php",
	"php-mysql",
	"phpmyadmin",
	"samba",
}

// DefaultPolicy matches the historical behavior: 3 attempts, fixed 5 second
// delay, no backoff growth, no error differentiation.
var DefaultPolicy = retry.Fixed(3, 5*time.Second)

// Stale lock files cleared when the package index refresh fails. Relies on
// the package manager's own locking otherwise.
var aptLockFiles = []string{
	"/var/lib/dpkg/lock",
	"/var/lib/dpkg/lock-frontend",
	"/var/lib/apt/lists/lock",
}

// Installer drives apt/dpkg through the host capability.
type Installer struct {
	sys    host.System
	policy retry.Policy
}

// NewInstaller returns an Installer with the given retry policy.
func NewInstaller(sys host.System, policy retry.Policy) *Installer {
	return &Installer{sys: sys, policy: policy}
}

// EnsureAll installs every package in the list that is not already present.
// Retry exhaustion on any package is fatal for the whole run.
func (i *Installer) EnsureAll(ctx context.Context, names []string) error {
	i.refreshIndex(ctx)

	for _, name := range names {
		installed, err := i.isInstalled(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to query package %s: %w", name, err)
		}
		if installed {
			log.Printf("Package %s already installed, skipping", name)
			continue
		}

		if err := i.install(ctx, name); err != nil {
			return fmt.Errorf("failed to install package %s: %w", name, err)
		}
		log.Printf("Package %s installed", name)
	}

	return nil
}

// refreshIndex updates the package index, clearing stale locks and retrying
// once if the first update fails. Failures here are not fatal; the install
// attempts that follow surface the real problem.
func (i *Installer) refreshIndex(ctx context.Context) {
	if _, err := i.sys.Run(ctx, "apt-get", "update"); err == nil {
		return
	}

	log.Printf("Package index update failed, clearing stale locks and retrying")
	for _, lock := range aptLockFiles {
		if _, err := i.sys.Run(ctx, "rm", "-f", lock); err != nil {
			log.Printf("Warning: could not clear lock %s: %v", lock, err)
		}
	}

	if _, err := i.sys.Run(ctx, "apt-get", "update"); err != nil {
		log.Printf("Warning: package index update still failing: %v", err)
	}
}

// isInstalled queries the dpkg database for the package status.
func (i *Installer) isInstalled(ctx context.Context, name string) (bool, error) {
	out, err := i.sys.Run(ctx, "dpkg-query", "-W", "-f=${Status}", name)
	if err != nil {
		// dpkg-query exits nonzero for unknown packages; treat as absent.
		return false, nil
	}
	return strings.Contains(out, "install ok installed"), nil
}

// install repairs interrupted dpkg state, then attempts installation under
// the retry policy.
func (i *Installer) install(ctx context.Context, name string) error {
	if _, err := i.sys.Run(ctx, "dpkg", "--configure", "-a"); err != nil {
		log.Printf("Warning: dpkg repair step failed: %v", err)
	}

	return i.policy.Do(ctx, func() error {
		_, err := i.sys.Run(ctx, "apt-get", "install", "-y", name)
		return err
	})
}
