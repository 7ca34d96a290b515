// Package orchestration wires the provisioning stages into the forward-only
// pipeline: Install -> Render -> Reconcile -> Validate. There is no rollback
// path; backups of overwritten files exist but are never auto-restored.
package orchestration

import (
	"context"
	"log"
	"time"

	"github.com/imamik/hostforge/internal/config"
	"github.com/imamik/hostforge/internal/platform/host"
	"github.com/imamik/hostforge/internal/provisioning/packages"
	"github.com/imamik/hostforge/internal/provisioning/reconcile"
	"github.com/imamik/hostforge/internal/provisioning/render"
)

// BackupUploader stores pre-overwrite copies off-site. Optional.
type BackupUploader interface {
	EnsureBucket(ctx context.Context) error
	UploadBackup(ctx context.Context, localPath string, data []byte) error
}

// Result carries the artifacts of one pipeline run.
type Result struct {
	Set      *render.Set
	Backups  []string
	Warnings []string
}

// Pipeline runs a full provisioning pass against one host.
type Pipeline struct {
	sys host.System

	// Installer and Reconciler are replaceable for tests.
	Installer  *packages.Installer
	Reconciler *reconcile.Reconciler

	// Uploader is optional; nil disables off-site backup copies.
	Uploader BackupUploader

	// Now is injectable for deterministic serials in tests.
	Now func() time.Time
}

// New builds a Pipeline with the default installer retry policy.
func New(sys host.System) *Pipeline {
	return &Pipeline{
		sys:        sys,
		Installer:  packages.NewInstaller(sys, packages.DefaultPolicy),
		Reconciler: reconcile.NewReconciler(sys),
		Now:        time.Now,
	}
}

// Run executes the pipeline. Errors from the install and render stages are
// fatal; everything after rendering downgrades to warnings in the result.
// The request must already be validated.
func (p *Pipeline) Run(ctx context.Context, req *config.Request) (*Result, error) {
	result := &Result{}

	log.Printf("Installing packages")
	if err := p.Installer.EnsureAll(ctx, packages.Required); err != nil {
		return nil, err
	}

	log.Printf("Rendering configuration for %s", req.Domain)
	set, err := render.Render(req, p.Now())
	if err != nil {
		return nil, err
	}
	result.Set = set

	writer := render.NewWriter(p.sys)
	writer.Now = p.Now
	backups, err := writer.Apply(set)
	if err != nil {
		return nil, err
	}
	result.Backups = backups

	result.Warnings = append(result.Warnings, p.uploadBackups(ctx, backups)...)

	log.Printf("Reconciling services")
	warnings, err := p.Reconciler.Apply(ctx, req)
	if err != nil {
		return nil, err
	}
	result.Warnings = append(result.Warnings, warnings...)

	log.Printf("Running validation checks")
	result.Warnings = append(result.Warnings, p.Reconciler.Validate(ctx, req)...)

	return result, nil
}

// uploadBackups copies backup files off-site when an uploader is configured.
// Failures are warnings; the run continues.
func (p *Pipeline) uploadBackups(ctx context.Context, backupPaths []string) []string {
	if p.Uploader == nil || len(backupPaths) == 0 {
		return nil
	}

	var warnings []string
	if err := p.Uploader.EnsureBucket(ctx); err != nil {
		return []string{"off-site backup bucket unavailable: " + err.Error()}
	}

	for _, path := range backupPaths {
		data, err := p.sys.ReadFile(path)
		if err != nil {
			warnings = append(warnings, "could not read backup "+path+": "+err.Error())
			continue
		}
		if err := p.Uploader.UploadBackup(ctx, path, data); err != nil {
			warnings = append(warnings, "off-site copy of "+path+" failed: "+err.Error())
		}
	}
	return warnings
}
