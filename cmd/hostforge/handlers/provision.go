// Package handlers implements the business logic behind the CLI commands.
//
// Handlers depend on their collaborators through package-level factory
// variables so tests can swap in fakes without touching the host.
package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/hostforge/internal/config"
	"github.com/imamik/hostforge/internal/config/wizard"
	"github.com/imamik/hostforge/internal/orchestration"
	"github.com/imamik/hostforge/internal/platform/host"
	"github.com/imamik/hostforge/internal/platform/objstore"
	"github.com/imamik/hostforge/internal/ui"
	"github.com/imamik/hostforge/internal/util/preflight"
)

// Factory function variables for provision - can be replaced in tests.
var (
	// newSystem returns the host abstraction used to run commands.
	newSystem = func() host.System { return host.NewReal() }

	// runWizard collects provisioning inputs interactively.
	runWizard = wizard.Run

	// loadAnswers reads inputs from an answers file.
	loadAnswers = config.LoadAnswers

	// newPipeline builds the provisioning pipeline.
	newPipeline = orchestration.New

	// backupSettings reads off-site backup settings from the environment.
	backupSettings = objstore.FromEnv

	// newBackupClient builds the off-site backup client.
	newBackupClient = func(settings objstore.Settings) (orchestration.BackupUploader, error) {
		return objstore.NewClient(settings)
	}
)

// Provision handles the provision command.
//
// It verifies privileges and tooling, collects inputs (wizard or answers
// file), then runs the full pipeline: package install, config render with
// backups, service reconcile, and validation. Reconcile and validation
// problems surface as warnings in the summary rather than failing the run.
func Provision(ctx context.Context, answersPath string) error {
	sys := newSystem()
	printer := ui.NewPrinter()

	if err := preflight.RequireRoot(sys); err != nil {
		return err
	}

	checks := preflight.Check(sys, preflight.DefaultTools())
	if err := checks.Error(); err != nil {
		return err
	}
	for _, tool := range checks.Missing {
		printer.Warning("%s not found yet: %s", tool.Name, tool.Description)
	}

	req, err := collectInputs(ctx, answersPath)
	if err != nil {
		return err
	}

	printer.Title("Provisioning " + req.Domain)

	pipeline := newPipeline(sys)
	if settings, ok := backupSettings(); ok {
		uploader, err := newBackupClient(settings)
		if err != nil {
			printer.Warning("off-site backups disabled: %v", err)
		} else {
			pipeline.Uploader = uploader
		}
	}

	result, err := pipeline.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("provisioning failed: %w", err)
	}

	printer.Summary(req, result.Warnings)

	return nil
}

func collectInputs(ctx context.Context, answersPath string) (*config.Request, error) {
	if answersPath != "" {
		req, err := loadAnswers(answersPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load answers: %w", err)
		}
		return req, nil
	}

	req, err := runWizard(ctx)
	if err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}
	return req, nil
}
