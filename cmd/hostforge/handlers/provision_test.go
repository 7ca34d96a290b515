package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/hostforge/internal/config"
	"github.com/imamik/hostforge/internal/orchestration"
	"github.com/imamik/hostforge/internal/platform/host"
	"github.com/imamik/hostforge/internal/platform/host/fakes"
	"github.com/imamik/hostforge/internal/platform/objstore"
	"github.com/imamik/hostforge/internal/provisioning/packages"
	"github.com/imamik/hostforge/internal/util/retry"
)

// saveAndRestoreProvisionFactories saves and restores provision factory functions.
func saveAndRestoreProvisionFactories(t *testing.T) {
	origNewSystem := newSystem
	origRunWizard := runWizard
	origLoadAnswers := loadAnswers
	origNewPipeline := newPipeline
	origBackupSettings := backupSettings
	origNewBackupClient := newBackupClient

	t.Cleanup(func() {
		newSystem = origNewSystem
		runWizard = origRunWizard
		loadAnswers = origLoadAnswers
		newPipeline = origNewPipeline
		backupSettings = origBackupSettings
		newBackupClient = origNewBackupClient
	})
}

func validRequest() *config.Request {
	return &config.Request{
		IPAddress:          "192.168.1.10",
		Domain:             "example.com",
		MySQLRootPassword:  "root-pw",
		PHPMyAdminPassword: "pma-pw",
		SambaUsername:      "shareuser",
		SambaPassword:      "share-pw",
	}
}

// fastPipeline builds a pipeline with no retry sleeps and short port probes.
func fastPipeline(sys host.System) *orchestration.Pipeline {
	p := orchestration.New(sys)
	p.Installer = packages.NewInstaller(sys, retry.Fixed(3, time.Millisecond))
	p.Reconciler.ProbeTimeout = 50 * time.Millisecond
	return p
}

func TestProvision_WizardPath(t *testing.T) {
	saveAndRestoreProvisionFactories(t)

	sys := fakes.NewFakeSystem()
	markAllInstalled(sys)

	newSystem = func() host.System { return sys }
	newPipeline = func(s host.System) *orchestration.Pipeline { return fastPipeline(s) }
	backupSettings = func() (objstore.Settings, bool) { return objstore.Settings{}, false }

	wizardCalled := false
	runWizard = func(_ context.Context) (*config.Request, error) {
		wizardCalled = true
		return validRequest(), nil
	}

	output := captureOutput(func() {
		err := Provision(context.Background(), "")
		require.NoError(t, err)
	})

	assert.True(t, wizardCalled)
	assert.Contains(t, output, "example.com")
	assert.True(t, sys.FileExists("/etc/bind/db.example.com"))
}

func TestProvision_AnswersPath(t *testing.T) {
	saveAndRestoreProvisionFactories(t)

	sys := fakes.NewFakeSystem()
	markAllInstalled(sys)

	newSystem = func() host.System { return sys }
	newPipeline = func(s host.System) *orchestration.Pipeline { return fastPipeline(s) }
	backupSettings = func() (objstore.Settings, bool) { return objstore.Settings{}, false }
	runWizard = func(_ context.Context) (*config.Request, error) {
		t.Fatal("wizard must not run when an answers file is given")
		return nil, nil
	}
	loadAnswers = func(path string) (*config.Request, error) {
		assert.Equal(t, "answers.yaml", path)
		return validRequest(), nil
	}

	captureOutput(func() {
		err := Provision(context.Background(), "answers.yaml")
		require.NoError(t, err)
	})
}

func TestProvision_NotRoot(t *testing.T) {
	saveAndRestoreProvisionFactories(t)

	sys := fakes.NewFakeSystem()
	sys.UID = 1000
	newSystem = func() host.System { return sys }

	err := Provision(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root")
}

func TestProvision_MissingRequiredTool(t *testing.T) {
	saveAndRestoreProvisionFactories(t)

	sys := fakes.NewFakeSystem()
	sys.MissingBinaries["apt-get"] = true
	newSystem = func() host.System { return sys }

	err := Provision(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apt-get")
}

func TestProvision_WizardCanceled(t *testing.T) {
	saveAndRestoreProvisionFactories(t)

	sys := fakes.NewFakeSystem()
	newSystem = func() host.System { return sys }
	runWizard = func(_ context.Context) (*config.Request, error) {
		return nil, errors.New("user aborted")
	}

	err := Provision(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wizard canceled")
}

func TestProvision_AnswersLoadError(t *testing.T) {
	saveAndRestoreProvisionFactories(t)

	sys := fakes.NewFakeSystem()
	newSystem = func() host.System { return sys }
	loadAnswers = func(string) (*config.Request, error) {
		return nil, errors.New("no such file")
	}

	err := Provision(context.Background(), "missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load answers")
}

func TestProvision_PipelineFailureIsFatal(t *testing.T) {
	saveAndRestoreProvisionFactories(t)

	sys := fakes.NewFakeSystem()
	// apt-get install fails persistently, so the install stage exhausts
	// retries and the pipeline returns an error.
	sys.FailWith("apt-get install -y bind9", errors.New("mirror unreachable"))

	newSystem = func() host.System { return sys }
	newPipeline = func(s host.System) *orchestration.Pipeline { return fastPipeline(s) }
	backupSettings = func() (objstore.Settings, bool) { return objstore.Settings{}, false }
	runWizard = func(_ context.Context) (*config.Request, error) { return validRequest(), nil }

	var err error
	captureOutput(func() {
		err = Provision(context.Background(), "")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provisioning failed")
}

func TestProvision_BackupClientErrorIsWarning(t *testing.T) {
	saveAndRestoreProvisionFactories(t)

	sys := fakes.NewFakeSystem()
	markAllInstalled(sys)

	newSystem = func() host.System { return sys }
	newPipeline = func(s host.System) *orchestration.Pipeline { return fastPipeline(s) }
	backupSettings = func() (objstore.Settings, bool) {
		return objstore.Settings{Endpoint: "https://s3.example.com"}, true
	}
	newBackupClient = func(objstore.Settings) (orchestration.BackupUploader, error) {
		return nil, errors.New("no bucket configured")
	}
	runWizard = func(_ context.Context) (*config.Request, error) { return validRequest(), nil }

	var err error
	output := captureOutput(func() {
		err = Provision(context.Background(), "")
	})
	require.NoError(t, err)
	assert.Contains(t, output, "off-site backups disabled")
}

func markAllInstalled(sys *fakes.FakeSystem) {
	for _, pkg := range packages.Required {
		sys.RespondWith("dpkg-query -W -f=${Status} "+pkg, "install ok installed")
	}
}
