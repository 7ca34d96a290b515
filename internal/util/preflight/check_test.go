package preflight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/hostforge/internal/platform/host/fakes"
)

func TestCheck_AllToolsPresent(t *testing.T) {
	t.Parallel()
	sys := fakes.NewFakeSystem()

	results := Check(sys, DefaultTools())

	assert.False(t, results.HasErrors())
	assert.NoError(t, results.Error())
	assert.Len(t, results.Results, len(DefaultTools()))
}

func TestCheck_MissingRequiredTool(t *testing.T) {
	t.Parallel()
	sys := fakes.NewFakeSystem()
	sys.MissingBinaries["systemctl"] = true

	results := Check(sys, DefaultTools())

	assert.True(t, results.HasErrors())
	err := results.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "systemctl")
}

func TestCheck_MissingOptionalToolIsNotAnError(t *testing.T) {
	t.Parallel()
	sys := fakes.NewFakeSystem()
	sys.MissingBinaries["smbpasswd"] = true

	results := Check(sys, DefaultTools())

	assert.False(t, results.HasErrors())
	assert.NoError(t, results.Error())
	assert.Len(t, results.Missing, 1)
}

func TestRequireRoot(t *testing.T) {
	t.Parallel()
	sys := fakes.NewFakeSystem()

	sys.UID = 0
	assert.NoError(t, RequireRoot(sys))

	sys.UID = 1000
	err := RequireRoot(sys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "elevated privileges")
}
