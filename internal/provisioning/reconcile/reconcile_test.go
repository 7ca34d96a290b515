package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/hostforge/internal/config"
	"github.com/imamik/hostforge/internal/platform/host/fakes"
)

func testRequest() *config.Request {
	return &config.Request{
		IPAddress:          "192.168.1.10",
		Domain:             "example.com",
		MySQLRootPassword:  "rootpw",
		PHPMyAdminPassword: "pmapw",
		SambaUsername:      "alice",
		SambaPassword:      "sharepw",
	}
}

func TestApply_HappyPath(t *testing.T) {
	t.Parallel()
	sys := fakes.NewFakeSystem()

	warnings, err := NewReconciler(sys).Apply(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.True(t, sys.Ran("chown -R www-data:www-data /var/www/html"))
	assert.True(t, sys.Ran("a2ensite example.com.conf"))
	assert.True(t, sys.Ran("a2dissite 000-default.conf"))
	for _, svc := range ManagedServices {
		assert.True(t, sys.Ran("systemctl restart "+svc))
		assert.True(t, sys.Ran("systemctl enable "+svc))
	}
	assert.Contains(t, string(sys.Files["/var/www/html/index.html"]), "example.com")
}

func TestApply_CreatesShareAccountWhenMissing(t *testing.T) {
	t.Parallel()
	sys := fakes.NewFakeSystem()
	sys.FailWith("id alice", errors.New("no such user"))

	_, err := NewReconciler(sys).Apply(context.Background(), testRequest())
	require.NoError(t, err)

	assert.True(t, sys.Ran("useradd -M -s /usr/sbin/nologin alice"))
}

func TestApply_SkipsUseraddWhenAccountExists(t *testing.T) {
	t.Parallel()
	sys := fakes.NewFakeSystem()

	_, err := NewReconciler(sys).Apply(context.Background(), testRequest())
	require.NoError(t, err)

	assert.False(t, sys.Ran("useradd -M -s /usr/sbin/nologin alice"))
}

func TestApply_SetsBothPasswordsTwiceFromOneSecret(t *testing.T) {
	t.Parallel()
	sys := fakes.NewFakeSystem()

	_, err := NewReconciler(sys).Apply(context.Background(), testRequest())
	require.NoError(t, err)

	stdin, ok := sys.StdinFor("passwd alice")
	require.True(t, ok)
	assert.Equal(t, "sharepw\nsharepw\n", stdin, "system password confirm-prompt protocol")

	stdin, ok = sys.StdinFor("smbpasswd -a -s alice")
	require.True(t, ok)
	assert.Equal(t, "sharepw\nsharepw\n", stdin, "share password confirm-prompt protocol")
}

func TestApply_ServiceFailureIsWarningAndRestDoesNotStop(t *testing.T) {
	t.Parallel()
	sys := fakes.NewFakeSystem()
	sys.FailWith("systemctl restart bind9", errors.New("unit failed"))

	warnings, err := NewReconciler(sys).Apply(context.Background(), testRequest())
	require.NoError(t, err, "service failures must not affect the error path")

	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "bind9")

	// Remaining services are still attempted.
	assert.True(t, sys.Ran("systemctl enable bind9"))
	for _, svc := range []string{"apache2", "mysql", "smbd"} {
		assert.True(t, sys.Ran("systemctl restart "+svc))
	}
}

func TestApply_ModuleEnableFailureIsWarning(t *testing.T) {
	t.Parallel()
	sys := fakes.NewFakeSystem()
	sys.FailWith("a2enmod rewrite", errors.New("module not found"))

	warnings, err := NewReconciler(sys).Apply(context.Background(), testRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)
	assert.True(t, sys.Ran("a2ensite example.com.conf"), "site enable still attempted")
}

func TestValidate_SyntaxCheckFailuresAreWarnings(t *testing.T) {
	t.Parallel()
	sys := fakes.NewFakeSystem()
	sys.FailWith("apache2ctl configtest", errors.New("syntax error"))
	sys.FailWith("named-checkconf", errors.New("bad zone"))

	r := NewReconciler(sys)
	r.ProbeTimeout = 50 * time.Millisecond

	req := testRequest()
	req.IPAddress = "127.0.0.1" // probes fail fast against closed local ports

	warnings := r.Validate(context.Background(), req)
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "web config syntax check failed")
	assert.Contains(t, warnings[1], "DNS config syntax check failed")
}

func TestManagedServices_ListIsStable(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"bind9", "apache2", "mysql", "smbd"}, ManagedServices)
}
