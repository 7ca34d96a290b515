package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/imamik/hostforge/internal/relay"
)

func saveAndRestoreRelayFactories(t *testing.T) {
	origConfig := relayConfig
	origLogger := newRelayLogger
	origListen := relayListen

	t.Cleanup(func() {
		relayConfig = origConfig
		newRelayLogger = origLogger
		relayListen = origListen
	})
}

func testRelayConfig() *relay.Config {
	return &relay.Config{
		SMTPHost:   "smtp.example.com",
		SMTPPort:   587,
		From:       "noreply@example.com",
		To:         "inbox@example.com",
		ListenAddr: ":8080",
	}
}

func TestRelay_ServesConfiguredAddress(t *testing.T) {
	saveAndRestoreRelayFactories(t)

	relayConfig = func() (*relay.Config, error) { return testRelayConfig(), nil }
	newRelayLogger = func(...zap.Option) (*zap.Logger, error) { return zap.NewNop(), nil }

	var servedAddr string
	relayListen = func(srv *http.Server) error {
		servedAddr = srv.Addr
		return http.ErrServerClosed
	}

	err := Relay(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, ":8080", servedAddr)
}

func TestRelay_AddrFlagOverridesEnv(t *testing.T) {
	saveAndRestoreRelayFactories(t)

	relayConfig = func() (*relay.Config, error) { return testRelayConfig(), nil }
	newRelayLogger = func(...zap.Option) (*zap.Logger, error) { return zap.NewNop(), nil }

	var servedAddr string
	relayListen = func(srv *http.Server) error {
		servedAddr = srv.Addr
		return http.ErrServerClosed
	}

	err := Relay(context.Background(), ":3000")
	require.NoError(t, err)
	assert.Equal(t, ":3000", servedAddr)
}

func TestRelay_ConfigError(t *testing.T) {
	saveAndRestoreRelayFactories(t)

	relayConfig = func() (*relay.Config, error) {
		return nil, errors.New("SMTP_HOST must be set")
	}

	err := Relay(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_HOST")
}

func TestRelay_ListenError(t *testing.T) {
	saveAndRestoreRelayFactories(t)

	relayConfig = func() (*relay.Config, error) { return testRelayConfig(), nil }
	newRelayLogger = func(...zap.Option) (*zap.Logger, error) { return zap.NewNop(), nil }
	relayListen = func(*http.Server) error {
		return errors.New("address already in use")
	}

	err := Relay(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address already in use")
}
