package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/imamik/hostforge/internal/relay"
)

// Factory function variables for relay - can be replaced in tests.
var (
	// relayConfig reads relay configuration from the environment.
	relayConfig = relay.FromEnv

	// newRelayLogger builds the relay's structured logger.
	newRelayLogger = zap.NewProduction

	// relayListen serves the relay until the server is shut down.
	relayListen = func(srv *http.Server) error { return srv.ListenAndServe() }
)

// Relay handles the relay command. It serves the contact-form relay until
// the context is canceled, then shuts down gracefully.
func Relay(ctx context.Context, addr string) error {
	cfg, err := relayConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.ListenAddr = addr
	}

	logger, err := newRelayLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	server := relay.NewServer(relay.NewSMTPMailer(cfg), logger)
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("relay listening",
		zap.String("addr", cfg.ListenAddr),
		zap.String("smtp_host", cfg.SMTPHost))

	if err := relayListen(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
