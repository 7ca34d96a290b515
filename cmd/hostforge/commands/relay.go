package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/hostforge/cmd/hostforge/handlers"
)

// Relay returns the command for running the contact-form mail relay.
//
// The relay exposes POST /api/send-email and forwards valid submissions
// to a configured mailbox over SMTP.
//
// Optional flags:
//
//	--addr: Listen address (overrides RELAY_ADDR)
//
// Environment variables:
//
//	SMTP_HOST, SMTP_PORT, SMTP_SECURE, SMTP_USER, SMTP_PASS,
//	MAIL_FROM, MAIL_TO, RELAY_ADDR
func Relay() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Run the contact-form mail relay",
		Long: `Run the contact-form mail relay.

The relay accepts JSON submissions on POST /api/send-email and forwards
them to the configured mailbox over SMTP. It also serves /healthz and
Prometheus metrics on /metrics.

SMTP transport and addressing come from the environment:

  SMTP_HOST    SMTP server hostname (required)
  SMTP_PORT    SMTP server port (default 587)
  SMTP_SECURE  Use implicit TLS (default false, opportunistic STARTTLS)
  SMTP_USER    SMTP username (optional)
  SMTP_PASS    SMTP password (optional)
  MAIL_FROM    Envelope sender address (required)
  MAIL_TO      Destination mailbox (required)
  RELAY_ADDR   Listen address (default :8080)

Examples:
  # Run the relay on the default port
  hostforge relay

  # Run on a different port
  hostforge relay --addr :3000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Relay(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides RELAY_ADDR)")

	return cmd
}
