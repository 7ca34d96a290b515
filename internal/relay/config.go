package relay

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the relay's SMTP transport and listener settings, all
// supplied through the environment.
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPSecure   bool
	SMTPUsername string
	SMTPPassword string
	From         string
	To           string
	ListenAddr   string
}

/// FromEnv reads relay configuration from the environment:
// SMTP_HOST, SMTP_PORT, SMTP_SECURE, SMTP_USER, SMTP_PASS,
// MAIL_FROM, MAIL_TO, RELAY_ADDR.
func FromEnv() (*Config, error) {
	cfg := &Config{
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     587,
		SMTPUsername: os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASS"),
		From:         os.Getenv("MAIL_FROM"),
		To:           os.Getenv("MAIL_TO"),
		ListenAddr:   os.Getenv("RELAY_ADDR"),
	}

	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST must be set")
	}
	if cfg.From == "" || cfg.To == "" {
		return nil, fmt.Errorf("MAIL_FROM and MAIL_TO must be set")
	}

	if port := os.Getenv("SMTP_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", port, err)
		}
		cfg.SMTPPort = p
	}

	if secure := os.Getenv("SMTP_SECURE"); secure != "" {
		s, err := strconv.ParseBool(secure)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_SECURE %q: %w", secure, err)
		}
		cfg.SMTPSecure = s
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}

	return cfg, nil
}
