package relay

import (
	"context"
	"fmt"
	"html"

	"github.com/wneessen/go-mail"
)

// Submission is one contact-form payload to forward.
type Submission struct {
	Name    string
	Email   string
	Message string
}

// Mailer dispatches a submission over a mail transport.
type Mailer interface {
	Send(ctx context.Context, sub Submission) error
}

// SMTPMailer sends submissions through an SMTP server using go-mail.
type SMTPMailer struct {
	cfg *Config
}

// NewSMTPMailer returns a Mailer over the configured SMTP transport.
func NewSMTPMailer(cfg *Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send forwards one submission. The message carries plain-text and HTML
// alternative bodies. No retry on failure.
func (m *SMTPMailer) Send(ctx context.Context, sub Submission) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(m.cfg.To); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	msg.Subject(fmt.Sprintf("Contact form submission from %s", sub.Name))
	if err := msg.ReplyTo(sub.Email); err != nil {
		return fmt.Errorf("invalid reply-to address: %w", err)
	}

	msg.SetBodyString(mail.TypeTextPlain, plainBody(sub))
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody(sub))

	client, err := m.newClient()
	if err != nil {
		return err
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp dispatch failed: %w", err)
	}
	return nil
}

func (m *SMTPMailer) newClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(m.cfg.SMTPPort),
	}

	if m.cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.SMTPUsername),
			mail.WithPassword(m.cfg.SMTPPassword),
		)
	}

	if m.cfg.SMTPSecure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(m.cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return client, nil
}

func plainBody(sub Submission) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\n\n%s\n", sub.Name, sub.Email, sub.Message)
}

func htmlBody(sub Submission) string {
	return fmt.Sprintf(`<h2>Contact form submission</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p>%s</p>
`, html.EscapeString(sub.Name), html.EscapeString(sub.Email), html.EscapeString(sub.Message))
}
