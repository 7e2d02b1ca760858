// Package mail sends student-facing notification emails over SMTP.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/coad-fablab/printlab-api/pkg/config"
)

// Message is a fully rendered outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// sendFunc matches smtp.SendMail and exists as a test seam.
type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Mailer delivers messages through the configured SMTP relay. When no
// host or sender is configured it logs instead of sending, which keeps
// local development working without a relay.
type Mailer struct {
	cfg    config.MailConfig
	logger *zap.Logger
	send   sendFunc
}

func NewMailer(cfg config.MailConfig, logger *zap.Logger) *Mailer {
	m := &Mailer{cfg: cfg, logger: logger}
	if cfg.UseTLS {
		m.send = sendMailTLS
	} else {
		m.send = smtp.SendMail
	}
	return m
}

// Enabled reports whether a relay is configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != "" && m.cfg.Sender != ""
}

// Send delivers the message, or logs it when delivery is disabled.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("message has no recipient")
	}
	if !m.Enabled() {
		m.logger.Info("mail delivery disabled, skipping send",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(m.cfg.Host, fmt.Sprintf("%d", m.cfg.Port))
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := m.send(addr, auth, m.cfg.Sender, []string{msg.To}, m.envelope(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	m.logger.Info("mail sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

func (m *Mailer) envelope(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.Sender)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}

// sendMailTLS speaks SMTP over an implicit TLS connection, for relays
// that do not offer STARTTLS.
func sendMailTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
