package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
	"github.com/vishwapandiyan/Resume-screener/internal/logger"
)

// Ensure SMTPTransport implements the interface.
var _ driven.EmailTransport = (*SMTPTransport)(nil)

// SMTPTransport sends mail through an SMTP relay with STARTTLS and PLAIN auth.
type SMTPTransport struct {
	cfg domain.SMTPSettings
	now func() time.Time
}

// NewSMTPTransport validates the settings and returns a transport.
func NewSMTPTransport(cfg domain.SMTPSettings) (*SMTPTransport, error) {
	if !cfg.IsConfigured() {
		return nil, fmt.Errorf("smtp host and credentials required: %w", domain.ErrEmailUnavailable)
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPTransport{cfg: cfg, now: time.Now}, nil
}

// Send delivers msg. The context deadline bounds the whole SMTP exchange.
func (t *SMTPTransport) Send(ctx context.Context, msg domain.EmailData) error {
	data, err := compose(t.cfg.From, msg, t.now())
	if err != nil {
		return err
	}

	rcpt := msg.To
	if parsed, err := mail.ParseAddress(msg.To); err == nil {
		rcpt = parsed.Address
	}

	addr := net.JoinHostPort(t.cfg.Host, strconv.Itoa(t.cfg.Port))
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial smtp %s: %w", addr, err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, t.cfg.Host)
	if err != nil {
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: t.cfg.Host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if ok, _ := c.Extension("AUTH"); ok {
		auth := smtp.PlainAuth("", t.cfg.Username, t.cfg.Password, t.cfg.Host)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("smtp authentication failed: %w", err)
		}
	}

	if err := c.Mail(t.cfg.From); err != nil {
		return fmt.Errorf("smtp sender rejected: %w", err)
	}
	if err := c.Rcpt(rcpt); err != nil {
		return fmt.Errorf("smtp recipient refused: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if err := c.Quit(); err != nil {
		logger.Debug("smtp: quit: %v", err)
	}

	logger.Debug("smtp: sent invitation to %s", msg.To)
	return nil
}
