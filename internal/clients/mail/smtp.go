package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"net/textproto"

	"github.com/go-gomail/gomail"

	"newsletter-server/internal/config"
	"newsletter-server/internal/observability"
)

// SMTPTransport sends through an SMTP relay, one connection per message.
type SMTPTransport struct {
	from   string
	dial   func() (gomail.SendCloser, error)
	logger *observability.Logger
}

// NewSMTPTransport builds a transport from SMTP settings. With TLS enabled
// the connection is implicit TLS, otherwise STARTTLS is used when offered.
func NewSMTPTransport(cfg config.SMTPConfig, logger *observability.Logger) *SMTPTransport {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.TLS
	d.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}

	return &SMTPTransport{
		from:   cfg.FromEmail,
		dial:   d.Dial,
		logger: logger,
	}
}

func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", t.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	for k, v := range msg.Headers {
		m.SetHeader(k, v)
	}
	m.SetBody("text/html", msg.HTML)

	sender, err := t.dial()
	if err != nil {
		// Connection and auth problems say nothing about the recipient.
		return &DeliveryError{Kind: Transient, Err: err}
	}
	defer func() {
		if err := sender.Close(); err != nil {
			t.logger.WarnWithError(ctx, "failed to close smtp connection", err)
		}
	}()

	if err := sender.Send(t.from, []string{msg.To}, m); err != nil {
		return &DeliveryError{Kind: classify(err), Err: err}
	}
	return nil
}

// classify treats SMTP 5xx replies as permanent and everything else as transient.
func classify(err error) Kind {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) && tpErr.Code >= 500 && tpErr.Code < 600 {
		return PermanentBounce
	}
	return Transient
}
