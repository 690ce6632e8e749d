package mail

import (
	"context"

	"github.com/resendlabs/resend-go"

	"newsletter-server/internal/observability"
)

// ResendTransport sends through the Resend HTTP API. The API does not expose
// SMTP reply codes, so every failure is transient.
type ResendTransport struct {
	client *resend.Client
	from   string
	logger *observability.Logger
}

func NewResendTransport(apiKey, from string, logger *observability.Logger) *ResendTransport {
	return &ResendTransport{
		client: resend.NewClient(apiKey),
		from:   from,
		logger: logger,
	}
}

func (t *ResendTransport) Send(ctx context.Context, msg Message) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_to", Value: msg.To},
		observability.Field{Key: "email_subject", Value: msg.Subject},
	)

	params := &resend.SendEmailRequest{
		From:    t.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Headers: msg.Headers,
	}

	res, err := t.client.Emails.Send(params)
	if err != nil {
		t.logger.Error(ctx, "failed to send email", err)
		return &DeliveryError{Kind: Transient, Err: err}
	}

	t.logger.Debug(observability.WithFields(ctx, observability.Field{Key: "resend_id", Value: res.Id}), "email accepted by resend")
	return nil
}
