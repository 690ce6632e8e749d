// Package mail delivers rendered messages over SMTP or the Resend API and
// classifies failures so callers can tell hard bounces from transient errors.
package mail

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies a delivery failure.
type Kind int

const (
	Transient Kind = iota
	PermanentBounce
)

func (k Kind) String() string {
	if k == PermanentBounce {
		return "permanent_bounce"
	}
	return "transient"
}

// Message is a fully rendered email.
type Message struct {
	To      string
	Subject string
	HTML    string
	Headers map[string]string
}

// Transport delivers one message.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// DeliveryError is returned by every Transport on failure.
type DeliveryError struct {
	Kind Kind
	Err  error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s delivery failure: %v", e.Kind, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// IsHardBounce reports whether err is a permanent delivery failure.
func IsHardBounce(err error) bool {
	var de *DeliveryError
	return errors.As(err, &de) && de.Kind == PermanentBounce
}
