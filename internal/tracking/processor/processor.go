package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"newsletter-server/internal/observability"
	"newsletter-server/internal/security"
	"newsletter-server/internal/store"
)

// TrackingStore defines the database operations required by TrackingProcessor
type TrackingStore interface {
	GetSubscriberByUcode(ctx context.Context, ucode string) (store.Subscriber, error)
	InsertEmailEvent(ctx context.Context, params store.InsertEmailEventParams) error
}

var ErrInvalidRedirect = errors.New("redirect url must be http or https")

// Hit is one pixel load or link click as received
type Hit struct {
	Ucode     string
	Topic     string
	Hash      string
	UserAgent string
}

// TrackingProcessor records opens and clicks. Recording is best-effort and
// never changes what the caller sends back.
type TrackingProcessor struct {
	store  TrackingStore
	events *prometheus.CounterVec
	logger *observability.Logger
}

// New creates a processor. events may be nil.
func New(store TrackingStore, events *prometheus.CounterVec, logger *observability.Logger) TrackingProcessor {
	return TrackingProcessor{
		store:  store,
		events: events,
		logger: logger,
	}
}

// ValidRedirect reports whether target may be used as a click redirect.
func ValidRedirect(target string) bool {
	return strings.HasPrefix(target, "https://") || strings.HasPrefix(target, "http://")
}

// RecordOpen stores an open when the hash matches. It reports whether the
// event was recorded.
func (p *TrackingProcessor) RecordOpen(ctx context.Context, hit Hit) bool {
	return p.record(ctx, hit, store.EventTypeOpen, "")
}

// RecordClick validates target and stores a click when the hash matches. The
// hash covers the target, so a tampered url is not recorded.
func (p *TrackingProcessor) RecordClick(ctx context.Context, hit Hit, target string) (bool, error) {
	if !ValidRedirect(target) {
		return false, ErrInvalidRedirect
	}
	return p.record(ctx, hit, store.EventTypeClick, target), nil
}

func (p *TrackingProcessor) record(ctx context.Context, hit Hit, eventType, target string) bool {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "ucode", Value: hit.Ucode},
		observability.Field{Key: "topic", Value: hit.Topic},
		observability.Field{Key: "event_type", Value: eventType},
	)

	verified := p.verify(ctx, hit, target)
	p.count(eventType, verified)
	if !verified {
		return false
	}

	params := store.InsertEmailEventParams{
		Ucode:     hit.Ucode,
		EventType: eventType,
		Topic:     hit.Topic,
		UserAgent: hit.UserAgent,
	}
	if target != "" {
		params.ClickedURL = &target
	}
	if err := p.store.InsertEmailEvent(ctx, params); err != nil {
		p.logger.Error(ctx, "failed to record tracking event", err)
		return false
	}
	return true
}

func (p *TrackingProcessor) verify(ctx context.Context, hit Hit, target string) bool {
	if hit.Ucode == "" || hit.Hash == "" {
		return false
	}

	sub, err := p.store.GetSubscriberByUcode(ctx, hit.Ucode)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			p.logger.Error(ctx, "failed to look up subscriber for tracking", err)
		}
		return false
	}

	return security.VerifyOpenHash(sub.SecretCode, hit.Ucode, hit.Topic, target, hit.Hash)
}

func (p *TrackingProcessor) count(eventType string, verified bool) {
	if p.events != nil {
		p.events.WithLabelValues(eventType, strconv.FormatBool(verified)).Inc()
	}
}
