package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"newsletter-server/internal/audit"
	"newsletter-server/internal/observability"
	"newsletter-server/internal/security"
	"newsletter-server/internal/store"
	subscription "newsletter-server/internal/subscription/processor"
)

// SubscribersStore defines the database operations required by SubscribersProcessor
type SubscribersStore interface {
	ListSubscribers(ctx context.Context, params store.ListSubscribersParams) ([]store.Subscriber, error)
	CountSubscribers(ctx context.Context, search string) (int, error)
	GetSubscriberByID(ctx context.Context, id uuid.UUID) (store.Subscriber, error)
	ToggleSubscriberStatus(ctx context.Context, id uuid.UUID) (store.Subscriber, error)
	CreateVerificationToken(ctx context.Context, params store.CreateTokenParams) error
	GetSubscriberCounts(ctx context.Context) (store.SubscriberCounts, error)
	ListTopicEventCounts(ctx context.Context) ([]store.TopicEventCounts, error)
}

// VerificationSender delivers the verification email
type VerificationSender interface {
	SendVerificationEmail(ctx context.Context, to, name, verificationLink string) error
}

// AuditLogger records admin actions
type AuditLogger interface {
	Log(ctx context.Context, adminEmail, action string, details map[string]any, ip string)
}

var (
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrAlreadyVerified    = errors.New("subscriber is already verified")
	ErrEmailNotSent       = errors.New("failed to send verification email")
)

// PageSize is the number of subscribers per admin list page.
const PageSize = 50

type SubscribersProcessor struct {
	store   SubscribersStore
	emails  VerificationSender
	audit   AuditLogger
	baseURL string
	logger  *observability.Logger
	now     func() time.Time
}

func New(store SubscribersStore, emails VerificationSender, audit AuditLogger, baseURL string, logger *observability.Logger) SubscribersProcessor {
	return SubscribersProcessor{
		store:   store,
		emails:  emails,
		audit:   audit,
		baseURL: baseURL,
		logger:  logger,
		now:     time.Now,
	}
}

// Actor identifies the admin performing an action
type Actor struct {
	Email string
	IP    string
}

// SubscriberPage is one page of the admin subscriber list
type SubscriberPage struct {
	Subscribers []store.Subscriber `json:"subscribers"`
	Total       int                `json:"total"`
	Page        int                `json:"page"`
	PerPage     int                `json:"per_page"`
	TotalPages  int                `json:"total_pages"`
}

// ListSubscribers returns page (1-based) of subscribers matching search.
func (p *SubscribersProcessor) ListSubscribers(ctx context.Context, page int, search string) (SubscriberPage, error) {
	if page < 1 {
		page = 1
	}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "page", Value: page},
		observability.Field{Key: "search", Value: search},
	)

	total, err := p.store.CountSubscribers(ctx, search)
	if err != nil {
		p.logger.Error(ctx, "failed to count subscribers", err)
		return SubscriberPage{}, err
	}

	subs, err := p.store.ListSubscribers(ctx, store.ListSubscribersParams{
		Search: search,
		Limit:  PageSize,
		Offset: (page - 1) * PageSize,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to list subscribers", err)
		return SubscriberPage{}, err
	}
	if subs == nil {
		subs = []store.Subscriber{}
	}

	return SubscriberPage{
		Subscribers: subs,
		Total:       total,
		Page:        page,
		PerPage:     PageSize,
		TotalPages:  (total + PageSize - 1) / PageSize,
	}, nil
}

// ToggleStatus flips a subscriber between active and inactive.
func (p *SubscribersProcessor) ToggleStatus(ctx context.Context, actor Actor, id uuid.UUID) (store.Subscriber, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "subscriber_id", Value: id})

	sub, err := p.store.ToggleSubscriberStatus(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Subscriber{}, ErrSubscriberNotFound
		}
		p.logger.Error(ctx, "failed to toggle subscriber status", err)
		return store.Subscriber{}, err
	}

	p.audit.Log(ctx, actor.Email, audit.ActionSubscriberToggle, map[string]any{
		"subscriber_id": id.String(),
		"status":        sub.Status,
	}, actor.IP)
	return sub, nil
}

// ResendVerification issues a fresh verification token to an unverified
// subscriber and emails it.
func (p *SubscribersProcessor) ResendVerification(ctx context.Context, actor Actor, id uuid.UUID) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "subscriber_id", Value: id})

	sub, err := p.store.GetSubscriberByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrSubscriberNotFound
		}
		p.logger.Error(ctx, "failed to get subscriber", err)
		return err
	}
	if sub.VerifiedEmail {
		return ErrAlreadyVerified
	}

	token := security.GenerateToken()
	err = p.store.CreateVerificationToken(ctx, store.CreateTokenParams{
		SubscriberID: &sub.ID,
		Token:        token,
		TokenType:    store.TokenTypeEmailVerify,
		ExpiresAt:    p.now().Add(subscription.VerificationTTL),
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create verification token", err)
		return err
	}

	link := subscription.VerificationURL(p.baseURL, token)
	if err := p.emails.SendVerificationEmail(ctx, sub.Email, sub.Name, link); err != nil {
		p.logger.Error(ctx, "failed to resend verification email", err)
		return errors.Join(ErrEmailNotSent, err)
	}

	p.audit.Log(ctx, actor.Email, audit.ActionResendVerification, map[string]any{
		"subscriber_id": id.String(),
		"email":         sub.Email,
	}, actor.IP)
	return nil
}

// GetDashboard returns subscriber totals.
func (p *SubscribersProcessor) GetDashboard(ctx context.Context) (store.SubscriberCounts, error) {
	counts, err := p.store.GetSubscriberCounts(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to get subscriber counts", err)
		return store.SubscriberCounts{}, err
	}
	return counts, nil
}

// TopicStats is the open and click totals of one topic
type TopicStats struct {
	Topic  string `json:"topic"`
	Opens  int    `json:"opens"`
	Clicks int    `json:"clicks"`
}

// GetTopicStats folds per-type event counts into one row per topic, keeping
// the store's topic order.
func (p *SubscribersProcessor) GetTopicStats(ctx context.Context) ([]TopicStats, error) {
	rows, err := p.store.ListTopicEventCounts(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list topic event counts", err)
		return nil, err
	}

	stats := []TopicStats{}
	index := make(map[string]int)
	for _, row := range rows {
		i, ok := index[row.Topic]
		if !ok {
			i = len(stats)
			index[row.Topic] = i
			stats = append(stats, TopicStats{Topic: row.Topic})
		}
		switch row.EventType {
		case store.EventTypeOpen:
			stats[i].Opens += row.Count
		case store.EventTypeClick:
			stats[i].Clicks += row.Count
		}
	}
	return stats, nil
}
