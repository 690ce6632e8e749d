package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsletter-server/internal/observability"
	"newsletter-server/internal/security"
	"newsletter-server/internal/store"
)

// SubscriptionStore defines the database operations required by SubscriptionProcessor
type SubscriptionStore interface {
	GetSubscriberByEmail(ctx context.Context, email string) (store.Subscriber, error)
	GetSubscriberByID(ctx context.Context, id uuid.UUID) (store.Subscriber, error)
	GetSubscriberByLegacyAdminLink(ctx context.Context, link string) (store.Subscriber, error)
	ListSubscriberSecrets(ctx context.Context) ([]store.SubscriberSecret, error)
	CreateSubscriber(ctx context.Context, params store.CreateSubscriberParams) (store.Subscriber, error)
	CreateVerificationToken(ctx context.Context, params store.CreateTokenParams) error
	ConsumeVerificationToken(ctx context.Context, token, tokenType string) (store.VerificationToken, error)
	MarkSubscriberVerified(ctx context.Context, id uuid.UUID) error
	UpdateSubscriberName(ctx context.Context, id uuid.UUID, name string) error
	SetSubscriberStatus(ctx context.Context, id uuid.UUID, status bool) error
	ResubscribeSubscriber(ctx context.Context, id uuid.UUID) error
	InsertUnsubscribeEvent(ctx context.Context, subscriberID uuid.UUID, newsletterID *uuid.UUID) error
	GetNewsletterIDBySlug(ctx context.Context, slug string) (uuid.UUID, error)
}

// CaptchaVerifier checks the token submitted with the public form
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string, remoteIP string) error
}

// VerificationSender delivers the double opt-in email
type VerificationSender interface {
	SendVerificationEmail(ctx context.Context, to, name, verificationLink string) error
}

var (
	ErrCaptchaFailed = errors.New("captcha verification failed")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrInvalidToken  = errors.New("verification token is invalid or expired")
	ErrInvalidLink   = errors.New("management link is invalid")
)

// VerificationTTL bounds how long an email_verify token is accepted.
const VerificationTTL = 24 * time.Hour

type SubscriptionProcessor struct {
	store   SubscriptionStore
	captcha CaptchaVerifier
	emails  VerificationSender
	baseURL string
	logger  *observability.Logger
	now     func() time.Time
}

func New(store SubscriptionStore, captcha CaptchaVerifier, emails VerificationSender, baseURL string, logger *observability.Logger) SubscriptionProcessor {
	return SubscriptionProcessor{
		store:   store,
		captcha: captcha,
		emails:  emails,
		baseURL: baseURL,
		logger:  logger,
		now:     time.Now,
	}
}

// SubscribeRequest is a public form submission
type SubscribeRequest struct {
	Email        string
	Name         string
	CaptchaToken string
	RemoteIP     string
}

// Subscription is what a management link reveals about its owner
type Subscription struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Status    bool   `json:"status"`
	AdminLink string `json:"admin_link"`
	From      string `json:"from,omitempty"`
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ManageURL is the management page of the subscriber owning adminLink.
func ManageURL(baseURL, adminLink string) string {
	return baseURL + "/manage/" + adminLink
}

// VerificationURL is the link a new subscriber clicks to confirm their address.
func VerificationURL(baseURL, token string) string {
	return baseURL + "/api/verify/" + token
}

// Subscribe registers a new address and sends the verification email. The
// result never reveals whether the address was already known.
func (p *SubscriptionProcessor) Subscribe(ctx context.Context, req SubscribeRequest) error {
	email := NormalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}

	if err := p.captcha.Verify(ctx, req.CaptchaToken, req.RemoteIP); err != nil {
		p.logger.WarnWithError(ctx, "captcha rejected", err)
		return ErrCaptchaFailed
	}

	_, err := p.store.GetSubscriberByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		p.logger.Error(ctx, "failed to look up subscriber", err)
		return err
	}

	sub, err := p.store.CreateSubscriber(ctx, store.CreateSubscriberParams{
		Email:      email,
		Name:       name,
		SecretCode: security.GenerateSecretCode(),
		Ucode:      security.GenerateUcode(),
		Source:     store.SubscriptionSourceWeb,
	})
	if err != nil {
		// Lost a race with a concurrent signup for the same address.
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil
		}
		p.logger.Error(ctx, "failed to create subscriber", err)
		return err
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "subscriber_id", Value: sub.ID})

	token := security.GenerateToken()
	err = p.store.CreateVerificationToken(ctx, store.CreateTokenParams{
		SubscriberID: &sub.ID,
		Token:        token,
		TokenType:    store.TokenTypeEmailVerify,
		ExpiresAt:    p.now().Add(VerificationTTL),
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create verification token", err)
		return err
	}

	if err := p.emails.SendVerificationEmail(ctx, email, name, VerificationURL(p.baseURL, token)); err != nil {
		p.logger.Error(ctx, "failed to send verification email", err)
	}

	p.logger.Info(ctx, "subscriber created")
	return nil
}

// Verify consumes an email verification token, activates its subscriber and
// returns their management URL.
func (p *SubscriptionProcessor) Verify(ctx context.Context, token string) (string, error) {
	t, err := p.store.ConsumeVerificationToken(ctx, token, store.TokenTypeEmailVerify)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidToken
		}
		p.logger.Error(ctx, "failed to consume verification token", err)
		return "", err
	}
	if t.SubscriberID == nil {
		return "", ErrInvalidToken
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "subscriber_id", Value: *t.SubscriberID})

	if err := p.store.MarkSubscriberVerified(ctx, *t.SubscriberID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidToken
		}
		p.logger.Error(ctx, "failed to mark subscriber verified", err)
		return "", err
	}

	sub, err := p.store.GetSubscriberByID(ctx, *t.SubscriberID)
	if err != nil {
		p.logger.Error(ctx, "failed to get verified subscriber", err)
		return "", err
	}

	p.logger.Info(ctx, "subscriber verified")
	return ManageURL(p.baseURL, security.ComputeAdminLink(sub.SecretCode, sub.Email)), nil
}

// findByAdminLink resolves a management link. Imported subscribers keep
// their precomputed link; everyone else is matched by recomputing links in
// constant time.
func (p *SubscriptionProcessor) findByAdminLink(ctx context.Context, adminLink string) (store.Subscriber, error) {
	sub, err := p.store.GetSubscriberByLegacyAdminLink(ctx, adminLink)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		p.logger.Error(ctx, "failed to look up legacy admin link", err)
		return store.Subscriber{}, err
	}

	secrets, err := p.store.ListSubscriberSecrets(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list subscriber secrets", err)
		return store.Subscriber{}, err
	}

	for _, s := range secrets {
		if !security.VerifyAdminLink(adminLink, security.ComputeAdminLink(s.SecretCode, s.Email)) {
			continue
		}
		sub, err := p.store.GetSubscriberByID(ctx, s.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return store.Subscriber{}, ErrInvalidLink
			}
			p.logger.Error(ctx, "failed to get subscriber", err)
			return store.Subscriber{}, err
		}
		return sub, nil
	}

	return store.Subscriber{}, ErrInvalidLink
}

func toSubscription(sub store.Subscriber, adminLink, from string) Subscription {
	return Subscription{
		Name:      sub.Name,
		Email:     sub.Email,
		Status:    sub.Status,
		AdminLink: adminLink,
		From:      from,
	}
}

// GetSubscription returns the subscription behind a management link
func (p *SubscriptionProcessor) GetSubscription(ctx context.Context, adminLink, from string) (Subscription, error) {
	sub, err := p.findByAdminLink(ctx, adminLink)
	if err != nil {
		return Subscription{}, err
	}
	return toSubscription(sub, adminLink, from), nil
}

// UpdateName changes the display name used in newsletters
func (p *SubscriptionProcessor) UpdateName(ctx context.Context, adminLink, name string) (Subscription, error) {
	sub, err := p.findByAdminLink(ctx, adminLink)
	if err != nil {
		return Subscription{}, err
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "subscriber_id", Value: sub.ID})

	name = strings.TrimSpace(name)
	if err := p.store.UpdateSubscriberName(ctx, sub.ID, name); err != nil {
		p.logger.Error(ctx, "failed to update subscriber name", err)
		return Subscription{}, err
	}

	sub.Name = name
	return toSubscription(sub, adminLink, ""), nil
}

// Unsubscribe stops delivery and records which newsletter, if any, the
// request came from.
func (p *SubscriptionProcessor) Unsubscribe(ctx context.Context, adminLink, from string) (Subscription, error) {
	sub, err := p.findByAdminLink(ctx, adminLink)
	if err != nil {
		return Subscription{}, err
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "subscriber_id", Value: sub.ID},
		observability.Field{Key: "topic", Value: from},
	)

	if err := p.store.SetSubscriberStatus(ctx, sub.ID, false); err != nil {
		p.logger.Error(ctx, "failed to unsubscribe", err)
		return Subscription{}, err
	}

	var newsletterID *uuid.UUID
	if from != "" {
		id, err := p.store.GetNewsletterIDBySlug(ctx, from)
		switch {
		case err == nil:
			newsletterID = &id
		case !errors.Is(err, store.ErrNotFound):
			p.logger.WarnWithError(ctx, "failed to resolve unsubscribe source", err)
		}
	}
	if err := p.store.InsertUnsubscribeEvent(ctx, sub.ID, newsletterID); err != nil {
		p.logger.Error(ctx, "failed to record unsubscribe event", err)
	}

	p.logger.Info(ctx, "subscriber unsubscribed")
	sub.Status = false
	return toSubscription(sub, adminLink, from), nil
}

// Resubscribe restores delivery and clears a previous hard bounce
func (p *SubscriptionProcessor) Resubscribe(ctx context.Context, adminLink string) (Subscription, error) {
	sub, err := p.findByAdminLink(ctx, adminLink)
	if err != nil {
		return Subscription{}, err
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "subscriber_id", Value: sub.ID})

	if err := p.store.ResubscribeSubscriber(ctx, sub.ID); err != nil {
		p.logger.Error(ctx, "failed to resubscribe", err)
		return Subscription{}, err
	}

	p.logger.Info(ctx, "subscriber resubscribed")
	sub.Status = true
	return toSubscription(sub, adminLink, ""), nil
}
