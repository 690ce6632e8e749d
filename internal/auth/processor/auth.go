package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"newsletter-server/internal/audit"
	"newsletter-server/internal/observability"
	"newsletter-server/internal/security"
	"newsletter-server/internal/store"
)

const (
	magicLinkTTL = 15 * time.Minute
	sessionTTL   = 24 * time.Hour
	tokenIssuer  = "newsletter-server"
)

var (
	ErrInvalidMagicLink = errors.New("invalid or expired login link")
	ErrInvalidJWTToken  = errors.New("invalid jwt token")
	ErrParseJWTToken    = errors.New("failed to parse jwt token")
	ErrExpiredToken     = errors.New("jwt token expired")
	ErrFailedSignIn     = errors.New("failed to sign in")
	ErrAdminRevoked     = errors.New("admin access was revoked")
)

// AuthConfig holds the settings AuthProcessor needs
type AuthConfig struct {
	JWTSecret string
	BaseURL   string
}

type AuthProcessor struct {
	store      AuthStore
	emails     EmailService
	audit      AuditLogger
	authConfig AuthConfig
	logger     *observability.Logger
	now        func() time.Time
}

func New(store AuthStore, emails EmailService, audit AuditLogger, authConfig AuthConfig, logger *observability.Logger) AuthProcessor {
	return AuthProcessor{
		store:      store,
		emails:     emails,
		audit:      audit,
		authConfig: authConfig,
		logger:     logger,
		now:        time.Now,
	}
}

type BaseClaims struct {
	ExpirationTime *jwt.NumericDate `json:"exp"`
	IssuedAt       *jwt.NumericDate `json:"iat"`
	NotBefore      *jwt.NumericDate `json:"nbf"`
	Issuer         string           `json:"iss"`
	Subject        string           `json:"sub"`
	Audience       jwt.ClaimStrings `json:"aud"`
}

// RequestMagicLink emails a one-time login link when email belongs to an
// admin. Callers answer the same way either way so admin addresses cannot be
// enumerated.
func (p *AuthProcessor) RequestMagicLink(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	ctx = observability.WithFields(ctx, observability.Field{Key: "email", Value: email})

	isAdmin, err := p.store.IsAdmin(ctx, email)
	if err != nil {
		p.logger.Error(ctx, "failed to check admin", err)
		return err
	}
	if !isAdmin {
		p.logger.Info(ctx, "login requested for non-admin address")
		return nil
	}

	token := security.GenerateToken()
	err = p.store.CreateVerificationToken(ctx, store.CreateTokenParams{
		AdminEmail: &email,
		Token:      token,
		TokenType:  store.TokenTypeMagicLink,
		ExpiresAt:  p.now().Add(magicLinkTTL),
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create magic link token", err)
		return err
	}

	link := p.authConfig.BaseURL + "/api/auth/magic/" + token
	if err := p.emails.SendAdminLoginEmail(ctx, email, link); err != nil {
		p.logger.Error(ctx, "failed to send magic link", err)
	}
	return nil
}

// ConsumeMagicLink exchanges a login link for a session JWT.
func (p *AuthProcessor) ConsumeMagicLink(ctx context.Context, token, ip string) (string, error) {
	t, err := p.store.ConsumeVerificationToken(ctx, token, store.TokenTypeMagicLink)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidMagicLink
		}
		p.logger.Error(ctx, "failed to consume magic link", err)
		return "", err
	}
	if t.AdminEmail == nil || *t.AdminEmail == "" {
		return "", ErrInvalidMagicLink
	}
	email := *t.AdminEmail
	ctx = observability.WithFields(ctx, observability.Field{Key: "admin_email", Value: email})

	jwtToken, err := p.generateJWTToken(ctx, email)
	if err != nil {
		return "", err
	}

	p.audit.Log(ctx, email, audit.ActionAdminLogin, nil, ip)
	return jwtToken, nil
}
