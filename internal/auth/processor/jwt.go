package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"newsletter-server/internal/observability"
)

func (p *AuthProcessor) generateJWTToken(ctx context.Context, adminEmail string) (string, error) {
	now := p.now()
	claims := jwt.MapClaims{
		"sub": adminEmail,
		"iss": tokenIssuer,
		"aud": tokenIssuer,
		"exp": now.Add(sessionTTL).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(p.authConfig.JWTSecret))
	if err != nil {
		p.logger.Error(ctx, "failed to sign token", err)
		return "", ErrFailedSignIn
	}

	return tokenString, nil
}

func (b *BaseClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	return b.ExpirationTime, nil
}

func (b *BaseClaims) GetIssuedAt() (*jwt.NumericDate, error) {
	return b.IssuedAt, nil
}

func (b *BaseClaims) GetNotBefore() (*jwt.NumericDate, error) {
	return b.NotBefore, nil
}

func (b *BaseClaims) GetIssuer() (string, error) {
	return b.Issuer, nil
}

func (b *BaseClaims) GetSubject() (string, error) {
	return b.Subject, nil
}

func (b *BaseClaims) GetAudience() (jwt.ClaimStrings, error) {
	return b.Audience, nil
}

func (p *AuthProcessor) ValidateJWTToken(ctx context.Context, token string) (BaseClaims, error) {
	var baseClaims BaseClaims
	t, err := jwt.ParseWithClaims(token, &baseClaims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(p.authConfig.JWTSecret), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenIssuer),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			p.logger.Info(ctx, "token expired")
			return BaseClaims{}, ErrExpiredToken
		}

		p.logger.WarnWithError(ctx, "failed to parse token", err)
		return BaseClaims{}, ErrParseJWTToken
	}
	if !t.Valid {
		return BaseClaims{}, ErrInvalidJWTToken
	}

	claims, ok := t.Claims.(*BaseClaims)
	if !ok || claims.Subject == "" {
		return BaseClaims{}, ErrInvalidJWTToken
	}

	// Tokens outlive admin removal, so membership is checked on every request.
	isAdmin, err := p.store.IsAdmin(ctx, claims.Subject)
	if err != nil {
		p.logger.Error(ctx, "failed to check admin", err)
		return BaseClaims{}, err
	}
	if !isAdmin {
		p.logger.Info(observability.WithFields(ctx, observability.Field{Key: "admin_email", Value: claims.Subject}), "token of removed admin rejected")
		return BaseClaims{}, ErrAdminRevoked
	}

	return *claims, nil
}
