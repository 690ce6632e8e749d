// Package turnstile guards the public subscription form. POST /api/subscribe
// carries the cf-turnstile-response field rendered by the Cloudflare widget,
// and the subscription processor hands it to Verifier before any subscriber
// row or verification email is created. A failed check surfaces to the form
// as CAPTCHA_FAILED.
package turnstile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"newsletter-server/internal/observability"
)

const siteverifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

var (
	ErrMissingToken   = errors.New("captcha token missing")
	ErrRejected       = errors.New("captcha rejected by siteverify")
	ErrHostnameDenied = errors.New("captcha solved on another hostname")
)

// siteverifyResult is the part of the siteverify answer the form check reads.
type siteverifyResult struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
	Hostname   string   `json:"hostname"`
}

// Verifier checks one Turnstile token per subscription attempt. A Verifier
// with no secret is disabled and lets every attempt through, which keeps
// local development usable without Cloudflare keys.
type Verifier struct {
	secret   string
	hostname string
	endpoint string
	http     *http.Client
	logger   *observability.Logger
}

// NewVerifier builds a Verifier. When hostname is set, tokens solved on any
// other site are refused.
func NewVerifier(secret, hostname string, logger *observability.Logger) *Verifier {
	return &Verifier{
		secret:   secret,
		hostname: strings.ToLower(hostname),
		endpoint: siteverifyURL,
		http:     &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

// Enabled reports whether tokens are actually checked.
func (v *Verifier) Enabled() bool {
	return v != nil && v.secret != ""
}

// Verify checks the form token of a subscriber at remoteIP. Transport and
// decoding failures are returned wrapped so callers can tell them apart from
// a rejected token.
func (v *Verifier) Verify(ctx context.Context, token string, remoteIP string) error {
	if !v.Enabled() {
		return nil
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrMissingToken
	}

	form := url.Values{"secret": {v.secret}, "response": {token}}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.http.Do(req)
	if err != nil {
		v.logger.Error(ctx, "siteverify call failed", err)
		return fmt.Errorf("failed to reach siteverify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("siteverify answered %d", resp.StatusCode)
		v.logger.Error(ctx, "siteverify unavailable", err)
		return err
	}

	var result siteverifyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		v.logger.Error(ctx, "failed to decode siteverify answer", err)
		return fmt.Errorf("failed to decode siteverify answer: %w", err)
	}

	if !result.Success {
		v.logger.Info(observability.WithFields(ctx,
			observability.Field{Key: "error_codes", Value: strings.Join(result.ErrorCodes, ",")},
		), "subscription captcha rejected")
		return ErrRejected
	}
	if v.hostname != "" && !strings.EqualFold(result.Hostname, v.hostname) {
		v.logger.Warn(observability.WithFields(ctx,
			observability.Field{Key: "captcha_hostname", Value: result.Hostname},
		), "subscription captcha solved on unexpected hostname")
		return ErrHostnameDenied
	}

	return nil
}
