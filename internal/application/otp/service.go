// Package otp issues one-time codes bound to a recipient and a short validity
// window, and verifies user-submitted codes against self-describing signed
// tokens. Codes are never persisted: validity is reconstructed from the
// signing secret and the data the client echoes back. A token+code pair
// therefore stays verifiable until its freshness window lapses; repeat
// verification inside the window is accepted.
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/portfolio-backend/internal/domain"
	"github.com/portfolio-backend/internal/pkg/otptoken"
)

// Channel selects how a code is delivered.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

const emailSubject = "Your verification code"

type Service interface {
	// RequestOTP issues a code for recipient, delivers it over channel and
	// returns the signed token the client must echo back on verification.
	RequestOTP(ctx context.Context, recipient string, channel Channel) (token string, err error)
	// VerifyOTP checks a submitted code against its token. On success it
	// returns a verification access token when a signer is configured.
	VerifyOTP(ctx context.Context, recipient, otp, token string) (accessToken string, err error)
}

// RateLimitStore reserves send attempts per recipient.
type RateLimitStore interface {
	Reserve(ctx context.Context, recipient string, now time.Time, window time.Duration, maxAttempts int) error
}

// Mailer delivers the code over email.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, html string) error
}

// SMSSender delivers the code over SMS.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// AccessTokenIssuer signs proof-of-verification tokens. Optional.
type AccessTokenIssuer interface {
	Sign(recipient string) (string, error)
}

// ServiceDeps bundles everything the service needs.
type ServiceDeps struct {
	RateLimits RateLimitStore
	Mailer     Mailer
	SMSSender  SMSSender         // optional
	Issuer     AccessTokenIssuer // optional

	Secret            string
	AllowedRecipients []string // empty = unrestricted
	TokenTTL          time.Duration
	RateWindow        time.Duration
	MaxAttempts       int
}

type service struct {
	deps ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	return &service{deps: deps}
}

func (s *service) RequestOTP(ctx context.Context, recipient string, channel Channel) (string, error) {
	if recipient == "" {
		return "", fmt.Errorf("recipient required: %w", domain.ErrBadRequest)
	}
	if !s.allowed(recipient) {
		return "", fmt.Errorf("recipient %s not on allow list: %w", recipient, domain.ErrForbidden)
	}

	if err := s.deps.RateLimits.Reserve(ctx, recipient, time.Now(), s.deps.RateWindow, s.deps.MaxAttempts); err != nil {
		return "", err
	}

	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	token := otptoken.Sign(s.deps.Secret, recipient, code, time.Now().Unix())

	if err := s.deliver(ctx, recipient, channel, code); err != nil {
		return "", fmt.Errorf("deliver code to %s: %v: %w", recipient, err, domain.ErrDelivery)
	}
	return token, nil
}

func (s *service) VerifyOTP(ctx context.Context, recipient, otp, token string) (string, error) {
	if otp == "" || token == "" {
		return "", fmt.Errorf("otp and token required: %w", domain.ErrBadRequest)
	}
	if err := otptoken.Verify(s.deps.Secret, recipient, otp, token, time.Now(), s.deps.TokenTTL); err != nil {
		return "", err
	}
	if s.deps.Issuer == nil {
		return "", nil
	}
	accessToken, err := s.deps.Issuer.Sign(recipient)
	if err != nil {
		// Verification itself succeeded; the access token is a bonus.
		slog.Warn("failed to sign verification access token", "recipient", recipient, "err", err)
		return "", nil
	}
	return accessToken, nil
}

func (s *service) allowed(recipient string) bool {
	if len(s.deps.AllowedRecipients) == 0 {
		return true
	}
	for _, r := range s.deps.AllowedRecipients {
		if strings.EqualFold(r, recipient) {
			return true
		}
	}
	return false
}

func (s *service) deliver(ctx context.Context, recipient string, channel Channel, code string) error {
	switch channel {
	case ChannelSMS:
		if s.deps.SMSSender == nil {
			return fmt.Errorf("sms delivery not configured")
		}
		return s.deps.SMSSender.SendSMS(ctx, recipient, "Your verification code: "+code)
	default:
		return s.deps.Mailer.SendEmail(ctx, recipient, emailSubject, emailBody(code))
	}
}

// generateCode returns a uniformly random 5-digit decimal code in [10000,99999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+10000), nil
}

func emailBody(code string) string {
	return fmt.Sprintf(`<div style="font-family:sans-serif">
  <p>Use the following code to verify your email address:</p>
  <p style="font-size:28px;font-weight:bold;letter-spacing:4px">%s</p>
  <p>The code expires in 5 minutes. If you did not request it, ignore this email.</p>
</div>`, code)
}
