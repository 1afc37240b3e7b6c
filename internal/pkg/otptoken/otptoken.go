// Package otptoken implements the self-describing signed tokens that make OTP
// verification stateless: the server never stores the issued code, it only
// re-derives the signature from what the client echoes back.
package otptoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/portfolio-backend/internal/domain"
)

// Sign computes the token for (recipient, otp, issuedAt):
// "<issuedAtUnixSeconds>:<hex HMAC-SHA256(secret, "<recipient>:<otp>:<issuedAt>")>".
func Sign(secret, recipient, otp string, issuedAt int64) string {
	return fmt.Sprintf("%d:%s", issuedAt, digest(secret, recipient, otp, issuedAt))
}

// Verify checks a client-submitted token against the recipient and code.
// It returns domain.ErrExpired when the embedded timestamp is older than ttl
// relative to now, and domain.ErrInvalidCode when the token is malformed or
// its signature does not match. The signature comparison is constant-time.
func Verify(secret, recipient, otp, token string, now time.Time, ttl time.Duration) error {
	issuedAt, sig, err := parse(token)
	if err != nil {
		return err
	}
	if now.Unix()-issuedAt > int64(ttl.Seconds()) {
		return fmt.Errorf("token issued at %d: %w", issuedAt, domain.ErrExpired)
	}
	want := digest(secret, recipient, otp, issuedAt)
	if !hmac.Equal([]byte(sig), []byte(want)) {
		return fmt.Errorf("signature mismatch: %w", domain.ErrInvalidCode)
	}
	return nil
}

// parse splits "<ts>:<hex>". A token that cannot be parsed can never carry a
// valid signature, so malformed input maps to ErrInvalidCode.
func parse(token string) (issuedAt int64, sig string, err error) {
	ts, sig, ok := strings.Cut(token, ":")
	if !ok || sig == "" {
		return 0, "", fmt.Errorf("malformed token: %w", domain.ErrInvalidCode)
	}
	issuedAt, err = strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("malformed token timestamp: %w", domain.ErrInvalidCode)
	}
	return issuedAt, sig, nil
}

func digest(secret, recipient, otp string, issuedAt int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s:%s:%d", recipient, otp, issuedAt)
	return hex.EncodeToString(mac.Sum(nil))
}
