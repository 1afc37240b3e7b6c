package otptoken

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/portfolio-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	secret = "test-signing-secret"
	ttl    = 5 * time.Minute
)

func TestSign_Format(t *testing.T) {
	token := Sign(secret, "a@b.com", "12345", 1700000000)
	assert.Regexp(t, regexp.MustCompile(`^1700000000:[0-9a-f]{64}$`), token)
}

func TestVerify_RoundTrip(t *testing.T) {
	now := time.Unix(1700000000, 0)
	token := Sign(secret, "a@b.com", "12345", now.Unix())
	require.NoError(t, Verify(secret, "a@b.com", "12345", token, now, ttl))
}

func TestVerify_AcceptedAtWindowEdge(t *testing.T) {
	issued := time.Unix(1700000000, 0)
	token := Sign(secret, "a@b.com", "12345", issued.Unix())
	// exactly 300 seconds old is still fresh
	require.NoError(t, Verify(secret, "a@b.com", "12345", token, issued.Add(300*time.Second), ttl))
}

func TestVerify_Expired(t *testing.T) {
	issued := time.Unix(1700000000, 0)
	token := Sign(secret, "a@b.com", "12345", issued.Unix())
	err := Verify(secret, "a@b.com", "12345", token, issued.Add(301*time.Second), ttl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExpired))
}

func TestVerify_WrongOTP(t *testing.T) {
	now := time.Unix(1700000000, 0)
	token := Sign(secret, "a@b.com", "12345", now.Unix())
	err := Verify(secret, "a@b.com", "00000", token, now, ttl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidCode))
}

func TestVerify_WrongRecipient(t *testing.T) {
	now := time.Unix(1700000000, 0)
	token := Sign(secret, "a@b.com", "12345", now.Unix())
	err := Verify(secret, "x@y.com", "12345", token, now, ttl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidCode))
}

func TestVerify_TamperedDigest(t *testing.T) {
	now := time.Unix(1700000000, 0)
	token := Sign(secret, "a@b.com", "12345", now.Unix())
	// flip one hex character of the digest
	b := []byte(token)
	last := len(b) - 1
	if b[last] == '0' {
		b[last] = '1'
	} else {
		b[last] = '0'
	}
	err := Verify(secret, "a@b.com", "12345", string(b), now, ttl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidCode))
}

func TestVerify_TamperedTimestamp(t *testing.T) {
	now := time.Unix(1700000000, 0)
	token := Sign(secret, "a@b.com", "12345", now.Unix())
	// shifting the embedded timestamp invalidates the signature
	tampered := "1700000001" + token[10:]
	err := Verify(secret, "a@b.com", "12345", tampered, now, ttl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidCode))
}

func TestVerify_Malformed(t *testing.T) {
	now := time.Unix(1700000000, 0)
	for _, token := range []string{"", "nocolon", "abc:def", "1700000000:", ":deadbeef"} {
		err := Verify(secret, "a@b.com", "12345", token, now, ttl)
		require.Error(t, err, "token %q", token)
		assert.True(t, errors.Is(err, domain.ErrInvalidCode), "token %q", token)
	}
}

func TestVerify_DifferentSecret(t *testing.T) {
	now := time.Unix(1700000000, 0)
	token := Sign("other-secret", "a@b.com", "12345", now.Unix())
	err := Verify(secret, "a@b.com", "12345", token, now, ttl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidCode))
}
