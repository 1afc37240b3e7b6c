package resend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/portfolio-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) Mailer {
	return NewClient(&config.Config{
		EmailAPIURL: url,
		EmailAPIKey: "re_test_key",
		EmailFrom:   "noreply@example.com",
	})
}

func TestSendEmail_HappyPath(t *testing.T) {
	var got sendRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).SendEmail(context.Background(), "a@b.com", "Your code", "<p>12345</p>")
	require.NoError(t, err)
	assert.Equal(t, "Bearer re_test_key", auth)
	assert.Equal(t, "noreply@example.com", got.From)
	assert.Equal(t, []string{"a@b.com"}, got.To)
	assert.Equal(t, "<p>12345</p>", got.HTML)
}

func TestSendEmail_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"sandbox recipient rejected"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).SendEmail(context.Background(), "a@b.com", "Your code", "<p>12345</p>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestSendEmail_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // closed before use

	err := newTestClient(srv.URL).SendEmail(context.Background(), "a@b.com", "Your code", "<p>12345</p>")
	require.Error(t, err)
}
