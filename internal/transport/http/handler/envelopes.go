package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/portfolio-backend/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OTPEnvelope wraps OTP send/verify responses.
type OTPEnvelope struct {
	Success     bool   `json:"success,omitempty"`
	Token       string `json:"token,omitempty"`
	Message     string `json:"message,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	Error       string `json:"error,omitempty"`
}

// StatsEnvelope wraps LeetCode stats responses.
type StatsEnvelope struct {
	Data  *domain.LeetCodeStats `json:"data,omitempty"`
	Error string                `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps a service error to the client-facing status and message.
// Branches whose client message is a generic stand-in log the underlying
// cause server-side; the precise ones (expired, invalid, rate limited) carry
// everything in the client message already.
func httpError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		slog.Warn("request forbidden", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusForbidden, "This recipient is not allowed to receive verification codes.")
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
	case errors.Is(err, domain.ErrExpired):
		writeError(w, http.StatusBadRequest, "OTP expired")
	case errors.Is(err, domain.ErrInvalidCode):
		writeError(w, http.StatusBadRequest, "Invalid OTP")
	case errors.Is(err, domain.ErrDelivery):
		slog.Error("delivery failed", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to send email. Please try again later.")
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	default:
		slog.Error("unhandled error", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusInternalServerError, "An error occurred. Please try again later.")
	}
}
