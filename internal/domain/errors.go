package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound      = errors.New("not found")
	ErrBadRequest    = errors.New("bad request")
	ErrForbidden     = errors.New("forbidden")
	ErrRateLimited   = errors.New("rate limited")
	ErrExpired       = errors.New("expired")
	ErrInvalidCode   = errors.New("invalid code")
	ErrDelivery      = errors.New("delivery failed")
	ErrConfiguration = errors.New("configuration error")
)
