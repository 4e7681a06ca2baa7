package storefront_errors

import (
	"errors"
)

// Common errors
var (
	ErrMalformedMessage   = errors.New("malformed message")
	ErrInvalidEnvelope    = errors.New("invalid envelope")
	ErrUnknownQueue       = errors.New("unknown queue")
	ErrUnknownDriver      = errors.New("unknown driver")
	ErrQueueUnavailable   = errors.New("queue unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotConfigured      = errors.New("not configured")
)
