// Package common defines shared constants and sentinel errors used across
// the API layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrConflict   = errors.New("conflict")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrServiceUnavailable = errors.New("service unavailable")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
)

// PublicError pairs a sentinel kind with a message that is safe to show to
// API clients. errors.Is(err, Kind) holds for it.
type PublicError struct {
	Kind    error
	Message string
}

func (e *PublicError) Error() string { return e.Message }

func (e *PublicError) Unwrap() error { return e.Kind }

// NewPublicError returns a *PublicError of the given kind.
func NewPublicError(kind error, message string) error {
	return &PublicError{Kind: kind, Message: message}
}
