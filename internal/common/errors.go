// Package common defines shared constants and sentinel errors used across
// StockGuard components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// ErrStorage signals a durable read/write failure. A failed read is
	// treated as "no session"; a failed write is surfaced but non-fatal.
	ErrStorage = errors.New("storage error")

	// Service-level errors.
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")

	// Session token errors (invalid or malformed record).
	ErrInvalidToken = errors.New("invalid token")
)
