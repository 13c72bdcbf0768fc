package usecase

import "errors"

// Error kinds the handlers map to response codes exactly once.
var (
	ErrValidation   = errors.New("invalid input")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrForbidden    = errors.New("permission denied")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
)
