package models

import "errors"

// Error kinds shared by the services and the HTTP boundary.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrValidationFailed     = errors.New("validation failed")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrConflictOnMutation   = errors.New("no rows affected")
	ErrPersistenceFailure   = errors.New("persistence failure")
	ErrAuthenticationFailed = errors.New("invalid credentials")
	ErrTokenInvalid         = errors.New("invalid token")
)
