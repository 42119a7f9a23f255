// Package apperrors defines the error taxonomy shared by repositories,
// services and HTTP handlers. Services wrap these sentinels with %w and
// handlers map them to status codes with errors.Is.
package apperrors

import "errors"

var (
	// ErrNotFound marks an unknown id, symbol or post.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness violation (duplicate username/email).
	ErrConflict = errors.New("already exists")

	// ErrAuth marks bad credentials or an invalid, expired or malformed token.
	ErrAuth = errors.New("could not validate credentials")

	// ErrUpstream marks a third-party API failure.
	ErrUpstream = errors.New("upstream error")

	// ErrDataCorruption marks a stored document that failed to deserialize.
	// Fatal for the current request only.
	ErrDataCorruption = errors.New("data corruption")
)
