package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrNotAuthenticated indicates the action requires a session and none exists.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrRemoteUnavailable indicates a remote store call failed; callers fall
	// back to local state.
	ErrRemoteUnavailable = errors.New("remote store unavailable")
	// ErrValidation indicates malformed input; the mutation was not applied.
	ErrValidation = errors.New("invalid input")
)
