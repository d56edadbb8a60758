package models

import "errors"

// Domain errors surfaced to the presentation layer. All are recoverable and
// reported to the triggering user; none is fatal to the process.
var (
	// ErrNotRegistered means the operation needs an account that does not exist
	ErrNotRegistered = errors.New("player is not registered")

	// ErrInsufficientFunds means a bet or gift exceeds the current balance
	ErrInsufficientFunds = errors.New("insufficient balance")

	// ErrSessionConflict means the user already has an active session, the
	// slot is taken, or the user is not a legal participant
	ErrSessionConflict = errors.New("session conflict")

	// ErrRateLimited means the daily gift allowance is exhausted
	ErrRateLimited = errors.New("daily gift limit reached")

	// ErrSessionExpired means the session timed out before completion
	ErrSessionExpired = errors.New("session expired")

	// ErrPermissionDenied means an admin operation was attempted by a non-admin
	ErrPermissionDenied = errors.New("permission denied")
)
