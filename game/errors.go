package game

import "errors"

// Error kinds surfaced by session operations and the hub. They are
// returned to the issuing admin connection only and never broadcast.
// Claim rejections are not errors; see ClaimOutcome.
var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrPoolExhausted     = errors.New("number pool exhausted")
	ErrGameNotActive     = errors.New("game not active")
	ErrUnknownPattern    = errors.New("unknown pattern")
	ErrSessionClosed     = errors.New("session closed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrSessionNotFound   = errors.New("session not found")
	ErrUnknownCard       = errors.New("unknown card")
)
