package models

import (
	"errors"
)

// Expected, caller-correctable conditions. The dispatcher surfaces these
// verbatim to the user; anything else is logged and masked behind a generic
// failure message.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrThrottled         = errors.New("on cooldown")
)

// IsUserError reports whether err should be shown to the caller as-is
func IsUserError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) || errors.Is(err, ErrInsufficientFunds)
}
