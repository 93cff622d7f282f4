package spend

import "errors"

var (
	// ErrUnauthenticated is returned when no valid caller session is
	// present; the caller should be sent to sign-up/login.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInsufficientFunds is returned when the wallet balance does not
	// cover the action's coin cost. Nothing is debited or recorded; the
	// UI should offer a coin top-up.
	ErrInsufficientFunds = errors.New("insufficient coin balance")

	// ErrNotFound is returned when the referenced thread, gift, or
	// creator does not exist or is not visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for empty messages, non-positive tip
	// amounts, and similar caller mistakes.
	ErrInvalidInput = errors.New("invalid input")
)
