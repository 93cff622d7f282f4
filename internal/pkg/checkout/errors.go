package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned when no valid caller session is present.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrNotFound is returned when the referenced creator, post, package
	// or coin tier does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPayoutNotConfigured is returned when the target creator has not
	// completed payout onboarding. The UI shows this as "try again
	// later", never as a raw error.
	ErrPayoutNotConfigured = errors.New("creator payouts not configured")

	// ErrInvalidInput is returned for malformed amounts or identifiers.
	ErrInvalidInput = errors.New("invalid input")
)

// GatewayError wraps a payments-provider failure. The provider's message
// is preserved; calls are never retried automatically.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// IsGatewayError reports whether err originated at the payments provider.
func IsGatewayError(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}
