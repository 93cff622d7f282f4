package checkout

import "context"

// SessionInput describes one hosted checkout session. Exactly one of
// UnitAmountCents (with ProductName) or RecurringPriceID is used for the
// line item depending on the mode.
type SessionInput struct {
	// Mode is "payment" for one-time purchases or "subscription" for
	// recurring billing.
	Mode string

	CustomerID string
	SuccessURL string
	CancelURL  string

	// One-time line item.
	ProductName     string
	UnitAmountCents int64
	Currency        string

	// Pre-created recurring price on the destination account, used in
	// subscription mode when the creator has one.
	RecurringPriceID string

	// Fee routing. DestinationAccountID is the creator's connected
	// account; empty means the platform keeps the full amount.
	DestinationAccountID  string
	ApplicationFeeCents   int64
	ApplicationFeePercent float64

	// Metadata is copied onto the session for webhook reconciliation.
	Metadata map[string]string
}

// Session is the created hosted checkout session.
type Session struct {
	ID  string
	URL string
}

// RecurringPriceInput describes a monthly subscription price created on
// a creator's connected account.
type RecurringPriceInput struct {
	AccountID       string
	ProductID       string
	ProductName     string
	UnitAmountCents int64
	Currency        string
}

// RecurringPrice holds the provider identifiers of a created price.
type RecurringPrice struct {
	ProductID string
	PriceID   string
}

// Gateway abstracts the hosted payments provider. The production
// implementation lives in internal/pkg/payments; tests inject fakes.
type Gateway interface {
	CreateSession(ctx context.Context, in SessionInput) (*Session, error)
	CreateCustomer(ctx context.Context, email, name string) (string, error)
	CreateConnectAccount(ctx context.Context, email string) (string, error)
	CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error)
	CreateRecurringPrice(ctx context.Context, in RecurringPriceInput) (*RecurringPrice, error)
}
