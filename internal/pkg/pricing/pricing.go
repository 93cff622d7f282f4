// Package pricing holds the platform's coin-cost and fee rules. Every
// function here is a pure lookup; nothing in this package touches
// storage or the payments gateway.
package pricing

import "fmt"

const (
	// Coin costs for pay-per-message actions.
	StandardMessageCoinCost = 10
	PriorityMessageCoinCost = 20

	// One coin covers ten cents of tip value; fractions round up so a
	// tip is never under-charged.
	TipCentsPerCoin = 10

	// Platform cut on creator-payable checkout operations.
	PlatformFeePercent = 10

	// DefaultSubscriptionPriceCents applies when a creator has not set
	// their own monthly price.
	DefaultSubscriptionPriceCents = 999
)

// MessageCost returns the coin cost of a fan text message.
func MessageCost(priority bool) int64 {
	if priority {
		return PriorityMessageCoinCost
	}
	return StandardMessageCoinCost
}

// TipCost converts a tip amount in cents to its coin cost using ceiling
// division.
func TipCost(tipCents int64) (int64, error) {
	if tipCents <= 0 {
		return 0, fmt.Errorf("tip amount must be positive, got %d", tipCents)
	}
	return (tipCents + TipCentsPerCoin - 1) / TipCentsPerCoin, nil
}

// ApplicationFeeCents returns the platform's one-time fee on a gross
// checkout amount: floor(amount * 10%).
func ApplicationFeeCents(amountCents int64) int64 {
	if amountCents <= 0 {
		return 0
	}
	return amountCents * PlatformFeePercent / 100
}

// SubscriptionFeePercent returns the recurring application-fee share for
// subscription checkouts.
func SubscriptionFeePercent() float64 {
	return float64(PlatformFeePercent)
}

// SubscriptionPriceCents resolves a creator's monthly price, falling back
// to the platform default when unset.
func SubscriptionPriceCents(creatorPriceCents int64) int64 {
	if creatorPriceCents > 0 {
		return creatorPriceCents
	}
	return DefaultSubscriptionPriceCents
}

// CoinPackage is one fixed top-up tier. The catalog is compiled in; it
// is not user-editable.
type CoinPackage struct {
	Type       string `json:"type"`
	Coins      int64  `json:"coins"`
	PriceCents int64  `json:"price_cents"`
	Label      string `json:"label"`
}

var coinPackages = []CoinPackage{
	{Type: "coins_100", Coins: 100, PriceCents: 999, Label: "100 coins"},
	{Type: "coins_500", Coins: 500, PriceCents: 3999, Label: "500 coins"},
	{Type: "coins_1000", Coins: 1000, PriceCents: 6999, Label: "1000 coins"},
}

// CoinPackages returns the full top-up catalog in ascending size order.
func CoinPackages() []CoinPackage {
	out := make([]CoinPackage, len(coinPackages))
	copy(out, coinPackages)
	return out
}

// CoinPackageByType looks up a top-up tier by its type key.
func CoinPackageByType(packageType string) (CoinPackage, bool) {
	for _, p := range coinPackages {
		if p.Type == packageType {
			return p, true
		}
	}
	return CoinPackage{}, false
}
