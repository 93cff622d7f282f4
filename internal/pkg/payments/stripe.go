// Package payments holds the Stripe-backed implementation of the
// checkout gateway. All provider specifics (param shapes, connected
// account routing, webhook signatures) stay inside this package.
package payments

import (
	"context"
	"errors"

	"github.com/decoderzhub/snapreme/internal/pkg/checkout"
	"github.com/decoderzhub/snapreme/internal/pkg/env"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeGateway implements checkout.Gateway against the Stripe API.
type StripeGateway struct {
	sc *client.API
}

var _ checkout.Gateway = (*StripeGateway)(nil)

// NewStripeGateway creates a gateway with the given secret key.
func NewStripeGateway(secretKey string) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeGateway{sc: sc}
}

// NewStripeGatewayFromEnv creates a gateway from STRIPE_SECRET_KEY.
func NewStripeGatewayFromEnv() (*StripeGateway, error) {
	key := env.GetEnv("STRIPE_SECRET_KEY", "")
	if key == "" {
		return nil, errors.New("STRIPE_SECRET_KEY is not set")
	}
	return NewStripeGateway(key), nil
}

// CreateSession builds a hosted Checkout session. One-time purchases are
// destination charges with a fixed application fee; subscriptions carry
// a percentage fee. A stored recurring price lives on the creator's
// connected account, so that variant runs as a direct charge there.
func (g *StripeGateway) CreateSession(ctx context.Context, in checkout.SessionInput) (*checkout.Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(in.Mode),
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	switch {
	case in.Mode == "subscription" && in.RecurringPriceID != "":
		params.SetStripeAccount(in.DestinationAccountID)
		params.LineItems = []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(in.RecurringPriceID),
			Quantity: stripe.Int64(1),
		}}
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			ApplicationFeePercent: stripe.Float64(in.ApplicationFeePercent),
		}

	case in.Mode == "subscription":
		params.Customer = stripe.String(in.CustomerID)
		params.LineItems = []*stripe.CheckoutSessionLineItemParams{{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(in.Currency),
				UnitAmount: stripe.Int64(in.UnitAmountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(in.ProductName),
				},
				Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
					Interval: stripe.String("month"),
				},
			},
		}}
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			ApplicationFeePercent: stripe.Float64(in.ApplicationFeePercent),
			TransferData: &stripe.CheckoutSessionSubscriptionDataTransferDataParams{
				Destination: stripe.String(in.DestinationAccountID),
			},
		}

	default:
		params.Customer = stripe.String(in.CustomerID)
		params.LineItems = []*stripe.CheckoutSessionLineItemParams{{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(in.Currency),
				UnitAmount: stripe.Int64(in.UnitAmountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(in.ProductName),
				},
			},
		}}
		if in.DestinationAccountID != "" {
			params.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{
				ApplicationFeeAmount: stripe.Int64(in.ApplicationFeeCents),
				TransferData: &stripe.CheckoutSessionPaymentIntentDataTransferDataParams{
					Destination: stripe.String(in.DestinationAccountID),
				},
			}
		}
	}

	s, err := g.sc.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return &checkout.Session{ID: s.ID, URL: s.URL}, nil
}

// CreateCustomer creates a Stripe customer record for a fan.
func (g *StripeGateway) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.Context = ctx
	c, err := g.sc.Customers.New(params)
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

// CreateConnectAccount creates an Express connected account for creator
// payouts.
func (g *StripeGateway) CreateConnectAccount(ctx context.Context, email string) (string, error) {
	params := &stripe.AccountParams{
		Type:  stripe.String(string(stripe.AccountTypeExpress)),
		Email: stripe.String(email),
	}
	params.Context = ctx
	a, err := g.sc.Accounts.New(params)
	if err != nil {
		return "", err
	}
	return a.ID, nil
}

// CreateAccountLink returns a hosted onboarding link for a connected
// account.
func (g *StripeGateway) CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(refreshURL),
		ReturnURL:  stripe.String(returnURL),
		Type:       stripe.String("account_onboarding"),
	}
	params.Context = ctx
	link, err := g.sc.AccountLinks.New(params)
	if err != nil {
		return "", err
	}
	return link.URL, nil
}

// CreateRecurringPrice creates the subscription product on the creator's
// connected account on first call, then a monthly price on it. Both
// calls are routed to the connected account.
func (g *StripeGateway) CreateRecurringPrice(ctx context.Context, in checkout.RecurringPriceInput) (*checkout.RecurringPrice, error) {
	productID := in.ProductID
	if productID == "" {
		productParams := &stripe.ProductParams{Name: stripe.String(in.ProductName)}
		productParams.Context = ctx
		productParams.SetStripeAccount(in.AccountID)
		product, err := g.sc.Products.New(productParams)
		if err != nil {
			return nil, err
		}
		productID = product.ID
	}

	priceParams := &stripe.PriceParams{
		Product:    stripe.String(productID),
		UnitAmount: stripe.Int64(in.UnitAmountCents),
		Currency:   stripe.String(in.Currency),
		Recurring: &stripe.PriceRecurringParams{
			Interval: stripe.String("month"),
		},
	}
	priceParams.Context = ctx
	priceParams.SetStripeAccount(in.AccountID)
	price, err := g.sc.Prices.New(priceParams)
	if err != nil {
		return nil, err
	}
	return &checkout.RecurringPrice{ProductID: productID, PriceID: price.ID}, nil
}
