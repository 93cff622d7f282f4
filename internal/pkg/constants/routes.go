package constants

// Static route constants
const (
	PublicRoute         = "/"
	LoginRoute          = "/login"
	CoinsRoute          = "/coins"
	CoinsSuccessRoute   = "/coins/success"
	CreatorPayoutsRoute = "/creator/payouts"
	StripeWebhookRoute  = "/webhooks/stripe"
)
