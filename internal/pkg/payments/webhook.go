package payments

import (
	"errors"

	"github.com/decoderzhub/snapreme/internal/pkg/env"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

// VerifyWebhook checks the Stripe-Signature header against the payload
// and returns the parsed event. Unsigned or tampered payloads fail here
// and must be rejected with HTTP 400.
func VerifyWebhook(payload []byte, signatureHeader, signingSecret string) (stripe.Event, error) {
	if signingSecret == "" {
		return stripe.Event{}, errors.New("webhook signing secret is not set")
	}
	return webhook.ConstructEvent(payload, signatureHeader, signingSecret)
}

// WebhookSecretFromEnv returns STRIPE_WEBHOOK_SECRET.
func WebhookSecretFromEnv() string {
	return env.GetEnv("STRIPE_WEBHOOK_SECRET", "")
}
