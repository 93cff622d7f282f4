package controllers

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/decoderzhub/snapreme/app/models"
	"github.com/decoderzhub/snapreme/internal/pkg/database"
	"github.com/decoderzhub/snapreme/internal/pkg/payments"
	"github.com/decoderzhub/snapreme/internal/pkg/reconcile"
	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v76"
)

// HandleStripeWebhook verifies and records a Stripe webhook delivery.
// Invalid signatures are rejected with 400; everything verified is
// acknowledged with 200 so the provider stops retrying, including
// replays and events we record but cannot apply.
func HandleStripeWebhook(c *fiber.Ctx) error {
	event, err := payments.VerifyWebhook(c.Body(), c.Get("Stripe-Signature"), payments.WebhookSecretFromEnv())
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_signature", "webhook signature verification failed")
	}

	var metadata map[string]string
	if string(event.Type) == reconcile.EventTypeCheckoutCompleted {
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err == nil {
			metadata = session.Metadata
		}
	}

	svc := reconcile.NewServiceFromDB(database.GetDB())
	outcome, err := svc.ProcessEvent(c.Context(), reconcile.EventInput{
		Provider:    models.PaymentProviderStripe,
		EventID:     event.ID,
		Type:        string(event.Type),
		PayloadJSON: string(event.Data.Raw),
		Metadata:    metadata,
	})
	if err != nil {
		if errors.Is(err, reconcile.ErrMalformedEvent) {
			// Recorded with its parse error; retrying would not help.
			log.Printf("stripe webhook %s: %v", event.ID, err)
			return c.JSON(fiber.Map{"received": true})
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal", "webhook processing failed")
	}

	return c.JSON(fiber.Map{
		"received":  true,
		"duplicate": outcome.Duplicate,
	})
}
