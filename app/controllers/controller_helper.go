package controllers

import (
	"errors"

	"github.com/decoderzhub/snapreme/internal/pkg/checkout"
	"github.com/decoderzhub/snapreme/internal/pkg/spend"
	"github.com/gofiber/fiber/v2"
)

// jsonError writes a typed error payload.
func jsonError(c *fiber.Ctx, status int, kind, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   kind,
		"message": message,
	})
}

// spendError maps spend failures onto the API error contract. An
// insufficient balance carries the top-up URL so the client can offer
// the next action directly.
func spendError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, spend.ErrUnauthenticated):
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	case errors.Is(err, spend.ErrInsufficientFunds):
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error":     "insufficient_funds",
			"message":   "Not enough coins. Top up your wallet to continue.",
			"topup_url": "/coins",
		})
	case errors.Is(err, spend.ErrNotFound):
		return jsonError(c, fiber.StatusNotFound, "not_found", "not found")
	case errors.Is(err, spend.ErrInvalidInput):
		return jsonError(c, fiber.StatusBadRequest, "invalid_input", "invalid input")
	default:
		return jsonError(c, fiber.StatusInternalServerError, "internal", "something went wrong")
	}
}

// checkoutError maps checkout failures onto the API error contract.
// A missing payout account reads as "try again later", never as a raw
// error; gateway messages are passed through for support triage.
func checkoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, checkout.ErrUnauthenticated):
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	case errors.Is(err, checkout.ErrPayoutNotConfigured):
		return jsonError(c, fiber.StatusConflict, "payout_not_configured",
			"This creator can't accept payments yet. Please try again later.")
	case errors.Is(err, checkout.ErrNotFound):
		return jsonError(c, fiber.StatusNotFound, "not_found", "not found")
	case errors.Is(err, checkout.ErrInvalidInput):
		return jsonError(c, fiber.StatusBadRequest, "invalid_input", "invalid input")
	case checkout.IsGatewayError(err):
		return jsonError(c, fiber.StatusBadGateway, "gateway_error", err.Error())
	default:
		return jsonError(c, fiber.StatusInternalServerError, "internal", "something went wrong")
	}
}
