package controllers

import (
	"github.com/decoderzhub/snapreme/internal/pkg/constants"
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
)

// HandleCoinsSuccess is the hosted-checkout return URL for coin top-ups.
// The wallet credit arrives via webhook, so this only sets a flash and
// sends the user back to the coins page.
func HandleCoinsSuccess(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type":    "success",
		"message": "Payment received. Your coins will appear in a moment.",
	}
	flash.WithSuccess(c, fm)
	return c.Redirect(constants.CoinsRoute, fiber.StatusSeeOther)
}

// HandlePayoutsReturn is the onboarding return/refresh URL for creators
// coming back from the hosted payout setup.
func HandlePayoutsReturn(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type":    "info",
		"message": "Payout setup updated.",
	}
	flash.WithInfo(c, fm)
	return c.Redirect(constants.PublicRoute, fiber.StatusSeeOther)
}

// HandleFlash returns the pending flash message as JSON so the frontend
// can render it after a redirect.
func HandleFlash(c *fiber.Ctx) error {
	return c.JSON(flash.Get(c))
}
