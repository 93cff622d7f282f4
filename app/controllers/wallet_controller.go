package controllers

import (
	"github.com/decoderzhub/snapreme/app/repository"
	"github.com/decoderzhub/snapreme/internal/pkg/database"
	"github.com/decoderzhub/snapreme/internal/pkg/pricing"
	"github.com/decoderzhub/snapreme/internal/pkg/spend"
	"github.com/decoderzhub/snapreme/internal/pkg/usercontext"
	"github.com/gofiber/fiber/v2"
)

// HandleWalletBalance returns the caller's coin balance, creating an
// empty wallet on first read.
func HandleWalletBalance(c *fiber.Ctx) error {
	svc := spend.NewServiceFromDB(database.GetDB())
	balance, err := svc.Balance(c.Context(), usercontext.GetUserID(c))
	if err != nil {
		return spendError(c, err)
	}
	return c.JSON(fiber.Map{"coin_balance": balance})
}

// HandleCoinPackages returns the fixed coin top-up catalog.
func HandleCoinPackages(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"packages": pricing.CoinPackages()})
}

// HandleGiftCatalog returns the active gift catalog, cheapest first.
func HandleGiftCatalog(c *fiber.Ctx) error {
	gifts, err := repository.GetGlobalRepositories().Gift.ListActive()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal", "something went wrong")
	}
	return c.JSON(fiber.Map{"gifts": gifts})
}
