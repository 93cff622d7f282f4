package controllers

import (
	"github.com/decoderzhub/snapreme/internal/pkg/checkout"
	"github.com/decoderzhub/snapreme/internal/pkg/database"
	"github.com/decoderzhub/snapreme/internal/pkg/usercontext"
	"github.com/gofiber/fiber/v2"
)

// checkoutGateway is wired once at startup; tests and main inject their
// own implementation.
var checkoutGateway checkout.Gateway

// SetCheckoutGateway installs the payments gateway used by the checkout
// handlers.
func SetCheckoutGateway(g checkout.Gateway) {
	checkoutGateway = g
}

func checkoutService() *checkout.Service {
	return checkout.NewServiceFromDB(database.GetDB(), checkoutGateway)
}

type subscriptionCheckoutRequest struct {
	CreatorID uint `json:"creator_id"`
}

type postUnlockCheckoutRequest struct {
	PostID uint `json:"post_id"`
}

type packageCheckoutRequest struct {
	PackageID uint `json:"package_id"`
}

type coinCheckoutRequest struct {
	PackageType string `json:"package_type"`
}

type creatorPriceRequest struct {
	PriceCents int64 `json:"price_cents"`
}

// HandleSubscriptionCheckout starts a monthly subscription checkout to a
// creator and returns the hosted redirect URL.
func HandleSubscriptionCheckout(c *fiber.Ctx) error {
	var req subscriptionCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_input", "malformed request body")
	}
	session, err := checkoutService().CreateSubscriptionCheckout(c.Context(), usercontext.GetUserID(c), req.CreatorID)
	if err != nil {
		return checkoutError(c, err)
	}
	return c.JSON(fiber.Map{"url": session.URL, "session_id": session.ID})
}

// HandlePostUnlockCheckout starts a one-time checkout for a premium post.
func HandlePostUnlockCheckout(c *fiber.Ctx) error {
	var req postUnlockCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_input", "malformed request body")
	}
	session, err := checkoutService().CreatePostUnlockCheckout(c.Context(), usercontext.GetUserID(c), req.PostID)
	if err != nil {
		return checkoutError(c, err)
	}
	return c.JSON(fiber.Map{"url": session.URL, "session_id": session.ID})
}

// HandlePackageCheckout starts a one-time checkout for a content package.
func HandlePackageCheckout(c *fiber.Ctx) error {
	var req packageCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_input", "malformed request body")
	}
	session, err := checkoutService().CreatePackageCheckout(c.Context(), usercontext.GetUserID(c), req.PackageID)
	if err != nil {
		return checkoutError(c, err)
	}
	return c.JSON(fiber.Map{"url": session.URL, "session_id": session.ID})
}

// HandleCoinCheckout starts a platform-owned checkout for a coin package.
func HandleCoinCheckout(c *fiber.Ctx) error {
	var req coinCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_input", "malformed request body")
	}
	session, err := checkoutService().CreateCoinCheckout(c.Context(), usercontext.GetUserID(c), req.PackageType)
	if err != nil {
		return checkoutError(c, err)
	}
	return c.JSON(fiber.Map{"url": session.URL, "session_id": session.ID})
}

// HandleCreatorOnboarding creates or resumes the caller's payout
// onboarding and returns the hosted link.
func HandleCreatorOnboarding(c *fiber.Ctx) error {
	link, err := checkoutService().CreateCreatorOnboarding(c.Context(), usercontext.GetUserID(c))
	if err != nil {
		return checkoutError(c, err)
	}
	return c.JSON(fiber.Map{"url": link})
}

// HandleCreatorPrice sets the caller's monthly subscription price and
// provisions the recurring price on their connected account.
func HandleCreatorPrice(c *fiber.Ctx) error {
	var req creatorPriceRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_input", "malformed request body")
	}
	creator, err := checkoutService().CreateCreatorProductPrice(c.Context(), usercontext.GetUserID(c), req.PriceCents)
	if err != nil {
		return checkoutError(c, err)
	}
	return c.JSON(creator)
}
