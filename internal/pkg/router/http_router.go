package router

import (
	"github.com/decoderzhub/snapreme/app/controllers"
	"github.com/decoderzhub/snapreme/internal/pkg/constants"
	"github.com/decoderzhub/snapreme/internal/pkg/middleware"
	"github.com/decoderzhub/snapreme/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Auth
	app.Post("/register", controllers.HandleRegister)
	app.Post("/login", controllers.HandleLogin)
	app.Post("/logout", controllers.HandleLogout)

	// Real-money checkout flows
	checkoutGroup := app.Group("/checkout", middleware.RequireAPISessionAuth)
	checkoutGroup.Post("/subscription", controllers.HandleSubscriptionCheckout)
	checkoutGroup.Post("/post", controllers.HandlePostUnlockCheckout)
	checkoutGroup.Post("/package", controllers.HandlePackageCheckout)
	checkoutGroup.Post("/coins", controllers.HandleCoinCheckout)

	// Creator-side payout setup
	creator := app.Group("/creator", middleware.RequireAPISessionAuth, middleware.RequireCreator)
	creator.Post("/onboarding", controllers.HandleCreatorOnboarding)
	creator.Post("/price", controllers.HandleCreatorPrice)

	// Hosted-checkout landing pages
	app.Get(constants.CoinsSuccessRoute, middleware.RequireAuth, controllers.HandleCoinsSuccess)
	app.Get(constants.CreatorPayoutsRoute, middleware.RequireAuth, controllers.HandlePayoutsReturn)
	app.Get("/flash", controllers.HandleFlash)

	// Provider webhooks are signature-verified, never session-bound
	app.Post(constants.StripeWebhookRoute, controllers.HandleStripeWebhook)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
