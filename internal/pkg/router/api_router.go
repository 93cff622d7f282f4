package router

import (
	"github.com/decoderzhub/snapreme/app/controllers"
	"github.com/decoderzhub/snapreme/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// public profile lookups come before the session gate
	api.Get("/v1/creators/:handle", controllers.HandleCreatorProfile)

	v1 := api.Group("/v1", middleware.RequireAPISessionAuth)

	v1.Get("/wallet", controllers.HandleWalletBalance)
	v1.Get("/coin-packages", controllers.HandleCoinPackages)
	v1.Get("/gifts", controllers.HandleGiftCatalog)

	v1.Post("/threads", controllers.HandleStartThread)
	v1.Get("/threads", controllers.HandleListThreads)
	v1.Get("/threads/:id/messages", controllers.HandleListMessages)
	v1.Post("/threads/:id/messages", controllers.HandleSendMessage)
	v1.Post("/threads/:id/tips", controllers.HandleSendTip)
	v1.Post("/threads/:id/gifts", controllers.HandleSendGift)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
