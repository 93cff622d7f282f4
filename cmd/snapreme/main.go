package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/decoderzhub/snapreme/app/controllers"
	"github.com/decoderzhub/snapreme/app/repository"
	"github.com/decoderzhub/snapreme/internal/pkg/cache"
	"github.com/decoderzhub/snapreme/internal/pkg/database"
	"github.com/decoderzhub/snapreme/internal/pkg/env"
	"github.com/decoderzhub/snapreme/internal/pkg/metrics/counter"
	"github.com/decoderzhub/snapreme/internal/pkg/payments"
	"github.com/decoderzhub/snapreme/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	gateway, err := payments.NewStripeGatewayFromEnv()
	if err != nil {
		log.Fatalf("payments setup failed: %v", err)
	}
	controllers.SetCheckoutGateway(gateway)

	// periodic creator revenue flush from Redis to the DB
	counter.StartFlusher(5*time.Minute, make(chan struct{}))

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName: "snapreme",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			"admin": env.GetEnv("METRICS_PASSWORD", "test"),
		},
	}), monitor.New())

	// ROUTER
	router.InstallRouter(app)

	return app
}
