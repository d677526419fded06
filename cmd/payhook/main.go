package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/inkdrop-studio/payhook/app/controllers"
	"github.com/inkdrop-studio/payhook/internal/pkg/chain"
	"github.com/inkdrop-studio/payhook/internal/pkg/config"
	"github.com/inkdrop-studio/payhook/internal/pkg/env"
	"github.com/inkdrop-studio/payhook/internal/pkg/mail"
	"github.com/inkdrop-studio/payhook/internal/pkg/router"
)

func main() {
	env.SetupEnvFile()
	cfg := config.FromEnv()

	app := NewApplication(cfg)
	err := app.Listen(fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort))
	log.Fatal(err)
}

func NewApplication(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "payhook",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	mailer := mail.FromEnv()
	webhook := controllers.NewWebhookController(cfg, mailer)
	verify := controllers.NewVerifyController(cfg, chain.NewClient(cfg.RPCURL), mailer)

	router.InstallRouter(app,
		router.NewHttpRouter(),
		router.NewApiRouter(cfg, webhook, verify),
	)

	return app
}
