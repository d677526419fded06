package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/inkdrop-studio/payhook/app/controllers"
	"github.com/inkdrop-studio/payhook/internal/pkg/config"
)

type ApiRouter struct {
	cfg     *config.Config
	webhook *controllers.WebhookController
	verify  *controllers.VerifyController
}

func NewApiRouter(cfg *config.Config, webhook *controllers.WebhookController, verify *controllers.VerifyController) *ApiRouter {
	return &ApiRouter{cfg: cfg, webhook: webhook, verify: verify}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api")

	// Stripe calls this server-to-server; no CORS needed.
	api.Post("/stripe/webhook", h.webhook.HandleStripeWebhook)

	// The verify endpoint is called from the storefront browser, so it needs
	// a preflight-capable CORS setup pinned to our origin.
	crypto := api.Group("/crypto", cors.New(cors.Config{
		AllowOrigins: h.cfg.AllowedOrigin,
		AllowMethods: "POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	crypto.Post("/verify", h.verify.HandleVerifyTransfer)
}
