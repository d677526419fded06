package controllers

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/inkdrop-studio/payhook/internal/pkg/checkout"
	"github.com/inkdrop-studio/payhook/internal/pkg/config"
	"github.com/inkdrop-studio/payhook/internal/pkg/mail"
	"github.com/inkdrop-studio/payhook/internal/pkg/metrics"
)

// WebhookController handles the Stripe checkout webhook. Signature
// verification runs against the exact raw body bytes before anything else;
// a bad or missing signature never reaches the email logic.
type WebhookController struct {
	cfg    *config.Config
	mailer mail.Mailer
}

func NewWebhookController(cfg *config.Config, mailer mail.Mailer) *WebhookController {
	return &WebhookController{cfg: cfg, mailer: mailer}
}

func (wc *WebhookController) HandleStripeWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := strings.TrimSpace(c.Get("Stripe-Signature"))

	if !checkout.VerifyWebhookSignature(rawBody, signature, wc.cfg.StripeWebhookSecret) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid signature"})
	}

	event, err := checkout.ParseEvent(rawBody)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	if event.Type != checkout.EventCheckoutSessionCompleted {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
	}

	metrics.CardEventsReceived.Inc()
	purchase := event.Purchase()

	if purchase.AmountMinorUnits < config.CardAmountMin || purchase.AmountMinorUnits > config.CardAmountMax {
		// A different product on the same Stripe account; not ours to fulfill.
		metrics.CardEventsSkipped.Inc()
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true, "skipped": true})
	}

	if purchase.BuyerEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing customer email"})
	}

	htmlBody, err := mail.RenderDownloadEmail(mail.DownloadEmail{
		DownloadURL: config.DownloadURL,
		ThankYouURL: config.ThankYouURL,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error", "details": err.Error()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := wc.mailer.Send(ctx, purchase.BuyerEmail, mail.DownloadSubject, htmlBody); err != nil {
		// The purchase already happened; failing the ack would only make
		// Stripe redeliver the same event.
		log.Printf("download email failed for session %s: %v", purchase.SourceID, err)
		metrics.EmailFailures.Inc()
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
	}

	metrics.CardEmailsSent.Inc()
	log.Printf("download email sent to %s for session %s", purchase.BuyerEmail, purchase.SourceID)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true, "emailSent": true})
}
