package metrics

import (
	"bytes"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gofiber/fiber/v2"
)

var (
	CardEventsReceived = metrics.NewCounter(`payhook_card_webhook_events_total`)
	CardEventsSkipped  = metrics.NewCounter(`payhook_card_webhook_events_skipped_total`)
	CardEmailsSent     = metrics.NewCounter(`payhook_card_download_emails_sent_total`)

	VerifyRequests = metrics.NewCounter(`payhook_crypto_verify_requests_total`)
	VerifyAccepted = metrics.NewCounter(`payhook_crypto_verify_accepted_total`)
	VerifyRejected = metrics.NewCounter(`payhook_crypto_verify_rejected_total`)
	RPCErrors      = metrics.NewCounter(`payhook_crypto_rpc_errors_total`)

	EmailFailures = metrics.NewCounter(`payhook_email_failures_total`)
)

// Handler serves the Prometheus exposition endpoint.
func Handler(c *fiber.Ctx) error {
	var buf bytes.Buffer
	metrics.WritePrometheus(&buf, true)
	c.Set(fiber.HeaderContentType, "text/plain; version=0.0.4; charset=utf-8")
	return c.Send(buf.Bytes())
}
