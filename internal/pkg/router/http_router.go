package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/inkdrop-studio/payhook/internal/pkg/metrics"
)

type HttpRouter struct {
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/metrics", metrics.Handler)
}
