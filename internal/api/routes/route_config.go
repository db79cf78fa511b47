package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"cdx-web-scan/internal/api/handlers"
	"cdx-web-scan/internal/middleware"
)

type Config struct {
	App          *fiber.App
	ScanHandler  handlers.ScanHandler
	BatchHandler handlers.BatchHandler
	LogHandler   handlers.LogHandler
	Middleware   middleware.Middleware
	SessionStore *session.Store
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.WebScan()
	c.GuestRoute()
}

// WebScan registers the operator-facing scan and batch routes. Every route
// here is session-scoped: the batch belongs to the browser session cookie.
func (c *Config) WebScan() {
	sess := c.Middleware.SessionMiddleware(c.SessionStore)

	c.App.Get("/", sess, c.BatchHandler.Index)
	c.App.Post("/submit", sess, c.ScanHandler.SubmitScan)

	batch := c.App.Group("/batch", sess)
	{
		batch.Get("", c.BatchHandler.GetBatch)
		batch.Post("/clear", c.BatchHandler.ClearBatch)
		batch.Post("/delete/:code", c.BatchHandler.DeleteItem)
		batch.Post("/submit", c.BatchHandler.SubmitBatch)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/logs", c.LogHandler.GetLog)
}
