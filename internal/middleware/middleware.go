package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/session"

	"cdx-web-scan/domain"
	"cdx-web-scan/internal/api/presenters"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		SessionMiddleware(store *session.Store) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowMethods: "GET,POST",
		AllowHeaders: "Origin, Content-Type, Accept",
	})
}

// SessionMiddleware resolves (or creates) the cookie-backed session and
// exposes its id to handlers via c.Locals("session_id"). The batch store is
// keyed by this id.
func (m *middleware) SessionMiddleware(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest, err)
		}
		if sess.Fresh() {
			if err := sess.Save(); err != nil {
				return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest, err)
			}
		}
		c.Locals("session_id", sess.ID())
		return c.Next()
	}
}
