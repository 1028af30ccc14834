package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireAuth ensures a user is in the session. Unauthenticated requests are
// redirected to the login page with a flash error, before any handler or
// validation runs.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			AddFlash(c, "error", "You must be signed in first!")
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.Next()
	}
}
