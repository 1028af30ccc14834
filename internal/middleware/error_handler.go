package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the single error boundary: every error that escapes a
// handler lands here. Logs server-side, answers with the error's declared
// status and message (500 + generic text by default).
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Something went wrong"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", code).
		Msg("request failed")

	return c.Status(code).SendString(message)
}
