package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID honors an inbound correlation header and mints one otherwise.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Locals(RequestIDHeader, requestID)
		c.Set(RequestIDHeader, requestID)

		return c.Next()
	}
}
